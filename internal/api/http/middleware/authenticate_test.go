package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vmanager/vehicle-manager-server/internal/api/http/httpctx"
	"github.com/vmanager/vehicle-manager-server/internal/apierrors"
	"github.com/vmanager/vehicle-manager-server/internal/model"
	"github.com/vmanager/vehicle-manager-server/internal/testutil"
)

// MockSessionResolver mocks the SessionResolver interface
type MockSessionResolver struct {
	mock.Mock
}

func (m *MockSessionResolver) Resolve(ctx context.Context, token string) (model.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.User), args.Error(1)
}

func newProtectedEngine(resolver SessionResolver) (*gin.Engine, *httpctx.Manager) {
	gin.SetMode(gin.TestMode)
	ctxMgr := httpctx.NewManager()
	authenticate := NewAuthenticate(resolver, ctxMgr, testutil.MakeNoopLogger())

	engine := gin.New()
	engine.GET("/protected", authenticate.Handle(), func(c *gin.Context) {
		user, ok := ctxMgr.GetUserFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "no principal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	return engine, ctxMgr
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	resolver := &MockSessionResolver{}
	resolver.On("Resolve", mock.Anything, "").Return(model.User{}, apierrors.NewErrNotAuthenticated())
	engine, _ := newProtectedEngine(resolver)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"Not authenticated"}`, rec.Body.String())
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "no token", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &MockSessionResolver{}
			resolver.On("Resolve", mock.Anything, "").Return(model.User{}, apierrors.NewErrNotAuthenticated())
			engine, _ := newProtectedEngine(resolver)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tt.header)
			engine.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"detail":"Not authenticated"}`, rec.Body.String())
		})
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	resolver := &MockSessionResolver{}
	resolver.On("Resolve", mock.Anything, "garbage").Return(model.User{}, apierrors.NewErrInvalidToken())
	engine, _ := newProtectedEngine(resolver)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, rec.Body.String())
}

func TestAuthenticate_ValidTokenInjectsPrincipal(t *testing.T) {
	resolver := &MockSessionResolver{}
	resolver.On("Resolve", mock.Anything, "good-token").Return(model.User{ID: 1, Email: "a@x.com", IsActive: true}, nil)
	engine, _ := newProtectedEngine(resolver)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"a@x.com"}`, rec.Body.String())
	resolver.AssertExpectations(t)
}

// A store outage during resolution is a server fault, not a credential
// failure; a valid token must not be reported as bad.
func TestAuthenticate_StoreFailureIsServerFault(t *testing.T) {
	resolver := &MockSessionResolver{}
	resolver.On("Resolve", mock.Anything, "valid-token").
		Return(model.User{}, errors.New("failed to get user by email: connection refused"))
	engine, _ := newProtectedEngine(resolver)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, rec.Body.String())
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty", header: "", want: ""},
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "wrong scheme", header: "Basic abc", want: ""},
		{name: "scheme only", header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bearerToken(tt.header))
		})
	}
}
