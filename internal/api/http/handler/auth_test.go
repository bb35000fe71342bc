package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vmanager/vehicle-manager-server/internal/api/http/httpctx"
	"github.com/vmanager/vehicle-manager-server/internal/apierrors"
	"github.com/vmanager/vehicle-manager-server/internal/model"
	"github.com/vmanager/vehicle-manager-server/internal/testutil"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (model.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func newAuthHandler(svc AuthService) (*Auth, *httpctx.Manager) {
	gin.SetMode(gin.TestMode)
	ctxMgr := httpctx.NewManager()
	return NewAuth(svc, ctxMgr, testutil.MakeNoopLogger()), ctxMgr
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockSetup  func(*MockAuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "successful registration",
			body: `{"email":"a@x.com","password":"pw1"}`,
			mockSetup: func(svc *MockAuthService) {
				svc.On("Register", mock.Anything, "a@x.com", "pw1").
					Return(model.User{ID: 1, Email: "a@x.com", IsActive: true}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"id":1,"email":"a@x.com","is_active":true}`,
		},
		{
			name: "duplicate email",
			body: `{"email":"a@x.com","password":"pw1"}`,
			mockSetup: func(svc *MockAuthService) {
				svc.On("Register", mock.Anything, "a@x.com", "pw1").
					Return(model.User{}, apierrors.NewErrEmailTaken())
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"Email already registered"}`,
		},
		{
			name:       "malformed email is rejected before the service",
			body:       `{"email":"not-an-email","password":"pw1"}`,
			mockSetup:  func(svc *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			body:       `{"email":"a@x.com"}`,
			mockSetup:  func(svc *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuthService{}
			tt.mockSetup(svc)
			h, _ := newAuthHandler(svc)

			engine := gin.New()
			engine.POST("/register", h.Register)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Token(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		mockSetup  func(*MockAuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "successful login",
			form: url.Values{"username": {"a@x.com"}, "password": {"pw1"}},
			mockSetup: func(svc *MockAuthService) {
				svc.On("Login", mock.Anything, "a@x.com", "pw1").Return("signed-token", nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"access_token":"signed-token","token_type":"bearer"}`,
		},
		{
			name: "bad credentials",
			form: url.Values{"username": {"a@x.com"}, "password": {"wrong"}},
			mockSetup: func(svc *MockAuthService) {
				svc.On("Login", mock.Anything, "a@x.com", "wrong").
					Return("", apierrors.NewErrInvalidCredentials())
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail":"Incorrect email or password"}`,
		},
		{
			name:       "missing form fields",
			form:       url.Values{"username": {"a@x.com"}},
			mockSetup:  func(svc *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuthService{}
			tt.mockSetup(svc)
			h, _ := newAuthHandler(svc)

			engine := gin.New()
			engine.POST("/token", h.Token)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns the principal without the password hash", func(t *testing.T) {
		h, ctxMgr := newAuthHandler(&MockAuthService{})

		engine := gin.New()
		engine.GET("/me", func(c *gin.Context) {
			ctx := ctxMgr.SetUserToContext(c.Request.Context(), model.User{
				ID: 1, Email: "a@x.com", HashedPassword: "$hashed$", IsActive: true,
			})
			c.Request = c.Request.WithContext(ctx)
			h.Me(c)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":1,"email":"a@x.com","is_active":true}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "$hashed$")
	})

	t.Run("no principal in context", func(t *testing.T) {
		h, _ := newAuthHandler(&MockAuthService{})

		engine := gin.New()
		engine.GET("/me", h.Me)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"detail":"Not authenticated"}`, rec.Body.String())
	})
}
