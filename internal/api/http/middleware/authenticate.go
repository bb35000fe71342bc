package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vmanager/vehicle-manager-server/internal/apierrors"
	"github.com/vmanager/vehicle-manager-server/internal/logger"
	"github.com/vmanager/vehicle-manager-server/internal/model"
)

// SessionResolver resolves a bearer token into the user it represents.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the principal into the
// request context. It never mutates state.
type Authenticate struct {
	resolver       SessionResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(resolver SessionResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{resolver: resolver, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, resolves the principal and
// aborts with 401 on auth failures and 500 on resolution faults.
func (m *Authenticate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))

		user, err := m.resolver.Resolve(c.Request.Context(), tokenString)
		if err != nil {
			var apiErr *apierrors.APIError
			if errors.As(err, &apiErr) {
				c.AbortWithStatusJSON(apiErr.Status, gin.H{"detail": apiErr.Message})
				return
			}
			// Resolution failures outside the auth taxonomy, such as a store
			// outage, are server faults rather than bad credentials.
			m.logger.Error("Authenticate middleware: session resolution failed",
				"error", err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}

		ctx := m.contextManager.SetUserToContext(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, or returns "" when the header is missing or malformed.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
