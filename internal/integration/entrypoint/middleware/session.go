// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// PlanIDKey is the context key for the plan bound to the session.
const PlanIDKey ContextKey = "plan_id"

// SessionMiddleware resolves the plan session from a bearer token.
type SessionMiddleware struct {
	tokenService adapter.SessionTokenService
}

// NewSessionMiddleware creates a new session middleware instance.
func NewSessionMiddleware(tokenService adapter.SessionTokenService) *SessionMiddleware {
	return &SessionMiddleware{
		tokenService: tokenService,
	}
}

// RequireSession returns a Gin middleware handler that enforces a valid session token.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", domainerror.ErrCodeMissingSessionToken)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Invalid authorization header format", domainerror.ErrCodeInvalidSessionToken)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abortUnauthorized(c, "Token is required", domainerror.ErrCodeMissingSessionToken)
			return
		}

		claims, err := m.tokenService.ValidateSessionToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired session token", domainerror.ErrCodeInvalidSessionToken)
			return
		}

		c.Set(string(PlanIDKey), claims.PlanID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string, code domainerror.SessionErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetPlanIDFromContext extracts the session's plan ID from the Gin context.
func GetPlanIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	planID, exists := c.Get(string(PlanIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := planID.(uuid.UUID)
	return id, ok
}
