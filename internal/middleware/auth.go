package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yamakawa/task-board-api/internal/auth"
	"github.com/yamakawa/task-board-api/internal/constants"
	apierrors "github.com/yamakawa/task-board-api/internal/errors"
	"github.com/yamakawa/task-board-api/internal/models"
)

// RequireAuth verifies the bearer token and stores the caller's
// identity and role in the request context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "Access denied. No token provided.")
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ParseToken(secret, tokenStr)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token.")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	if !ok {
		return 0, false
	}
	return id, true
}

// GetUserRole retrieves the current user role from context
func GetUserRole(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(constants.ContextKeyUserRole)
	if !exists {
		return "", false
	}

	role, ok := value.(models.Role)
	if !ok {
		return "", false
	}
	return role, true
}
