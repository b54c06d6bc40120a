package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yamakawa/task-board-api/internal/errors"
	"github.com/yamakawa/task-board-api/internal/models"
)

// RequireRoles rejects callers whose role is not in the allowed set.
// It must run after RequireAuth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole, exists := GetUserRole(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, role := range roles {
			if callerRole == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Access denied. You do not have permission to perform this action.")
		c.Abort()
	}
}
