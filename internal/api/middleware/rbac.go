package middleware

import (
	"net/http"

	"office-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RequirePermission authorizes the request against the capability table.
// Role checks happen here and only here; handlers never compare roles.
func RequirePermission(perm models.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if !models.HasPermission(role, perm) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Acces refuse"})
			c.Abort()
			return
		}
		c.Next()
	}
}
