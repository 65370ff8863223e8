package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/pkg/response"
)

// AdminOnly allows only callers whose session carries the admin role. It
// must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != entity.RoleAdmin {
			response.AbortError(c, http.StatusForbidden, "admin access required", nil)
			return
		}
		c.Next()
	}
}
