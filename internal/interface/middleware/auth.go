package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"marketplace-backend/pkg/helpers"
	"marketplace-backend/pkg/response"
)

// Context keys set by Auth.
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	CtxUserName  = "userName"
	CtxUserRole  = "userRole"
)

// Auth validates the session cookie and requires a live session mirror in
// Redis, so logout takes effect before the token expires. On success the
// caller's identity is placed in the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("session_token")
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing session token", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid session token", nil)
			return
		}

		role := ""
		if rdb != nil {
			data, err := helpers.GetSession(c.Request.Context(), rdb, claims.UserID)
			if err != nil || len(data) == 0 {
				response.AbortError(c, http.StatusUnauthorized, "session expired", nil)
				return
			}
			role = data["role"]
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxUserName, claims.Name)
		c.Set(CtxUserRole, role)
		c.Next()
	}
}
