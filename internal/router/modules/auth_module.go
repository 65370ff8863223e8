package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/container"
	handlers "marketplace-backend/internal/interface/http"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/helpers"
)

// AuthModule registers the credential lifecycle routes.
// Public: register, login, verify-email, forgot-password, reset-password.
// Protected: logout, resend-verification.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP())
	forgotLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath())
	tokenLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath())

	auth := rg.Group("/auth")
	auth.POST("/register", loginLimiter, m.Handler.Register)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.GET("/verify-email/:token", tokenLimiter, m.Handler.VerifyEmail)
	auth.POST("/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	auth.POST("/reset-password", tokenLimiter, m.Handler.ResetPassword)

	protected := auth.Group("/")
	protected.Use(middleware.Auth(rdb, m.JWT))
	protected.POST("/logout", m.Handler.Logout)
	resendLimiter := middleware.RateLimit(rdb, 3, time.Minute, middleware.KeyByUserID())
	protected.POST("/resend-verification", resendLimiter, m.Handler.ResendVerification)
}
