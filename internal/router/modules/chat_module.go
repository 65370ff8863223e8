package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/container"
	handlers "marketplace-backend/internal/interface/http"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/helpers"
)

// ChatModule registers dialog routes. All protected.
type ChatModule struct {
	Handler *handlers.ChatHandler
	JWT     *helpers.JWTManager
}

func NewChatModule(h *handlers.ChatHandler, jwt *helpers.JWTManager) *ChatModule {
	return &ChatModule{Handler: h, JWT: jwt}
}

func (m *ChatModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/")
	auth.Use(
		middleware.Auth(rdb, m.JWT),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID()),
	)
	auth.POST("/chats", m.Handler.Open)
	auth.GET("/chats", m.Handler.List)
	auth.GET("/chats/:id", m.Handler.Get)
	auth.POST("/chats/:id/messages", m.Handler.Send)
}
