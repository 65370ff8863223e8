package modules

import (
	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/container"
	handlers "marketplace-backend/internal/interface/http"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/helpers"
)

// CategoryModule registers catalogue routes. Reads are public, creation
// needs a session and deletion is admin only.
type CategoryModule struct {
	Handler *handlers.CategoryHandler
	JWT     *helpers.JWTManager
}

func NewCategoryModule(h *handlers.CategoryHandler, jwt *helpers.JWTManager) *CategoryModule {
	return &CategoryModule{Handler: h, JWT: jwt}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	rg.GET("/categories", m.Handler.List)
	rg.GET("/categories/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.POST("/categories", m.Handler.Create)
	auth.DELETE("/categories/:id", middleware.AdminOnly(), m.Handler.Delete)
}
