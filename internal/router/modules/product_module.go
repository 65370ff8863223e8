package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/container"
	handlers "marketplace-backend/internal/interface/http"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/helpers"
)

// ProductModule registers listing routes. Browsing and search are public;
// writes require a session.
type ProductModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
}

func NewProductModule(h *handlers.ProductHandler, jwt *helpers.JWTManager) *ProductModule {
	return &ProductModule{Handler: h, JWT: jwt}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	browseLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP())

	rg.GET("/products", browseLimiter, m.Handler.List)
	rg.GET("/products/search", browseLimiter, m.Handler.Search)
	rg.GET("/products/:id", browseLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(
		middleware.Auth(rdb, m.JWT),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID()),
	)
	auth.POST("/products", m.Handler.Create)
	auth.GET("/products/mine", m.Handler.ListMine)
	auth.PUT("/products/:id", m.Handler.Update)
	auth.PATCH("/products/:id/status", m.Handler.UpdateStatus)
	auth.DELETE("/products/:id", m.Handler.Delete)
}
