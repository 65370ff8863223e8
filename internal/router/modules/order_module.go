package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/container"
	handlers "marketplace-backend/internal/interface/http"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/helpers"
)

// OrderModule registers order routes. All protected.
type OrderModule struct {
	Handler *handlers.OrderHandler
	JWT     *helpers.JWTManager
}

func NewOrderModule(h *handlers.OrderHandler, jwt *helpers.JWTManager) *OrderModule {
	return &OrderModule{Handler: h, JWT: jwt}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/")
	auth.Use(
		middleware.Auth(rdb, m.JWT),
		middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID()),
	)
	auth.POST("/orders", m.Handler.Create)
	auth.GET("/orders", m.Handler.ListMine)
	auth.GET("/orders/sales", m.Handler.ListSales)
	auth.GET("/orders/:id", m.Handler.Get)
	auth.PATCH("/orders/:id/status", m.Handler.UpdateStatus)
}
