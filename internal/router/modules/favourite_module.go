package modules

import (
	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/container"
	handlers "marketplace-backend/internal/interface/http"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/helpers"
)

// FavouriteModule registers saved-product routes. All protected.
type FavouriteModule struct {
	Handler *handlers.FavouriteHandler
	JWT     *helpers.JWTManager
}

func NewFavouriteModule(h *handlers.FavouriteHandler, jwt *helpers.JWTManager) *FavouriteModule {
	return &FavouriteModule{Handler: h, JWT: jwt}
}

func (m *FavouriteModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.POST("/products/:id/favourite", m.Handler.Toggle)
	auth.GET("/favourites", m.Handler.List)
}
