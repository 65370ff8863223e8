package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/application"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/response"
)

type FavouriteHandler struct {
	Favourites *application.FavouriteService
}

func NewFavouriteHandler(favourites *application.FavouriteService) *FavouriteHandler {
	return &FavouriteHandler{Favourites: favourites}
}

// Toggle POST /api/products/:id/favourite — save or unsave.
func (h *FavouriteHandler) Toggle(c *gin.Context) {
	saved, err := h.Favourites.Toggle(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	msg := "removed from favourites"
	if saved {
		msg = "added to favourites"
	}
	response.Success(c, http.StatusOK, gin.H{"favourited": saved}, msg, nil)
}

// List GET /api/favourites
func (h *FavouriteHandler) List(c *gin.Context) {
	favs, err := h.Favourites.ListByUser(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, favs, "favourites", nil)
}
