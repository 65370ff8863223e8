package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/application"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/response"
	"marketplace-backend/pkg/validation"
)

type ReviewHandler struct {
	Reviews *application.ReviewService
}

func NewReviewHandler(reviews *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

type reviewRequest struct {
	Comment string `json:"comment" binding:"required,min=1,max=2000"`
}

// Create POST /api/products/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Reviews.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"), req.Comment)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r, "review created", nil)
}

// ListByProduct GET /api/products/:id/reviews
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	reviews, err := h.Reviews.ListByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviews, "reviews", nil)
}

// Delete DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Reviews.Delete(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "review deleted", nil)
}
