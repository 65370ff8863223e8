package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/application"
	"marketplace-backend/pkg/response"
	"marketplace-backend/pkg/validation"
)

type CategoryHandler struct {
	Categories *application.CategoryService
}

func NewCategoryHandler(categories *application.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// Create POST /api/categories — idempotent on name.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat, "category", nil)
}

// List GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Categories.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cats, "categories", nil)
}

// Get GET /api/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.Categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat, "category", nil)
}

// Delete DELETE /api/categories/:id (admin only)
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "category deleted", nil)
}
