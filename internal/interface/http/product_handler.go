package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/application"
	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/response"
	"marketplace-backend/pkg/validation"
)

type ProductHandler struct {
	Products *application.ProductService
	Logger   *logrus.Logger
}

func NewProductHandler(products *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Products: products, Logger: logger}
}

type productRequest struct {
	Title        string   `json:"title" binding:"required,min=2,max=200"`
	Description  string   `json:"description" binding:"max=5000"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	CategoryID   string   `json:"category_id" binding:"omitempty,uuid"`
	CategoryName string   `json:"category_name" binding:"required_without=CategoryID,omitempty,min=2,max=100"`
	Status       string   `json:"status" binding:"omitempty,oneof=draft published sold archived"`
	Images       []string `json:"images" binding:"omitempty,dive,url"`
}

// Create POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Products.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), application.ProductInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Status:       req.Status,
		Images:       req.Images,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "product created", nil)
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

// List GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	f := repository.ProductFilter{
		CategoryID: c.Query("category_id"),
		Status:     c.Query("status"),
		Sort:       c.Query("sort"),
		Page:       intQuery(c, "page", 1),
		Limit:      intQuery(c, "limit", 20),
	}
	f.MinPrice, _ = strconv.ParseFloat(c.Query("min_price"), 64)
	f.MaxPrice, _ = strconv.ParseFloat(c.Query("max_price"), 64)

	items, total, err := h.Products.List(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "products", pageMeta(f.Page, f.Limit, total))
}

// ListMine GET /api/products/mine
func (h *ProductHandler) ListMine(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 20)
	items, total, err := h.Products.ListMine(c.Request.Context(), c.GetString(middleware.CtxUserID), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "products", pageMeta(page, limit, total))
}

// Search GET /api/products/search?q=
func (h *ProductHandler) Search(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 20)
	items, total, err := h.Products.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "search results", pageMeta(page, limit, total))
}

type productUpdateRequest struct {
	Title        string   `json:"title" binding:"omitempty,min=2,max=200"`
	Description  string   `json:"description" binding:"omitempty,max=5000"`
	Price        float64  `json:"price" binding:"omitempty,gt=0"`
	CategoryID   string   `json:"category_id" binding:"omitempty,uuid"`
	CategoryName string   `json:"category_name" binding:"omitempty,min=2,max=100"`
	Images       []string `json:"images" binding:"omitempty,dive,url"`
}

// Update PUT /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Products.Update(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"), application.ProductInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Images:       req.Images,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product updated", nil)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus PATCH /api/products/:id/status
func (h *ProductHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Products.UpdateStatus(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"), req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "status updated", nil)
}

// Delete DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Products.Delete(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "product deleted", nil)
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}

func pageMeta(page, limit, total int) gin.H {
	return gin.H{"page": page, "limit": limit, "total": total}
}
