package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/application"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/response"
	"marketplace-backend/pkg/validation"
)

type OrderHandler struct {
	Orders *application.OrderService
}

func NewOrderHandler(orders *application.OrderService) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

type orderRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"omitempty,gte=1"`
	Type      string `json:"type" binding:"omitempty,oneof=purchase reservation"`
}

// Create POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	o, err := h.Orders.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), application.OrderInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Type:      req.Type,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, o, "order placed", nil)
}

// Get GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.Orders.Get(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "order", nil)
}

// ListMine GET /api/orders — orders placed by the caller.
func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.Orders.ListByBuyer(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", nil)
}

// ListSales GET /api/orders/sales — orders on the caller's listings.
func (h *OrderHandler) ListSales(c *gin.Context) {
	orders, err := h.Orders.ListBySeller(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "sales", nil)
}

// UpdateStatus PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	o, err := h.Orders.UpdateStatus(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"), req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "status updated", nil)
}
