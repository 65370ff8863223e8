package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/application"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/response"
	"marketplace-backend/pkg/validation"
)

type ChatHandler struct {
	Chats *application.ChatService
}

func NewChatHandler(chats *application.ChatService) *ChatHandler {
	return &ChatHandler{Chats: chats}
}

type openChatRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// Open POST /api/chats — returns the existing dialog with the other user
// or creates one.
func (h *ChatHandler) Open(c *gin.Context) {
	var req openChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	chat, err := h.Chats.Open(c.Request.Context(), c.GetString(middleware.CtxUserID), req.UserID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, chat, "chat", nil)
}

// List GET /api/chats
func (h *ChatHandler) List(c *gin.Context) {
	chats, err := h.Chats.ListByUser(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, chats, "chats", nil)
}

// Get GET /api/chats/:id — dialog with messages, participants only.
func (h *ChatHandler) Get(c *gin.Context) {
	chat, err := h.Chats.Get(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, chat, "chat", nil)
}

type messageRequest struct {
	Text string `json:"text" binding:"required,min=1,max=5000"`
}

// Send POST /api/chats/:id/messages
func (h *ChatHandler) Send(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Chats.Send(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"), req.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m, "message sent", nil)
}
