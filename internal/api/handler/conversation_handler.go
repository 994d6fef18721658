package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/chlyn/COSC369-Final-Project/internal/dto"
	"github.com/chlyn/COSC369-Final-Project/internal/service"
	"github.com/chlyn/COSC369-Final-Project/pkg/response"
)

// ConversationHandler saved chat transcripts
type ConversationHandler struct {
	conversationSvc service.ConversationService
}

func NewConversationHandler(conversationSvc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationSvc: conversationSvc}
}

// List GET /api/conversations?userId=
func (h *ConversationHandler) List(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	list, err := h.conversationSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleConversationError(c, err)
		return
	}
	response.OK(c, list)
}

// Get GET /api/conversations/:id?userId=
func (h *ConversationHandler) Get(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	detail, err := h.conversationSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleConversationError(c, err)
		return
	}
	response.OK(c, detail)
}

// Delete DELETE /api/conversations/:id?userId=
func (h *ConversationHandler) Delete(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.conversationSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleConversationError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ConversationHandler) caller(c *gin.Context) (string, bool) {
	var q dto.UserQuery
	if !bindQuery(c, &q) {
		return "", false
	}
	return resolveUserID(c, q.UserID)
}

func (h *ConversationHandler) handleConversationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrConversationNotFound):
		response.NotFound(c, 15001, "Conversation not found")
	default:
		internalError(c, err)
	}
}
