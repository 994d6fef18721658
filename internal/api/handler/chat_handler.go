package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chlyn/COSC369-Final-Project/internal/dto"
	"github.com/chlyn/COSC369-Final-Project/internal/service"
	"github.com/chlyn/COSC369-Final-Project/pkg/response"
)

// GenerationFailedMessage is shown in the chat window when the model fails.
const GenerationFailedMessage = "Sorry, I couldn't generate a response right now. Please try again."

// ChatHandler chat turns
type ChatHandler struct {
	chatSvc service.ChatService
}

func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// Send POST /api/chat
func (h *ChatHandler) Send(c *gin.Context) {
	var req dto.ChatRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	result, err := h.chatSvc.Send(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleChatError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *ChatHandler) handleChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		response.BadRequest(c, 14001, "Message must not be empty")
	case errors.Is(err, service.ErrMissingUser):
		response.Unauthorized(c, 10002, "userId is required")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 14004, "User not found")
	case errors.Is(err, service.ErrConversationConflict):
		response.Conflict(c, 14003, "Conversation was updated by another request")
	case errors.Is(err, service.ErrGenerationFailed):
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, 14002, GenerationFailedMessage)
	default:
		internalError(c, err)
	}
}
