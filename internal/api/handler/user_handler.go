package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/chlyn/COSC369-Final-Project/internal/dto"
	"github.com/chlyn/COSC369-Final-Project/internal/service"
	"github.com/chlyn/COSC369-Final-Project/pkg/response"
)

// UserHandler profile endpoints
type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Me GET /api/user/me?userId=
func (h *UserHandler) Me(c *gin.Context) {
	var q dto.UserQuery
	if !bindQuery(c, &q) {
		return
	}
	userID, ok := resolveUserID(c, q.UserID)
	if !ok {
		return
	}

	user, err := h.userSvc.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

// UpdateProfile PATCH /api/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

// UpdateAcademic PATCH /api/user/academic
func (h *UserHandler) UpdateAcademic(c *gin.Context) {
	var req dto.UpdateAcademicRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	user, err := h.userSvc.UpdateAcademic(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

// UpdatePassword PATCH /api/user/password. The new password is never echoed.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	if err := h.userSvc.UpdatePassword(c.Request.Context(), userID, req.Password); err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Password updated"})
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "User not found")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 12002, "An account with this email already exists")
	case errors.Is(err, service.ErrEmptyName):
		response.BadRequest(c, 12003, "Name must not be empty")
	default:
		internalError(c, err)
	}
}
