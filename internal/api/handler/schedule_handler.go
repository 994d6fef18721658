package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/chlyn/COSC369-Final-Project/internal/dto"
	"github.com/chlyn/COSC369-Final-Project/internal/service"
	"github.com/chlyn/COSC369-Final-Project/pkg/response"
)

// ScheduleHandler enrollment endpoints
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Get GET /api/schedule?userId=&semester=
func (h *ScheduleHandler) Get(c *gin.Context) {
	var q dto.ScheduleQuery
	if !bindQuery(c, &q) {
		return
	}
	userID, ok := resolveUserID(c, q.UserID)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Get(c.Request.Context(), userID, q.Semester)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// Add POST /api/schedule/add
func (h *ScheduleHandler) Add(c *gin.Context) {
	var req dto.EnrollRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Add(c.Request.Context(), userID, req.Semester, req.CourseID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// Drop POST /api/schedule/drop. Dropping a course that is not enrolled succeeds.
func (h *ScheduleHandler) Drop(c *gin.Context) {
	var req dto.EnrollRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Drop(c.Request.Context(), userID, req.Semester, req.CourseID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// Semesters GET /api/semesters
func (h *ScheduleHandler) Semesters(c *gin.Context) {
	response.OK(c, h.scheduleSvc.Semesters())
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "Course not found")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Conflict(c, 13002, "Course already in schedule")
	case errors.Is(err, service.ErrScheduleConflict):
		response.Conflict(c, 13004, "Schedule was updated by another request, reload and retry")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 13003, "User not found")
	default:
		internalError(c, err)
	}
}
