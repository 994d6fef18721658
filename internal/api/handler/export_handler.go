package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/chlyn/COSC369-Final-Project/internal/dto"
	"github.com/chlyn/COSC369-Final-Project/internal/service"
	"github.com/chlyn/COSC369-Final-Project/pkg/response"
)

// ExportHandler schedule downloads
type ExportHandler struct {
	exportSvc service.ExportService
}

func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSchedule GET /api/schedule/export?userId=&semester=&format=xlsx|ics
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	var q dto.ExportQuery
	if !bindQuery(c, &q) {
		return
	}
	userID, ok := resolveUserID(c, q.UserID)
	if !ok {
		return
	}

	file, err := h.exportSvc.Export(c.Request.Context(), userID, q.Semester, q.Format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoClasses):
		response.NotFound(c, 16001, "No classes in this semester's schedule")
	case errors.Is(err, service.ErrExportUnknownFormat):
		response.BadRequest(c, 16002, "Format must be xlsx or ics")
	case errors.Is(err, service.ErrExportTermNotConfigured):
		response.BadRequest(c, 16003, "Semester dates are not configured")
	default:
		internalError(c, err)
	}
}
