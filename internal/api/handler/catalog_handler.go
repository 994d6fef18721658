package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/chlyn/COSC369-Final-Project/internal/service"
	"github.com/chlyn/COSC369-Final-Project/pkg/response"
)

// CatalogHandler read-only course catalog
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// List GET /api/courses
func (h *CatalogHandler) List(c *gin.Context) {
	courses, err := h.catalogSvc.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	response.OK(c, service.ToCourseResponses(courses))
}

// Get GET /api/courses/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	course, err := h.catalogSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 13001, "Course not found")
			return
		}
		internalError(c, err)
		return
	}
	response.OK(c, service.ToCourseResponse(*course))
}
