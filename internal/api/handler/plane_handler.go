package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kvnochieng52/flight-distance/internal/service"
	"github.com/kvnochieng52/flight-distance/pkg/response"
)

// PlaneHandler serves the aircraft catalog.
type PlaneHandler struct {
	planeSvc service.PlaneService
	debug    bool
}

// NewPlaneHandler creates a PlaneHandler.
func NewPlaneHandler(planeSvc service.PlaneService, debug bool) *PlaneHandler {
	return &PlaneHandler{planeSvc: planeSvc, debug: debug}
}

// ListPlanes every plane, ordered by name.
// GET /api/planes
func (h *PlaneHandler) ListPlanes(c *gin.Context) {
	planes, err := h.planeSvc.List(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to retrieve planes", err, h.debug)
		return
	}

	response.OK(c, "Planes retrieved successfully", planes)
}

// GetPlane GET /api/planes/:id
func (h *PlaneHandler) GetPlane(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "Plane not found")
		return
	}

	plane, err := h.planeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlaneNotFound) {
			response.NotFound(c, "Plane not found")
			return
		}
		internalError(c, "Failed to retrieve plane", err, h.debug)
		return
	}

	response.OK(c, "Plane retrieved successfully", plane)
}
