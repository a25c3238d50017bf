package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/service"
	"github.com/kvnochieng52/flight-distance/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CoordinateHandler serves the coordinate catalog.
type CoordinateHandler struct {
	coordinateSvc service.CoordinateService
	debug         bool
}

// NewCoordinateHandler creates a CoordinateHandler.
func NewCoordinateHandler(coordinateSvc service.CoordinateService, debug bool) *CoordinateHandler {
	return &CoordinateHandler{coordinateSvc: coordinateSvc, debug: debug}
}

// ListCoordinates active coordinates by name, paginated or all at once.
// GET /api/coordinates?per_page=&page=&search=&all=
func (h *CoordinateHandler) ListCoordinates(c *gin.Context) {
	var req dto.CoordinateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	list, err := h.coordinateSvc.List(c.Request.Context(), &req)
	if err != nil {
		internalError(c, "Failed to retrieve coordinates", err, h.debug)
		return
	}

	if list.All {
		response.OKWithMeta(c, "All active coordinates retrieved successfully", list.Items, gin.H{"total": list.Total})
		return
	}
	page := response.NewPage(list.Items, len(list.Items), list.Total, list.Page, list.PerPage)
	response.OK(c, "Active coordinates retrieved successfully", page)
}

// GetCoordinate a single active coordinate.
// GET /api/coordinates/:id
func (h *CoordinateHandler) GetCoordinate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, "Coordinate not found or inactive")
		return
	}

	coord, err := h.coordinateSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCoordinateError(c, err, "Failed to retrieve coordinate")
		return
	}

	response.OK(c, "Coordinate retrieved successfully", coord)
}

// SearchByLocation case-insensitive substring match on location name.
// GET /api/coordinates/search/location?location=
func (h *CoordinateHandler) SearchByLocation(c *gin.Context) {
	var req dto.LocationSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil || strings.TrimSpace(req.Location) == "" {
		response.BadRequest(c, "Location parameter is required")
		return
	}

	coords, err := h.coordinateSvc.SearchByLocation(c.Request.Context(), req.Location)
	if err != nil {
		internalError(c, "Failed to search coordinates", err, h.debug)
		return
	}

	response.OKWithMeta(c, "Coordinates found", coords, gin.H{"count": len(coords)})
}

// GetNearby coordinates within radius km of a point, closest first.
// GET /api/coordinates/search/nearby?latitude=&longitude=&radius=
func (h *CoordinateHandler) GetNearby(c *gin.Context) {
	var req dto.NearbyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	result, err := h.coordinateSvc.Nearby(c.Request.Context(), &req)
	if err != nil {
		internalError(c, "Failed to find nearby coordinates", err, h.debug)
		return
	}

	radius := strconv.FormatFloat(result.Params.Radius, 'f', -1, 64)
	response.OKWithMeta(c, "Coordinates within "+radius+"km radius found", result.Coordinates, gin.H{
		"count":         len(result.Coordinates),
		"search_params": result.Params,
	})
}

// ExportCoordinates downloads the active catalog as a spreadsheet.
// GET /api/coordinates/export
func (h *CoordinateHandler) ExportCoordinates(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.coordinateSvc.Export(c.Request.Context(), &buf); err != nil {
		internalError(c, "Failed to export coordinates", err, h.debug)
		return
	}

	filename := "coordinates-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *CoordinateHandler) handleCoordinateError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, service.ErrCoordinateNotFound):
		response.NotFound(c, "Coordinate not found or inactive")
	default:
		internalError(c, message, err, h.debug)
	}
}
