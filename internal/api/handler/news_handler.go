package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/service"
	apperrors "github.com/kvnochieng52/flight-distance/pkg/errors"
	"github.com/kvnochieng52/flight-distance/pkg/response"
)

const msgNewsNotFound = "News not found"

// NewsHandler news feed. Create and update accept JSON or multipart forms;
// thumbnails can only be sent as multipart.
type NewsHandler struct {
	newsSvc service.NewsService
	debug   bool
}

// NewNewsHandler creates a NewsHandler.
func NewNewsHandler(newsSvc service.NewsService, debug bool) *NewsHandler {
	return &NewsHandler{newsSvc: newsSvc, debug: debug}
}

// Latest the home screen feed: newest active items.
// GET /api/news
func (h *NewsHandler) Latest(c *gin.Context) {
	items, err := h.newsSvc.Latest(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to retrieve news", err, h.debug)
		return
	}

	response.OK(c, "", items)
}

// All every item including inactive ones, for management.
// GET /api/news/all
func (h *NewsHandler) All(c *gin.Context) {
	items, err := h.newsSvc.All(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to retrieve news", err, h.debug)
		return
	}

	response.OK(c, "", items)
}

// Create POST /api/news
func (h *NewsHandler) Create(c *gin.Context) {
	var req dto.NewsRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	item, err := h.newsSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleNewsError(c, err, "Failed to create news")
		return
	}

	response.Created(c, "News created successfully", item)
}

// Get GET /api/news/:id
func (h *NewsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, msgNewsNotFound)
		return
	}

	item, err := h.newsSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleNewsError(c, err, "Failed to retrieve news")
		return
	}

	response.OK(c, "", item)
}

// Update replaces the mutable fields. An unknown id is reported before the
// body is validated.
// PUT|PATCH /api/news/:id
func (h *NewsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, msgNewsNotFound)
		return
	}
	if _, err := h.newsSvc.GetByID(c.Request.Context(), id); err != nil {
		h.handleNewsError(c, err, "Failed to update news")
		return
	}

	var req dto.NewsRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	item, err := h.newsSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleNewsError(c, err, "Failed to update news")
		return
	}

	response.OK(c, "News updated successfully", item)
}

// Delete removes the item and its thumbnail.
// DELETE /api/news/:id
func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, msgNewsNotFound)
		return
	}

	if err := h.newsSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleNewsError(c, err, "Failed to delete news")
		return
	}

	response.OK(c, "News deleted successfully", nil)
}

func (h *NewsHandler) handleNewsError(c *gin.Context, err error, message string) {
	if ve, ok := apperrors.AsValidation(err); ok {
		response.ValidationFailed(c, ve.Fields)
		return
	}
	switch {
	case errors.Is(err, service.ErrNewsNotFound):
		response.NotFound(c, msgNewsNotFound)
	default:
		internalError(c, message, err, h.debug)
	}
}
