package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kvnochieng52/flight-distance/internal/service"
	"github.com/kvnochieng52/flight-distance/pkg/response"
)

// TermsHandler serves the active terms and conditions.
type TermsHandler struct {
	termsSvc service.TermsService
	debug    bool
}

// NewTermsHandler creates a TermsHandler.
func NewTermsHandler(termsSvc service.TermsService, debug bool) *TermsHandler {
	return &TermsHandler{termsSvc: termsSvc, debug: debug}
}

// GetActive GET /api/terms
func (h *TermsHandler) GetActive(c *gin.Context) {
	terms, err := h.termsSvc.GetActive(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrTermsNotFound) {
			response.NotFound(c, "No active terms and conditions found")
			return
		}
		internalError(c, "Failed to retrieve terms and conditions", err, h.debug)
		return
	}

	response.OK(c, "", terms)
}
