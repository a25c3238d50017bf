package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kvnochieng52/flight-distance/internal/service"
	"github.com/kvnochieng52/flight-distance/pkg/response"
)

// UserHandler exposes the authenticated account.
type UserHandler struct {
	userSvc service.UserService
	debug   bool
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService, debug bool) *UserHandler {
	return &UserHandler{userSvc: userSvc, debug: debug}
}

// GetCurrentUser returns the owner of the bearer token.
// GET /api/user
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), session.User.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, "Unauthenticated.")
			return
		}
		internalError(c, "Failed to retrieve user", err, h.debug)
		return
	}

	response.OK(c, "User retrieved successfully", user)
}
