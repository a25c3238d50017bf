package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kvnochieng52/flight-distance/internal/api/middleware"
	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/service"
	"github.com/kvnochieng52/flight-distance/pkg/response"
)

// MustGetSession extracts the session BearerAuth stored on the context.
// On false a 401 has been written and the caller should return.
func MustGetSession(c *gin.Context) (*service.Session, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		response.Unauthorized(c, "Unauthenticated.")
		return nil, false
	}
	return session, true
}

// parseID reads a positive numeric :id path parameter. Anything else is
// reported as not found.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func requestMeta(c *gin.Context) dto.RequestMeta {
	return dto.RequestMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

// internalError records err for the logger and error reporter and answers 500.
func internalError(c *gin.Context, message string, err error, debug bool) {
	c.Error(err)
	response.InternalError(c, message, err.Error(), debug)
}
