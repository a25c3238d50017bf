package middleware

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/pkg/response"
)

// Recovery turns a handler panic into an enveloped 500. The panic value is only
// sent to the caller when debug is set.
func Recovery(logger *zap.Logger, debug bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		detail := fmt.Sprint(rec)
		logger.Error("panic recovered",
			zap.String("panic", detail),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", GetRequestID(c)),
			zap.Stack("stack"),
		)
		response.InternalError(c, "Server error", detail, debug)
		c.Abort()
	})
}
