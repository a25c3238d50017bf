package middleware

import (
	"strconv"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// ErrorReporter sends the errors recorded on 5xx responses to Sentry. It
// expects sentrygin to have attached a hub earlier in the chain.
func ErrorReporter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 500 || len(c.Errors) == 0 {
			return
		}
		hub := sentrygin.GetHubFromContext(c)
		if hub == nil {
			return
		}
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("route", c.FullPath())
			scope.SetTag("request_id", GetRequestID(c))
			if session, ok := GetSession(c); ok {
				scope.SetUser(sentry.User{ID: strconv.FormatUint(uint64(session.User.ID), 10)})
			}
			for _, e := range c.Errors {
				hub.CaptureException(e.Err)
			}
		})
	}
}
