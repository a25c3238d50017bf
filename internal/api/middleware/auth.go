package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kvnochieng52/flight-distance/internal/service"
	"github.com/kvnochieng52/flight-distance/pkg/response"
)

// sessionKey holds the *service.Session of an authenticated request.
const sessionKey = "session"

// BearerAuth resolves Authorization: Bearer <token> into a session and puts
// it on the context. Revoked, expired or unknown tokens are rejected with 401,
// tokens of suspended accounts with 403.
func BearerAuth(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "Unauthenticated.")
			c.Abort()
			return
		}

		session, err := authSvc.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrAccountInactive):
				response.Forbidden(c, "Your account is pending approval.")
			case errors.Is(err, service.ErrTokenExpired):
				response.Unauthorized(c, "Token has expired.")
			case errors.Is(err, service.ErrUnauthenticated):
				response.Unauthorized(c, "Unauthenticated.")
			default:
				c.Error(err)
				response.Error(c, http.StatusInternalServerError, "Failed to authenticate request")
			}
			c.Abort()
			return
		}

		SetSession(c, session)
		c.Next()
	}
}

// SetSession attaches an authenticated session to the request.
func SetSession(c *gin.Context, s *service.Session) {
	c.Set(sessionKey, s)
}

// GetSession returns the session BearerAuth stored, if any.
func GetSession(c *gin.Context) (*service.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*service.Session)
	return s, ok && s != nil
}
