package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/service"
	apperrors "github.com/kvnochieng52/flight-distance/pkg/errors"
	"github.com/kvnochieng52/flight-distance/pkg/response"
)

const msgBadCredentials = "The provided credentials are incorrect."

// AuthHandler registration, login and token revocation.
type AuthHandler struct {
	authSvc service.AuthService
	debug   bool
	logger  *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService, debug bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, debug: debug, logger: logger}
}

// Register creates an inactive account. No token is issued.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		fields := bindingErrors(err)
		h.checkEmailTaken(c, req.Email, fields)
		h.logger.Warn("user registration rejected",
			zap.String("email", req.Email),
			zap.Any("errors", fields),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
		response.ValidationFailed(c, fields)
		return
	}

	if _, err := h.authSvc.Register(c.Request.Context(), &req, requestMeta(c)); err != nil {
		if ve, ok := apperrors.AsValidation(err); ok {
			response.ValidationFailed(c, ve.Fields)
			return
		}
		internalError(c, "Failed to register user", err, h.debug)
		return
	}

	response.Created(c, "Registration successful! Your account is pending approval by an administrator.", nil)
}

// checkEmailTaken adds the uniqueness error to fields when the address itself passed validation.
func (h *AuthHandler) checkEmailTaken(c *gin.Context, email string, fields map[string][]string) {
	if email == "" {
		return
	}
	if _, invalid := fields["email"]; invalid {
		return
	}
	if _, malformed := fields["request"]; malformed {
		return
	}
	taken, err := h.authSvc.EmailTaken(c.Request.Context(), email)
	if err != nil {
		h.logger.Warn("email uniqueness check failed", zap.Error(err))
		return
	}
	if taken {
		fields["email"] = append(fields["email"], service.MsgEmailTaken)
	}
}

// Login issues a token for the device, replacing the previous one.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, msgBadCredentials)
		case errors.Is(err, service.ErrAccountInactive):
			response.Forbidden(c, "Your account is pending approval.")
		default:
			internalError(c, "Login failed", err, h.debug)
		}
		return
	}

	response.OK(c, "Login successful", result)
}

// CreateToken is the older login entry point. Bad credentials are reported
// as a validation error on email.
// POST /api/auth/token
func (h *AuthHandler) CreateToken(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.ValidationFailed(c, map[string][]string{"email": {msgBadCredentials}})
		case errors.Is(err, service.ErrAccountInactive):
			response.Forbidden(c, "Your account is pending approval.")
		default:
			internalError(c, "Failed to create token", err, h.debug)
		}
		return
	}

	response.OK(c, "Token created successfully", result)
}

// RevokeToken deletes the token that authenticated this request.
// POST /api/auth/revoke-token
func (h *AuthHandler) RevokeToken(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	if err := h.authSvc.RevokeCurrent(c.Request.Context(), session); err != nil {
		internalError(c, "Failed to revoke token", err, h.debug)
		return
	}

	response.OK(c, "Token revoked successfully", nil)
}

// RevokeAllTokens deletes every token of the current user.
// POST /api/auth/revoke-all-tokens
func (h *AuthHandler) RevokeAllTokens(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	if _, err := h.authSvc.RevokeAll(c.Request.Context(), session); err != nil {
		internalError(c, "Failed to revoke tokens", err, h.debug)
		return
	}

	response.OK(c, "All tokens revoked successfully", nil)
}
