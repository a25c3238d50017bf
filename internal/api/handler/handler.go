package handler

import (
	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/internal/service"
)

// Handler groups the HTTP handlers.
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Coordinate *CoordinateHandler
	Plane      *PlaneHandler
	News       *NewsHandler
	Terms      *TermsHandler
}

// NewHandler wires one handler per service. debug exposes error details in
// 500 responses.
func NewHandler(svc *service.Service, debug bool, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, debug, logger),
		User:       NewUserHandler(svc.User, debug),
		Coordinate: NewCoordinateHandler(svc.Coordinate, debug),
		Plane:      NewPlaneHandler(svc.Plane, debug),
		News:       NewNewsHandler(svc.News, debug),
		Terms:      NewTermsHandler(svc.Terms, debug),
	}
}
