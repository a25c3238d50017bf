package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/config"
	"github.com/kvnochieng52/flight-distance/internal/repository"
	"github.com/kvnochieng52/flight-distance/pkg/jwt"
	"github.com/kvnochieng52/flight-distance/pkg/mailer"
	"github.com/kvnochieng52/flight-distance/pkg/metrics"
	"github.com/kvnochieng52/flight-distance/pkg/storage"
)

// Cache stores JSON snapshots of read-mostly catalog queries.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Notifier tells administrators about accounts waiting for approval.
type Notifier interface {
	NotifyRegistration(r mailer.Registration) error
}

// Options carries the optional collaborators. Nil fields disable the feature.
type Options struct {
	Cache    Cache
	Notifier Notifier
	Metrics  *metrics.Metrics
}

// Service aggregates every service behind one handle.
type Service struct {
	Auth       AuthService
	User       UserService
	Coordinate CoordinateService
	Plane      PlaneService
	News       NewsService
	Terms      TermsService
}

// NewService wires the services.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	store storage.Store,
	opts Options,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, opts.Notifier, opts.Metrics, logger),
		User:       NewUserService(repo, logger),
		Coordinate: NewCoordinateService(repo, opts.Cache, cfg.Redis.CacheTTL, logger),
		Plane:      NewPlaneService(repo, opts.Cache, cfg.Redis.CacheTTL, logger),
		News:       NewNewsService(repo, store, cfg.Storage.MaxThumbnailSize, logger),
		Terms:      NewTermsService(repo, logger),
	}
}

// ── shared helpers ──

const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
