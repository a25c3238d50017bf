package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/model"
	"github.com/kvnochieng52/flight-distance/internal/repository"
)

var ErrPlaneNotFound = errors.New("plane not found")

const PlanesCacheKey = "planes:all"

// PlaneService read access to the plane catalog.
type PlaneService interface {
	List(ctx context.Context) ([]dto.PlaneResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.PlaneResponse, error)
}

type planeService struct {
	repo     *repository.Repository
	cache    Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewPlaneService creates a PlaneService. cache may be nil.
func NewPlaneService(repo *repository.Repository, cache Cache, cacheTTL time.Duration, logger *zap.Logger) PlaneService {
	return &planeService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (s *planeService) List(ctx context.Context) ([]dto.PlaneResponse, error) {
	if s.cache != nil {
		var cached []dto.PlaneResponse
		hit, err := s.cache.GetJSON(ctx, PlanesCacheKey, &cached)
		if err != nil {
			s.logger.Warn("read plane cache failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	planes, err := s.repo.Plane.List(ctx)
	if err != nil {
		s.logger.Error("list planes failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PlaneResponse, 0, len(planes))
	for i := range planes {
		result = append(result, toPlaneResponse(&planes[i]))
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, PlanesCacheKey, result, s.cacheTTL); err != nil {
			s.logger.Warn("write plane cache failed", zap.Error(err))
		}
	}
	return result, nil
}

func (s *planeService) GetByID(ctx context.Context, id uint) (*dto.PlaneResponse, error) {
	plane, err := s.repo.Plane.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaneNotFound
		}
		s.logger.Error("query plane failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toPlaneResponse(plane)
	return &resp, nil
}

func toPlaneResponse(p *model.Plane) dto.PlaneResponse {
	return dto.PlaneResponse{
		ID:           p.ID,
		Name:         p.Name,
		Model:        p.Model,
		Capacity:     p.Capacity,
		Speed:        p.Speed,
		FuelBurnRate: p.FuelBurnRate,
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}
