package service

import (
	"cmp"
	"context"
	"errors"
	"io"
	"slices"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/model"
	"github.com/kvnochieng52/flight-distance/internal/repository"
	"github.com/kvnochieng52/flight-distance/pkg/geo"
)

var ErrCoordinateNotFound = errors.New("coordinate not found or inactive")

const CoordinatesCacheKey = "coordinates:all"

// CoordinateService read access to the coordinate catalog.
type CoordinateService interface {
	List(ctx context.Context, req *dto.CoordinateListRequest) (*dto.CoordinateList, error)
	GetByID(ctx context.Context, id uint) (*dto.CoordinateResponse, error)
	SearchByLocation(ctx context.Context, location string) ([]dto.CoordinateResponse, error)
	// Nearby returns active coordinates within the radius, closest first.
	Nearby(ctx context.Context, req *dto.NearbyRequest) (*dto.NearbyResult, error)
	// Export writes the active catalog as an XLSX workbook.
	Export(ctx context.Context, w io.Writer) error
}

type coordinateService struct {
	repo     *repository.Repository
	cache    Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCoordinateService creates a CoordinateService. cache may be nil.
func NewCoordinateService(repo *repository.Repository, cache Cache, cacheTTL time.Duration, logger *zap.Logger) CoordinateService {
	return &coordinateService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *coordinateService) List(ctx context.Context, req *dto.CoordinateListRequest) (*dto.CoordinateList, error) {
	if req.AllMode() {
		items, err := s.listAll(ctx, req.Search)
		if err != nil {
			return nil, err
		}
		return &dto.CoordinateList{Items: items, Total: int64(len(items)), All: true}, nil
	}

	page, perPage := req.GetPage(), req.GetPerPage()
	coords, total, err := s.repo.Coordinate.ListActive(ctx, req.Search, req.GetOffset(), perPage)
	if err != nil {
		s.logger.Error("list coordinates failed", zap.Error(err))
		return nil, err
	}

	return &dto.CoordinateList{
		Items:   toCoordinateResponses(coords),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// listAll serves the unfiltered full list from cache when possible.
func (s *coordinateService) listAll(ctx context.Context, search string) ([]dto.CoordinateResponse, error) {
	cacheable := search == "" && s.cache != nil
	if cacheable {
		var cached []dto.CoordinateResponse
		hit, err := s.cache.GetJSON(ctx, CoordinatesCacheKey, &cached)
		if err != nil {
			s.logger.Warn("read coordinate cache failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	coords, err := s.repo.Coordinate.ListAllActive(ctx, search)
	if err != nil {
		s.logger.Error("list all coordinates failed", zap.Error(err))
		return nil, err
	}
	items := toCoordinateResponses(coords)

	if cacheable {
		if err := s.cache.SetJSON(ctx, CoordinatesCacheKey, items, s.cacheTTL); err != nil {
			s.logger.Warn("write coordinate cache failed", zap.Error(err))
		}
	}
	return items, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *coordinateService) GetByID(ctx context.Context, id uint) (*dto.CoordinateResponse, error) {
	coord, err := s.repo.Coordinate.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCoordinateNotFound
		}
		s.logger.Error("query coordinate failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toCoordinateResponse(coord)
	return &resp, nil
}

// ────────────────────── SearchByLocation ──────────────────────

func (s *coordinateService) SearchByLocation(ctx context.Context, location string) ([]dto.CoordinateResponse, error) {
	coords, err := s.repo.Coordinate.SearchByName(ctx, location)
	if err != nil {
		s.logger.Error("search coordinates failed", zap.String("location", location), zap.Error(err))
		return nil, err
	}
	return toCoordinateResponses(coords), nil
}

// ────────────────────── Nearby ──────────────────────

func (s *coordinateService) Nearby(ctx context.Context, req *dto.NearbyRequest) (*dto.NearbyResult, error) {
	center := geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	radius := req.GetRadius()

	candidates, err := s.repo.Coordinate.WithinBounds(ctx, geo.BoundingBox(center, radius))
	if err != nil {
		s.logger.Error("nearby query failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.NearbyCoordinate, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		distance := geo.DistanceKm(center, geo.Point{Latitude: c.Latitude, Longitude: c.Longitude})
		if distance > radius {
			continue
		}
		result = append(result, dto.NearbyCoordinate{
			CoordinateResponse: toCoordinateResponse(c),
			Distance:           distance,
		})
	}

	slices.SortFunc(result, func(a, b dto.NearbyCoordinate) int {
		return cmp.Or(
			cmp.Compare(a.Distance, b.Distance),
			cmp.Compare(a.LocationName, b.LocationName),
			cmp.Compare(a.ID, b.ID),
		)
	})

	return &dto.NearbyResult{
		Coordinates: result,
		Params: dto.SearchParams{
			Latitude:  center.Latitude,
			Longitude: center.Longitude,
			Radius:    radius,
		},
	}, nil
}

// ────────────────────── Export ──────────────────────

var exportHeader = []interface{}{"ID", "Location Name", "Coordinate", "Latitude", "Longitude"}

func (s *coordinateService) Export(ctx context.Context, w io.Writer) error {
	coords, err := s.repo.Coordinate.ListAllActive(ctx, "")
	if err != nil {
		s.logger.Error("list coordinates for export failed", zap.Error(err))
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Coordinates"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return err
	}
	for i, c := range coords {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{c.ID, c.LocationName, c.Coordinate, c.Latitude, c.Longitude}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "B", "C", 32); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		s.logger.Error("write coordinate export failed", zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func toCoordinateResponse(c *model.Coordinate) dto.CoordinateResponse {
	return dto.CoordinateResponse{
		ID:           c.ID,
		LocationName: c.LocationName,
		Coordinate:   c.Coordinate,
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
		IsActive:     c.IsActive,
		CreatedAt:    formatTime(c.CreatedAt),
		UpdatedAt:    formatTime(c.UpdatedAt),
	}
}

func toCoordinateResponses(coords []model.Coordinate) []dto.CoordinateResponse {
	result := make([]dto.CoordinateResponse, 0, len(coords))
	for i := range coords {
		result = append(result, toCoordinateResponse(&coords[i]))
	}
	return result
}
