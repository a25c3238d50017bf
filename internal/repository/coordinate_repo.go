package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/model"
	"github.com/kvnochieng52/flight-distance/pkg/geo"
)

// CoordinateRepository coordinate catalog data access. Every read returns
// active rows only.
type CoordinateRepository interface {
	ListActive(ctx context.Context, search string, offset, limit int) ([]model.Coordinate, int64, error)
	ListAllActive(ctx context.Context, search string) ([]model.Coordinate, error)
	GetActiveByID(ctx context.Context, id uint) (*model.Coordinate, error)
	SearchByName(ctx context.Context, name string) ([]model.Coordinate, error)
	// WithinBounds returns active rows inside the box, a superset of any
	// circle the box was computed for.
	WithinBounds(ctx context.Context, b geo.Bounds) ([]model.Coordinate, error)
	CreateBatch(ctx context.Context, coords []model.Coordinate, batchSize int) error
	Count(ctx context.Context) (int64, error)
}

type coordinateRepo struct {
	db *gorm.DB
}

// NewCoordinateRepo creates a CoordinateRepository.
func NewCoordinateRepo(db *gorm.DB) CoordinateRepository {
	return &coordinateRepo{db: db}
}

func (r *coordinateRepo) active(ctx context.Context, search string) *gorm.DB {
	db := r.db.WithContext(ctx).
		Model(&model.Coordinate{}).
		Where("is_active = ?", true)
	if search != "" {
		db = db.Where(`LOWER(location_name) LIKE ? ESCAPE '\'`, containsPattern(search))
	}
	return db
}

func (r *coordinateRepo) ListActive(ctx context.Context, search string, offset, limit int) ([]model.Coordinate, int64, error) {
	var coords []model.Coordinate
	var total int64

	if err := r.active(ctx, search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.active(ctx, search).
		Order("location_name ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&coords).Error; err != nil {
		return nil, 0, err
	}

	return coords, total, nil
}

func (r *coordinateRepo) ListAllActive(ctx context.Context, search string) ([]model.Coordinate, error) {
	var coords []model.Coordinate
	err := r.active(ctx, search).
		Order("location_name ASC, id ASC").
		Find(&coords).Error
	return coords, err
}

func (r *coordinateRepo) GetActiveByID(ctx context.Context, id uint) (*model.Coordinate, error) {
	var coord model.Coordinate
	err := r.active(ctx, "").
		Where("id = ?", id).
		First(&coord).Error
	if err != nil {
		return nil, err
	}
	return &coord, nil
}

func (r *coordinateRepo) SearchByName(ctx context.Context, name string) ([]model.Coordinate, error) {
	var coords []model.Coordinate
	err := r.active(ctx, name).
		Order("location_name ASC, id ASC").
		Find(&coords).Error
	return coords, err
}

func (r *coordinateRepo) WithinBounds(ctx context.Context, b geo.Bounds) ([]model.Coordinate, error) {
	var coords []model.Coordinate
	db := r.active(ctx, "").
		Where("latitude BETWEEN ? AND ?", b.MinLat, b.MaxLat)
	if b.LonBounded {
		db = db.Where("longitude BETWEEN ? AND ?", b.MinLon, b.MaxLon)
	}
	err := db.Find(&coords).Error
	return coords, err
}

func (r *coordinateRepo) CreateBatch(ctx context.Context, coords []model.Coordinate, batchSize int) error {
	if len(coords) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(coords, batchSize).Error
}

func (r *coordinateRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Coordinate{}).Count(&count).Error
	return count, err
}
