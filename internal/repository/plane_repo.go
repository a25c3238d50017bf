package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/model"
)

// PlaneRepository plane catalog data access.
type PlaneRepository interface {
	List(ctx context.Context) ([]model.Plane, error)
	GetByID(ctx context.Context, id uint) (*model.Plane, error)
	Create(ctx context.Context, plane *model.Plane) error
	Count(ctx context.Context) (int64, error)
}

type planeRepo struct {
	db *gorm.DB
}

// NewPlaneRepo creates a PlaneRepository.
func NewPlaneRepo(db *gorm.DB) PlaneRepository {
	return &planeRepo{db: db}
}

func (r *planeRepo) List(ctx context.Context) ([]model.Plane, error) {
	var planes []model.Plane
	err := r.db.WithContext(ctx).
		Order("name ASC, model ASC, id ASC").
		Find(&planes).Error
	return planes, err
}

func (r *planeRepo) GetByID(ctx context.Context, id uint) (*model.Plane, error) {
	var plane model.Plane
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&plane).Error
	if err != nil {
		return nil, err
	}
	return &plane, nil
}

func (r *planeRepo) Create(ctx context.Context, plane *model.Plane) error {
	return r.db.WithContext(ctx).Create(plane).Error
}

func (r *planeRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Plane{}).Count(&count).Error
	return count, err
}
