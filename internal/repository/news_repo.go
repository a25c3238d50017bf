package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/model"
)

// NewsRepository news feed data access.
type NewsRepository interface {
	ListLatestActive(ctx context.Context, limit int) ([]model.News, error)
	ListAll(ctx context.Context) ([]model.News, error)
	GetByID(ctx context.Context, id uint) (*model.News, error)
	Create(ctx context.Context, news *model.News) error
	Update(ctx context.Context, news *model.News) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type newsRepo struct {
	db *gorm.DB
}

// NewNewsRepo creates a NewsRepository.
func NewNewsRepo(db *gorm.DB) NewsRepository {
	return &newsRepo{db: db}
}

func (r *newsRepo) ListLatestActive(ctx context.Context, limit int) ([]model.News, error) {
	var items []model.News
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("date_posted DESC, id DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *newsRepo) ListAll(ctx context.Context) ([]model.News, error) {
	var items []model.News
	err := r.db.WithContext(ctx).
		Order("date_posted DESC, id DESC").
		Find(&items).Error
	return items, err
}

func (r *newsRepo) GetByID(ctx context.Context, id uint) (*model.News, error) {
	var news model.News
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&news).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *newsRepo) Create(ctx context.Context, news *model.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

func (r *newsRepo) Update(ctx context.Context, news *model.News) error {
	return r.db.WithContext(ctx).Save(news).Error
}

func (r *newsRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.News{}).Error
}

func (r *newsRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.News{}).Count(&count).Error
	return count, err
}
