package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/model"
)

// TermsRepository terms document data access.
type TermsRepository interface {
	GetActive(ctx context.Context) (*model.Terms, error)
	GetByID(ctx context.Context, id uint) (*model.Terms, error)
	Create(ctx context.Context, terms *model.Terms) error
	Update(ctx context.Context, terms *model.Terms) error
	// ClearActive deactivates every terms row.
	ClearActive(ctx context.Context) error
}

type termsRepo struct {
	db *gorm.DB
}

// NewTermsRepo creates a TermsRepository.
func NewTermsRepo(db *gorm.DB) TermsRepository {
	return &termsRepo{db: db}
}

func (r *termsRepo) GetActive(ctx context.Context) (*model.Terms, error) {
	var terms model.Terms
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&terms).Error
	if err != nil {
		return nil, err
	}
	return &terms, nil
}

func (r *termsRepo) GetByID(ctx context.Context, id uint) (*model.Terms, error) {
	var terms model.Terms
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&terms).Error
	if err != nil {
		return nil, err
	}
	return &terms, nil
}

func (r *termsRepo) Create(ctx context.Context, terms *model.Terms) error {
	return r.db.WithContext(ctx).Create(terms).Error
}

func (r *termsRepo) Update(ctx context.Context, terms *model.Terms) error {
	return r.db.WithContext(ctx).Save(terms).Error
}

func (r *termsRepo) ClearActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.Terms{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}
