package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/model"
)

// TokenRepository personal access token data access.
type TokenRepository interface {
	Create(ctx context.Context, token *model.PersonalAccessToken) error
	GetByID(ctx context.Context, id string) (*model.PersonalAccessToken, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteByDevice removes every token the user holds for deviceName.
	DeleteByDevice(ctx context.Context, userID uint, deviceName string) error
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
	Touch(ctx context.Context, id string, at time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type tokenRepo struct {
	db *gorm.DB
}

// NewTokenRepo creates a TokenRepository.
func NewTokenRepo(db *gorm.DB) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) Create(ctx context.Context, token *model.PersonalAccessToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepo) GetByID(ctx context.Context, id string) (*model.PersonalAccessToken, error) {
	var token model.PersonalAccessToken
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepo) DeleteByID(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PersonalAccessToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tokenRepo) DeleteByDevice(ctx context.Context, userID uint, deviceName string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND device_name = ?", userID, deviceName).
		Delete(&model.PersonalAccessToken{}).Error
}

func (r *tokenRepo) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PersonalAccessToken{})
	return result.RowsAffected, result.Error
}

func (r *tokenRepo) Touch(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.PersonalAccessToken{}).
		Where("id = ?", id).
		Update("last_used_at", at).Error
}

func (r *tokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Delete(&model.PersonalAccessToken{})
	return result.RowsAffected, result.Error
}
