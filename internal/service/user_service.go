package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService account lookups and the administrator approval switch.
type UserService interface {
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	// SetActiveByEmail approves (or suspends) an account.
	SetActiveByEmail(ctx context.Context, email string, active bool) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("query user failed", zap.Uint("user_id", id), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) SetActiveByEmail(ctx context.Context, email string, active bool) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("query user failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	if err := s.repo.User.SetActive(ctx, user.ID, active); err != nil {
		s.logger.Error("update user status failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}
	user.IsActive = active

	s.logger.Info("user status changed", zap.Uint("user_id", user.ID), zap.Bool("is_active", active))
	resp := toUserResponse(user)
	return &resp, nil
}
