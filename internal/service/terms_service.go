package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/model"
	"github.com/kvnochieng52/flight-distance/internal/repository"
)

var ErrTermsNotFound = errors.New("no active terms and conditions found")

// TermsService the terms and conditions document.
type TermsService interface {
	GetActive(ctx context.Context) (*dto.TermsResponse, error)
	// Publish stores a new version and makes it the only active one.
	Publish(ctx context.Context, title, content, version string) (*dto.TermsResponse, error)
	Activate(ctx context.Context, id uint) error
}

type termsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTermsService creates a TermsService.
func NewTermsService(repo *repository.Repository, logger *zap.Logger) TermsService {
	return &termsService{repo: repo, logger: logger}
}

// ────────────────────── GetActive ──────────────────────

func (s *termsService) GetActive(ctx context.Context) (*dto.TermsResponse, error) {
	terms, err := s.repo.Terms.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermsNotFound
		}
		s.logger.Error("query active terms failed", zap.Error(err))
		return nil, err
	}
	return toTermsResponse(terms), nil
}

// ────────────────────── Publish ──────────────────────

func (s *termsService) Publish(ctx context.Context, title, content, version string) (*dto.TermsResponse, error) {
	terms := &model.Terms{
		Title:   title,
		Content: content,
		Version: version,
	}
	if err := s.repo.Terms.Create(ctx, terms); err != nil {
		s.logger.Error("create terms failed", zap.String("version", version), zap.Error(err))
		return nil, err
	}

	if err := s.activate(ctx, terms); err != nil {
		return nil, err
	}
	return toTermsResponse(terms), nil
}

// ────────────────────── Activate ──────────────────────

func (s *termsService) Activate(ctx context.Context, id uint) error {
	terms, err := s.repo.Terms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTermsNotFound
		}
		s.logger.Error("query terms failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return s.activate(ctx, terms)
}

// activate clears every active row and flags terms in one transaction.
func (s *termsService) activate(ctx context.Context, terms *model.Terms) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("begin transaction failed", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Terms.ClearActive(ctx); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("clear active terms failed", zap.Error(err))
		return err
	}

	terms.IsActive = true
	if err := txRepo.Terms.Update(ctx, terms); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("activate terms failed", zap.Uint("id", terms.ID), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("commit transaction failed", zap.Error(err))
			return err
		}
	}

	s.logger.Info("terms activated", zap.Uint("id", terms.ID), zap.String("version", terms.Version))
	return nil
}

func toTermsResponse(t *model.Terms) *dto.TermsResponse {
	return &dto.TermsResponse{
		ID:        t.ID,
		Title:     t.Title,
		Content:   t.Content,
		Version:   t.Version,
		UpdatedAt: t.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
