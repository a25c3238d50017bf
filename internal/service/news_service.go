package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/model"
	"github.com/kvnochieng52/flight-distance/internal/repository"
	apperrors "github.com/kvnochieng52/flight-distance/pkg/errors"
	"github.com/kvnochieng52/flight-distance/pkg/storage"
)

var ErrNewsNotFound = errors.New("news not found")

// LatestNewsLimit is the size of the public feed.
const LatestNewsLimit = 3

// NewsService news feed management.
type NewsService interface {
	Latest(ctx context.Context) ([]dto.NewsResponse, error)
	All(ctx context.Context) ([]dto.NewsResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.NewsResponse, error)
	Create(ctx context.Context, req *dto.NewsRequest) (*dto.NewsResponse, error)
	Update(ctx context.Context, id uint, req *dto.NewsRequest) (*dto.NewsResponse, error)
	Delete(ctx context.Context, id uint) error
}

type newsService struct {
	repo         *repository.Repository
	store        storage.Store
	maxThumbSize int64
	logger       *zap.Logger
	now          func() time.Time
}

// NewNewsService creates a NewsService.
func NewNewsService(repo *repository.Repository, store storage.Store, maxThumbSize int64, logger *zap.Logger) NewsService {
	return &newsService{
		repo:         repo,
		store:        store,
		maxThumbSize: maxThumbSize,
		logger:       logger,
		now:          time.Now,
	}
}

// ────────────────────── List ──────────────────────

func (s *newsService) Latest(ctx context.Context) ([]dto.NewsResponse, error) {
	items, err := s.repo.News.ListLatestActive(ctx, LatestNewsLimit)
	if err != nil {
		s.logger.Error("list latest news failed", zap.Error(err))
		return nil, err
	}
	return s.toNewsResponses(items), nil
}

func (s *newsService) All(ctx context.Context) ([]dto.NewsResponse, error) {
	items, err := s.repo.News.ListAll(ctx)
	if err != nil {
		s.logger.Error("list news failed", zap.Error(err))
		return nil, err
	}
	return s.toNewsResponses(items), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *newsService) GetByID(ctx context.Context, id uint) (*dto.NewsResponse, error) {
	news, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toNewsResponse(news)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *newsService) Create(ctx context.Context, req *dto.NewsRequest) (*dto.NewsResponse, error) {
	news := &model.News{
		Title:      req.Title,
		Content:    req.Content,
		Regions:    req.Regions,
		PostedBy:   req.PostedBy,
		DatePosted: s.now(),
		IsActive:   true,
	}
	if req.IsActive != nil {
		news.IsActive = *req.IsActive
	}

	if req.Thumbnail != nil {
		path, err := s.saveThumbnail(ctx, req.Thumbnail)
		if err != nil {
			return nil, err
		}
		news.Thumbnail = &path
	}

	if err := s.repo.News.Create(ctx, news); err != nil {
		s.logger.Error("create news failed", zap.Error(err))
		s.discardThumbnail(ctx, news.Thumbnail)
		return nil, err
	}

	s.logger.Info("news created", zap.Uint("id", news.ID))
	resp := s.toNewsResponse(news)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *newsService) Update(ctx context.Context, id uint, req *dto.NewsRequest) (*dto.NewsResponse, error) {
	news, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Thumbnail != nil {
		path, err := s.saveThumbnail(ctx, req.Thumbnail)
		if err != nil {
			return nil, err
		}
		// the old asset goes before the new path is recorded
		s.discardThumbnail(ctx, news.Thumbnail)
		news.Thumbnail = &path
	}

	news.Title = req.Title
	news.Content = req.Content
	news.Regions = req.Regions
	news.PostedBy = req.PostedBy
	if req.IsActive != nil {
		news.IsActive = *req.IsActive
	}

	if err := s.repo.News.Update(ctx, news); err != nil {
		s.logger.Error("update news failed", zap.Uint("id", id), zap.Error(err))
		if req.Thumbnail != nil {
			s.discardThumbnail(ctx, news.Thumbnail)
		}
		return nil, err
	}

	resp := s.toNewsResponse(news)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *newsService) Delete(ctx context.Context, id uint) error {
	news, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	s.discardThumbnail(ctx, news.Thumbnail)

	if err := s.repo.News.Delete(ctx, id); err != nil {
		s.logger.Error("delete news failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("news deleted", zap.Uint("id", id))
	return nil
}

// ── helpers ──

func (s *newsService) get(ctx context.Context, id uint) (*model.News, error) {
	news, err := s.repo.News.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		s.logger.Error("query news failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return news, nil
}

func (s *newsService) saveThumbnail(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if err := storage.ValidateImage(file, s.maxThumbSize); err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			return "", apperrors.NewValidationError("thumbnail",
				fmt.Sprintf("The thumbnail field must not be greater than %d kilobytes.", s.maxThumbSize/1024))
		case errors.Is(err, storage.ErrUnsupportedType):
			return "", apperrors.NewValidationError("thumbnail", "The thumbnail field must be a file of type: jpeg, png, jpg, gif.")
		default:
			return "", apperrors.NewValidationError("thumbnail", "The thumbnail failed to upload.")
		}
	}

	path, err := s.store.Save(ctx, storage.NewsThumbnails, file)
	if err != nil {
		s.logger.Error("store thumbnail failed", zap.String("filename", file.Filename), zap.Error(err))
		return "", err
	}
	return path, nil
}

// discardThumbnail removes an asset; failures are logged, never returned.
func (s *newsService) discardThumbnail(ctx context.Context, path *string) {
	if path == nil || *path == "" {
		return
	}
	if err := s.store.Delete(ctx, *path); err != nil {
		s.logger.Warn("delete thumbnail failed", zap.String("path", *path), zap.Error(err))
	}
}

func (s *newsService) toNewsResponse(n *model.News) dto.NewsResponse {
	resp := dto.NewsResponse{
		ID:           n.ID,
		Title:        n.Title,
		Content:      n.Content,
		Thumbnail:    n.Thumbnail,
		Regions:      n.Regions,
		RegionsArray: n.RegionList(),
		PostedBy:     n.PostedBy,
		DatePosted:   formatTime(n.DatePosted),
		IsActive:     n.IsActive,
		CreatedAt:    formatTime(n.CreatedAt),
		UpdatedAt:    formatTime(n.UpdatedAt),
	}
	if n.Thumbnail != nil && strings.TrimSpace(*n.Thumbnail) != "" {
		url := s.store.URL(*n.Thumbnail)
		resp.ThumbnailURL = &url
	}
	return resp
}

func (s *newsService) toNewsResponses(items []model.News) []dto.NewsResponse {
	result := make([]dto.NewsResponse, 0, len(items))
	for i := range items {
		result = append(result, s.toNewsResponse(&items[i]))
	}
	return result
}
