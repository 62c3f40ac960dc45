package usecase

import (
	"context"
	"fmt"
	"time"

	"univer-cinema/internal/data/entity"
	"univer-cinema/internal/data/repository"
	"univer-cinema/internal/dto/request"
	"univer-cinema/internal/dto/response"
	"univer-cinema/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContentService interface {
	// ListNews and GetNews only expose published items.
	ListNews(ctx context.Context) ([]response.NewsResponse, error)
	GetNews(ctx context.Context, id string) (*response.NewsResponse, error)
	CreateNews(ctx context.Context, req *request.CreateNewsRequest) (*response.NewsResponse, error)
	UpdateNews(ctx context.Context, id string, req *request.UpdateNewsRequest) (*response.NewsResponse, error)
	DeleteNews(ctx context.Context, id string) error

	ListGallery(ctx context.Context) ([]response.GalleryResponse, error)
	GetGallery(ctx context.Context, id string) (*response.GalleryResponse, error)
	CreateGallery(ctx context.Context, req *request.CreateGalleryRequest) (*response.GalleryResponse, error)
	UpdateGallery(ctx context.Context, id string, req *request.UpdateGalleryRequest) (*response.GalleryResponse, error)
	DeleteGallery(ctx context.Context, id string) error
}

type contentService struct {
	newsRepo    repository.NewsRepository
	galleryRepo repository.GalleryRepository
	log         *zap.Logger
}

func NewContentService(repo *repository.Repository, log *zap.Logger) ContentService {
	return &contentService{
		newsRepo:    repo.News,
		galleryRepo: repo.Gallery,
		log:         log.With(zap.String("service", "content")),
	}
}

// ==================== NEWS ====================

func (s *contentService) ListNews(ctx context.Context) ([]response.NewsResponse, error) {
	items, err := s.newsRepo.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}

	out := make([]response.NewsResponse, 0, len(items))
	for _, n := range items {
		out = append(out, response.NewsToResponse(n))
	}
	return out, nil
}

func (s *contentService) GetNews(ctx context.Context, id string) (*response.NewsResponse, error) {
	news, err := s.findNews(ctx, id)
	if err != nil {
		return nil, err
	}
	if !news.Published {
		return nil, apperror.NotFound("News not found")
	}

	resp := response.NewsToResponse(news)
	return &resp, nil
}

func (s *contentService) CreateNews(ctx context.Context, req *request.CreateNewsRequest) (*response.NewsResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	news := &entity.News{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TitleKG:   req.TitleKG,
		TitleRU:   req.TitleRU,
		ContentKG: req.ContentKG,
		ContentRU: req.ContentRU,
		Image:     req.Image,
		Published: true,
	}
	if req.Published != nil {
		news.Published = *req.Published
	}

	if err := s.newsRepo.Create(ctx, news); err != nil {
		return nil, writeErr(err, "News")
	}

	s.log.Info("News created", zap.String("news_id", news.ID.String()))

	resp := response.NewsToResponse(news)
	return &resp, nil
}

func (s *contentService) UpdateNews(ctx context.Context, id string, req *request.UpdateNewsRequest) (*response.NewsResponse, error) {
	news, err := s.findNews(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	if req.TitleKG != nil {
		news.TitleKG = *req.TitleKG
	}
	if req.TitleRU != nil {
		news.TitleRU = *req.TitleRU
	}
	if req.ContentKG != nil {
		news.ContentKG = *req.ContentKG
	}
	if req.ContentRU != nil {
		news.ContentRU = *req.ContentRU
	}
	if req.Image != nil {
		news.Image = *req.Image
	}
	if req.Published != nil {
		news.Published = *req.Published
	}

	news.UpdatedAt = time.Now()
	if err := s.newsRepo.Update(ctx, news); err != nil {
		return nil, writeErr(err, "News")
	}

	resp := response.NewsToResponse(news)
	return &resp, nil
}

func (s *contentService) DeleteNews(ctx context.Context, id string) error {
	newsID, err := parseID(id, "News")
	if err != nil {
		return err
	}
	if err := s.newsRepo.Delete(ctx, newsID); err != nil {
		return writeErr(err, "News")
	}
	return nil
}

func (s *contentService) findNews(ctx context.Context, id string) (*entity.News, error) {
	newsID, err := parseID(id, "News")
	if err != nil {
		return nil, err
	}

	news, err := s.newsRepo.FindByID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("find news: %w", err)
	}
	if news == nil {
		return nil, apperror.NotFound("News not found")
	}
	return news, nil
}

// ==================== GALLERY ====================

func (s *contentService) ListGallery(ctx context.Context) ([]response.GalleryResponse, error) {
	items, err := s.galleryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}

	out := make([]response.GalleryResponse, 0, len(items))
	for _, g := range items {
		out = append(out, response.GalleryToResponse(g))
	}
	return out, nil
}

func (s *contentService) GetGallery(ctx context.Context, id string) (*response.GalleryResponse, error) {
	item, err := s.findGallery(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.GalleryToResponse(item)
	return &resp, nil
}

func (s *contentService) CreateGallery(ctx context.Context, req *request.CreateGalleryRequest) (*response.GalleryResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	item := &entity.Gallery{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ImageURL:  req.ImageURL,
		CaptionKG: req.CaptionKG,
		CaptionRU: req.CaptionRU,
	}

	if err := s.galleryRepo.Create(ctx, item); err != nil {
		return nil, writeErr(err, "Gallery item")
	}

	resp := response.GalleryToResponse(item)
	return &resp, nil
}

func (s *contentService) UpdateGallery(ctx context.Context, id string, req *request.UpdateGalleryRequest) (*response.GalleryResponse, error) {
	item, err := s.findGallery(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.CaptionKG != nil {
		item.CaptionKG = *req.CaptionKG
	}
	if req.CaptionRU != nil {
		item.CaptionRU = *req.CaptionRU
	}

	if err := s.galleryRepo.Update(ctx, item); err != nil {
		return nil, writeErr(err, "Gallery item")
	}

	resp := response.GalleryToResponse(item)
	return &resp, nil
}

func (s *contentService) DeleteGallery(ctx context.Context, id string) error {
	itemID, err := parseID(id, "Gallery item")
	if err != nil {
		return err
	}
	if err := s.galleryRepo.Delete(ctx, itemID); err != nil {
		return writeErr(err, "Gallery item")
	}
	return nil
}

func (s *contentService) findGallery(ctx context.Context, id string) (*entity.Gallery, error) {
	itemID, err := parseID(id, "Gallery item")
	if err != nil {
		return nil, err
	}

	item, err := s.galleryRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find gallery item: %w", err)
	}
	if item == nil {
		return nil, apperror.NotFound("Gallery item not found")
	}
	return item, nil
}
