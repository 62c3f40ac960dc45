package usecase

import (
	"context"
	"encoding/json"
	"errors"
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

type HallService interface {
	ListHalls(ctx context.Context) ([]response.HallResponse, error)
	GetHall(ctx context.Context, id string) (*response.HallResponse, error)
	CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error)
	UpdateHall(ctx context.Context, id string, req *request.UpdateHallRequest) (*response.HallResponse, error)
	DeleteHall(ctx context.Context, id string) error
}

type hallService struct {
	hallRepo repository.HallRepository
	log      *zap.Logger
}

func NewHallService(repo *repository.Repository, log *zap.Logger) HallService {
	return &hallService{
		hallRepo: repo.Hall,
		log:      log.With(zap.String("service", "hall")),
	}
}

func (s *hallService) ListHalls(ctx context.Context) ([]response.HallResponse, error) {
	halls, err := s.hallRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list halls: %w", err)
	}

	out := make([]response.HallResponse, 0, len(halls))
	for _, h := range halls {
		out = append(out, response.HallToResponse(h))
	}
	return out, nil
}

func (s *hallService) GetHall(ctx context.Context, id string) (*response.HallResponse, error) {
	hallID, err := parseID(id, "Hall")
	if err != nil {
		return nil, err
	}

	hall, err := s.hallRepo.FindByID(ctx, hallID)
	if err != nil {
		return nil, fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return nil, apperror.NotFound("Hall not found")
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := checkLayout(req.Layout, req.Capacity); err != nil {
		return nil, err
	}

	now := time.Now()
	hall := &entity.Hall{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Capacity: req.Capacity,
		Layout:   req.Layout,
	}

	if err := s.hallRepo.Create(ctx, hall); err != nil {
		return nil, writeErr(err, "Hall")
	}

	s.log.Info("Hall created", zap.String("hall_id", hall.ID.String()))

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) UpdateHall(ctx context.Context, id string, req *request.UpdateHallRequest) (*response.HallResponse, error) {
	hallID, err := parseID(id, "Hall")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	hall, err := s.hallRepo.FindByID(ctx, hallID)
	if err != nil {
		return nil, fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return nil, apperror.NotFound("Hall not found")
	}

	if req.Name != nil {
		hall.Name = *req.Name
	}
	if req.Capacity != nil {
		hall.Capacity = *req.Capacity
	}
	if len(req.Layout) > 0 {
		hall.Layout = req.Layout
	}
	if err := checkLayout(hall.Layout, hall.Capacity); err != nil {
		return nil, err
	}

	hall.UpdatedAt = time.Now()
	if err := s.hallRepo.Update(ctx, hall); err != nil {
		return nil, writeErr(err, "Hall")
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) DeleteHall(ctx context.Context, id string) error {
	hallID, err := parseID(id, "Hall")
	if err != nil {
		return err
	}

	if err := s.hallRepo.Delete(ctx, hallID); err != nil {
		return writeErr(err, "Hall")
	}

	s.log.Info("Hall deleted", zap.String("hall_id", id))
	return nil
}

// checkLayout rejects layouts that yield no seats, duplicate seats or more seats than capacity.
func checkLayout(layout json.RawMessage, capacity int) error {
	_, err := entity.LayoutSeatsWithin(layout, capacity)
	if err == nil {
		return nil
	}

	msg := "Invalid layout"
	switch {
	case errors.Is(err, entity.ErrLayoutTooLarge):
		limit := min(capacity, entity.MaxLayoutSeats)
		msg = fmt.Sprintf("Layout has more seats than capacity %d", limit)
	case errors.Is(err, entity.ErrLayoutEmpty):
		msg = "Layout has no seats"
	case errors.Is(err, entity.ErrLayoutDuplicate):
		msg = "Layout contains duplicate seats"
	case errors.Is(err, entity.ErrLayoutInvalid):
		msg = entity.ErrLayoutInvalid.Error()
	}
	return apperror.ValidationField("layout", msg)
}
