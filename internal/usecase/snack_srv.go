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

type SnackService interface {
	// ListSnacks returns only snacks that are available for ordering.
	ListSnacks(ctx context.Context) ([]response.SnackResponse, error)
	GetSnack(ctx context.Context, id string) (*response.SnackResponse, error)
	CreateSnack(ctx context.Context, req *request.CreateSnackRequest) (*response.SnackResponse, error)
	UpdateSnack(ctx context.Context, id string, req *request.UpdateSnackRequest) (*response.SnackResponse, error)
	DeleteSnack(ctx context.Context, id string) error
}

type snackService struct {
	snackRepo repository.SnackRepository
	log       *zap.Logger
}

func NewSnackService(snackRepo repository.SnackRepository, log *zap.Logger) SnackService {
	return &snackService{
		snackRepo: snackRepo,
		log:       log.With(zap.String("service", "snack")),
	}
}

func (s *snackService) ListSnacks(ctx context.Context) ([]response.SnackResponse, error) {
	snacks, err := s.snackRepo.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list snacks: %w", err)
	}

	out := make([]response.SnackResponse, 0, len(snacks))
	for _, sn := range snacks {
		out = append(out, response.SnackToResponse(sn))
	}
	return out, nil
}

func (s *snackService) GetSnack(ctx context.Context, id string) (*response.SnackResponse, error) {
	snackID, err := parseID(id, "Snack")
	if err != nil {
		return nil, err
	}

	snack, err := s.snackRepo.FindByID(ctx, snackID)
	if err != nil {
		return nil, fmt.Errorf("find snack: %w", err)
	}
	// unavailable snacks are hidden from the menu
	if snack == nil || !snack.Available {
		return nil, apperror.NotFound("Snack not found")
	}

	resp := response.SnackToResponse(snack)
	return &resp, nil
}

func (s *snackService) CreateSnack(ctx context.Context, req *request.CreateSnackRequest) (*response.SnackResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := checkAmount("price", req.Price); err != nil {
		return nil, err
	}

	now := time.Now()
	snack := &entity.Snack{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		NameKG:    req.NameKG,
		NameRU:    req.NameRU,
		Price:     req.Price,
		Image:     req.Image,
		Available: true,
	}
	if req.Available != nil {
		snack.Available = *req.Available
	}

	if err := s.snackRepo.Create(ctx, snack); err != nil {
		return nil, writeErr(err, "Snack")
	}

	s.log.Info("Snack created", zap.String("snack_id", snack.ID.String()))

	resp := response.SnackToResponse(snack)
	return &resp, nil
}

func (s *snackService) UpdateSnack(ctx context.Context, id string, req *request.UpdateSnackRequest) (*response.SnackResponse, error) {
	snackID, err := parseID(id, "Snack")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Price != nil {
		if err := checkAmount("price", *req.Price); err != nil {
			return nil, err
		}
	}

	snack, err := s.snackRepo.FindByID(ctx, snackID)
	if err != nil {
		return nil, fmt.Errorf("find snack: %w", err)
	}
	if snack == nil {
		return nil, apperror.NotFound("Snack not found")
	}

	if req.NameKG != nil {
		snack.NameKG = *req.NameKG
	}
	if req.NameRU != nil {
		snack.NameRU = *req.NameRU
	}
	if req.Price != nil {
		snack.Price = *req.Price
	}
	if req.Image != nil {
		snack.Image = *req.Image
	}
	if req.Available != nil {
		snack.Available = *req.Available
	}

	snack.UpdatedAt = time.Now()
	if err := s.snackRepo.Update(ctx, snack); err != nil {
		return nil, writeErr(err, "Snack")
	}

	resp := response.SnackToResponse(snack)
	return &resp, nil
}

func (s *snackService) DeleteSnack(ctx context.Context, id string) error {
	snackID, err := parseID(id, "Snack")
	if err != nil {
		return err
	}

	if err := s.snackRepo.Delete(ctx, snackID); err != nil {
		return writeErr(err, "Snack")
	}

	s.log.Info("Snack deleted", zap.String("snack_id", id))
	return nil
}
