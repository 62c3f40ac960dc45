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
	"univer-cinema/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	ListShowtimes(ctx context.Context, query *request.ShowtimeListQuery) ([]response.ShowtimeResponse, error)
	GetShowtime(ctx context.Context, id string) (*response.ShowtimeResponse, error)
	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, id string, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, id string) error
	// GetAvailability reports which seats of the hall are taken for the showtime.
	GetAvailability(ctx context.Context, id string) (*response.SeatAvailabilityResponse, error)
}

type showtimeService struct {
	repo     *repository.Repository
	location *time.Location
	now      func() time.Time
	log      *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo:     repo,
		location: config.App.Location(),
		now:      deps.Now,
		log:      log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) ListShowtimes(ctx context.Context, query *request.ShowtimeListQuery) ([]response.ShowtimeResponse, error) {
	if err := validate(query); err != nil {
		return nil, err
	}

	filter := entity.ShowtimeFilter{
		Location: s.location,
		From:     s.now(),
		Language: query.Language,
	}
	if query.MovieID != "" {
		id := uuid.MustParse(query.MovieID)
		filter.MovieID = &id
	}
	if query.HallID != "" {
		id := uuid.MustParse(query.HallID)
		filter.HallID = &id
	}
	if query.Date != "" {
		day, err := time.ParseInLocation(dateLayout, query.Date, s.location)
		if err != nil {
			return nil, apperror.ValidationField("date", "Must match the format 2006-01-02")
		}
		filter.Date = &day
	}

	showtimes, err := s.repo.Showtime.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	out := make([]response.ShowtimeResponse, 0, len(showtimes))
	for _, st := range showtimes {
		out = append(out, response.ShowtimeToResponse(st))
	}
	return out, nil
}

func (s *showtimeService) GetShowtime(ctx context.Context, id string) (*response.ShowtimeResponse, error) {
	showtime, err := s.findDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := checkAmount("price", req.Price); err != nil {
		return nil, err
	}

	now := s.now()
	showtime := &entity.Showtime{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:  uuid.MustParse(req.MovieID),
		HallID:   uuid.MustParse(req.HallID),
		Datetime: req.Datetime,
		Language: entity.ShowtimeLanguage(req.Language),
		Price:    req.Price,
	}

	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := checkSchedule(ctx, tx, showtime, nil); err != nil {
			return err
		}
		return tx.Showtime.Create(ctx, showtime)
	})
	if err != nil {
		return nil, writeErr(err, "Showtime")
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("hall_id", showtime.HallID.String()),
		zap.Time("datetime", showtime.Datetime))

	return s.GetShowtime(ctx, showtime.ID.String())
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, id string, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error) {
	existing, err := s.findDetail(ctx, id)
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

	showtime := existing.Showtime
	if req.MovieID != nil {
		showtime.MovieID = uuid.MustParse(*req.MovieID)
	}
	if req.HallID != nil {
		showtime.HallID = uuid.MustParse(*req.HallID)
	}
	if req.Datetime != nil {
		showtime.Datetime = *req.Datetime
	}
	if req.Language != nil {
		showtime.Language = entity.ShowtimeLanguage(*req.Language)
	}
	if req.Price != nil {
		showtime.Price = *req.Price
	}
	showtime.UpdatedAt = s.now()

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := checkSchedule(ctx, tx, &showtime, &showtime.ID); err != nil {
			return err
		}
		return tx.Showtime.Update(ctx, &showtime)
	})
	if err != nil {
		return nil, writeErr(err, "Showtime")
	}

	return s.GetShowtime(ctx, showtime.ID.String())
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, id string) error {
	showtimeID, err := parseID(id, "Showtime")
	if err != nil {
		return err
	}

	if err := s.repo.Showtime.Delete(ctx, showtimeID); err != nil {
		return writeErr(err, "Showtime")
	}

	s.log.Info("Showtime deleted", zap.String("showtime_id", id))
	return nil
}

func (s *showtimeService) GetAvailability(ctx context.Context, id string) (*response.SeatAvailabilityResponse, error) {
	showtime, err := s.findDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	hall, err := s.repo.Hall.FindByID(ctx, showtime.HallID)
	if err != nil {
		return nil, fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return nil, apperror.NotFound("Hall not found")
	}

	booked, err := s.repo.Booking.ClaimedSeats(ctx, showtime.ID)
	if err != nil {
		return nil, fmt.Errorf("claimed seats: %w", err)
	}

	all, err := hall.Seats()
	if err != nil {
		s.log.Warn("Hall layout cannot be expanded", zap.String("hall_id", hall.ID.String()), zap.Error(err))
		all = []string{}
	}

	taken := make(map[string]struct{}, len(booked))
	for _, seat := range booked {
		taken[seat] = struct{}{}
	}
	available := make([]string, 0, len(all))
	for _, seat := range all {
		if _, ok := taken[seat]; !ok {
			available = append(available, seat)
		}
	}
	if booked == nil {
		booked = []string{}
	}

	return &response.SeatAvailabilityResponse{
		Showtime:       response.ShowtimeToResponse(showtime),
		HallLayout:     hall.Layout,
		BookedSeats:    booked,
		AllSeats:       all,
		AvailableSeats: available,
	}, nil
}

func (s *showtimeService) findDetail(ctx context.Context, id string) (*entity.ShowtimeDetail, error) {
	showtimeID, err := parseID(id, "Showtime")
	if err != nil {
		return nil, err
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, apperror.NotFound("Showtime not found")
	}
	return showtime, nil
}

// checkSchedule must run inside a transaction. It locks the hall so concurrent
// writers for the same hall see each other's showtimes.
func checkSchedule(ctx context.Context, tx *repository.Repository, showtime *entity.Showtime, exclude *uuid.UUID) error {
	movie, err := tx.Movie.FindByID(ctx, showtime.MovieID)
	if err != nil {
		return fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return apperror.NotFound("Movie not found")
	}

	hall, err := tx.Hall.LockByID(ctx, showtime.HallID)
	if err != nil {
		return fmt.Errorf("lock hall: %w", err)
	}
	if hall == nil {
		return apperror.NotFound("Hall not found")
	}

	end := showtime.Datetime.Add(time.Duration(movie.Duration) * time.Minute)
	overlap, err := tx.Showtime.HasOverlap(ctx, hall.ID, showtime.Datetime, end, exclude)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	if overlap {
		return apperror.Conflict("Hall already has a showtime during this period")
	}
	return nil
}
