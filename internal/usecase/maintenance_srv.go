package usecase

import (
	"context"
	"fmt"
	"time"

	"univer-cinema/internal/data/repository"

	"go.uber.org/zap"
)

// StaleRetention is how long expired reset tokens and sessions are kept.
const StaleRetention = 7 * 24 * time.Hour

// MaintenanceService holds the periodic housekeeping run by the scheduler.
type MaintenanceService interface {
	CompleteFinishedBookings(ctx context.Context) (int64, error)
	PurgeStale(ctx context.Context) error
}

type maintenanceService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewMaintenanceService(repo *repository.Repository, deps Deps, log *zap.Logger) MaintenanceService {
	return &maintenanceService{
		repo: repo,
		now:  deps.Now,
		log:  log.With(zap.String("service", "maintenance")),
	}
}

func (s *maintenanceService) CompleteFinishedBookings(ctx context.Context) (int64, error) {
	n, err := s.repo.Booking.CompleteFinished(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("complete finished bookings: %w", err)
	}
	if n > 0 {
		s.log.Info("Bookings completed", zap.Int64("count", n))
	}
	return n, nil
}

func (s *maintenanceService) PurgeStale(ctx context.Context) error {
	resets, err := s.repo.PasswordReset.DeleteExpiredBefore(ctx, s.now().Add(-StaleRetention))
	if err != nil {
		return fmt.Errorf("purge password resets: %w", err)
	}

	sessions, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}

	s.log.Info("Stale records purged",
		zap.Int64("password_resets", resets),
		zap.Int64("sessions", sessions))
	return nil
}
