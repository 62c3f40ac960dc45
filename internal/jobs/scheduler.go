package jobs

import (
	"context"
	"fmt"
	"time"

	"univer-cinema/internal/usecase"
	"univer-cinema/pkg/utils"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const jobTimeout = 2 * time.Minute

// Scheduler runs the periodic booking and cleanup jobs.
type Scheduler struct {
	cron gocron.Scheduler
	log  *zap.Logger
}

func NewScheduler(maintenance usecase.MaintenanceService, cfg utils.SchedulerConfig, loc *time.Location, log *zap.Logger) (*Scheduler, error) {
	log = log.With(zap.String("component", "scheduler"))

	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	interval := cfg.CompleteIntervalMinutes
	if interval < 1 {
		interval = 15
	}

	_, err = s.NewJob(
		gocron.DurationJob(time.Duration(interval)*time.Minute),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if _, err := maintenance.CompleteFinishedBookings(ctx); err != nil {
				log.Error("Complete finished bookings failed", zap.Error(err))
			}
		}),
		gocron.WithName("complete-finished-bookings"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule completion job: %w", err)
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if err := maintenance.PurgeStale(ctx); err != nil {
				log.Error("Purge stale records failed", zap.Error(err))
			}
		}),
		gocron.WithName("purge-stale"),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule purge job: %w", err)
	}

	return &Scheduler{cron: s, log: log}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started", zap.Int("jobs", len(s.cron.Jobs())))
}

func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}
