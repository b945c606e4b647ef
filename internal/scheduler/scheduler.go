package scheduler

import (
	"context"
	"time"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/service"
	"github.com/wb-go/wbf/logger"
)

type reminderSweeper interface {
	Sweep(ctx context.Context, now time.Time, opts service.SweepOptions) (*service.SweepResult, error)
}

type retentionSweeper interface {
	CleanupExpired(ctx context.Context, now time.Time) (int, error)
}

// Scheduler drives the periodic sweeps. Each tick runs the retention sweep
// and then the reminder sweep to completion; overlapping work across ticks
// is not possible since ticks run sequentially on one goroutine.
type Scheduler struct {
	reminders reminderSweeper
	retention retentionSweeper
	interval  time.Duration
	logger    logger.Logger
}

func New(
	reminders reminderSweeper,
	retention retentionSweeper,
	interval time.Duration,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		reminders: reminders,
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := time.Now()

	if removed, err := s.retention.CleanupExpired(ctx, now); err != nil {
		s.logger.Error("retention sweep failed",
			logger.String("error", err.Error()),
		)
	} else if removed > 0 {
		s.logger.Info("retention sweep removed events",
			logger.Int("count", removed),
		)
	}

	res, err := s.reminders.Sweep(ctx, now, service.SweepOptions{})
	if err != nil {
		s.logger.Error("reminder sweep failed",
			logger.String("error", err.Error()),
		)
		return
	}

	if res.Sent24h > 0 || res.Sent1h > 0 || res.Errors > 0 {
		s.logger.Info("reminder sweep complete",
			logger.Int("sent_24h", res.Sent24h),
			logger.Int("sent_1h", res.Sent1h),
			logger.Int("errors", res.Errors),
			logger.Int("processed", res.Processed),
		)
	}
}
