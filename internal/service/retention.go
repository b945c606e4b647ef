package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// RetentionService removes events older than the retention horizon together
// with their dependent rows and storage objects.
type RetentionService struct {
	eventRepo ports.EventRepo
	store     ports.ObjectStore
	horizon   time.Duration
	logger    logger.Logger
}

func NewRetentionService(
	eventRepo ports.EventRepo,
	store ports.ObjectStore,
	horizon time.Duration,
	logger logger.Logger,
) *RetentionService {
	return &RetentionService{
		eventRepo: eventRepo,
		store:     store,
		horizon:   horizon,
		logger:    logger,
	}
}

// CleanupExpired deletes every event dated on or before now−horizon.
// Storage objects are removed first, but only objects living in our own
// bucket: stock placeholder URLs never resolve to a key and are left alone.
// A storage failure is logged and does not block the database deletion;
// the reconciler picks up any orphan later. Idempotent when nothing has
// expired.
func (s *RetentionService) CleanupExpired(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-s.horizon)

	expired, err := s.eventRepo.ListExpired(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list expired events: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	var keys []string
	ids := make([]string, 0, len(expired))
	for _, e := range expired {
		ids = append(ids, e.ID)
		keys = append(keys, s.ownedKeys(e)...)
	}

	if len(keys) > 0 {
		if err := s.store.RemoveKeys(ctx, keys); err != nil {
			s.logger.Error("failed to remove expired event assets",
				logger.Int("keys", len(keys)),
				logger.String("error", err.Error()),
			)
		}
	}

	if err := s.eventRepo.Delete(ctx, ids...); err != nil {
		return 0, fmt.Errorf("delete expired events: %w", err)
	}

	s.logger.Info("expired events removed",
		logger.Int("count", len(ids)),
	)

	return len(ids), nil
}

func (s *RetentionService) ownedKeys(e *domain.Event) []string {
	var keys []string
	for _, rawURL := range []string{e.ImageURL, e.DocumentURL} {
		if rawURL == "" {
			continue
		}
		if key, ok := s.store.ExtractKey(rawURL); ok {
			keys = append(keys, key)
		}
	}
	return keys
}
