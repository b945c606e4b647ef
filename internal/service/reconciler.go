package service

import (
	"context"
	"fmt"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// Storage-API batch limit for bulk deletes.
const reconcileBatchSize = 100

type ReconcileResult struct {
	Deleted int `json:"deleted"`
	Total   int `json:"total"`
	Errors  int `json:"errors"`
}

// ReconcilerService diffs the asset bucket against the keys referenced by
// live events and deletes the orphans. Destructive, so it only runs when an
// admin asks for it.
type ReconcilerService struct {
	eventRepo ports.EventRepo
	store     ports.ObjectStore
	logger    logger.Logger
}

func NewReconcilerService(
	eventRepo ports.EventRepo,
	store ports.ObjectStore,
	logger logger.Logger,
) *ReconcilerService {
	return &ReconcilerService{
		eventRepo: eventRepo,
		store:     store,
		logger:    logger,
	}
}

// Reconcile deletes every object in the bucket that no event references.
// Reference extraction is deliberately lenient: any URL that maps to a key
// in our bucket keeps that key alive even if the path is broken.
// Under-deletion beats over-deletion here.
func (s *ReconcilerService) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	referenced := make(map[string]struct{})
	for _, e := range events {
		for _, rawURL := range []string{e.ImageURL, e.DocumentURL} {
			if rawURL == "" {
				continue
			}
			if key, ok := s.store.ExtractKey(rawURL); ok {
				referenced[key] = struct{}{}
			}
		}
	}

	present, err := s.store.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list storage objects: %w", err)
	}

	var orphans []string
	for _, key := range present {
		if _, ok := referenced[key]; !ok {
			orphans = append(orphans, key)
		}
	}

	res := &ReconcileResult{Total: len(present)}

	for start := 0; start < len(orphans); start += reconcileBatchSize {
		end := start + reconcileBatchSize
		if end > len(orphans) {
			end = len(orphans)
		}
		batch := orphans[start:end]

		if err := s.store.RemoveKeys(ctx, batch); err != nil {
			res.Errors++
			s.logger.Error("orphan batch delete failed",
				logger.Int("batch_size", len(batch)),
				logger.String("error", err.Error()),
			)
			continue
		}
		res.Deleted += len(batch)
	}

	s.logger.Info("storage reconciled",
		logger.Int("total", res.Total),
		logger.Int("deleted", res.Deleted),
		logger.Int("errors", res.Errors),
	)

	return res, nil
}
