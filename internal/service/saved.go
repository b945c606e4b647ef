package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type SavedEventService struct {
	savedRepo ports.SavedEventRepo
	eventRepo ports.EventRepo
	logger    logger.Logger
}

func NewSavedEventService(
	savedRepo ports.SavedEventRepo,
	eventRepo ports.EventRepo,
	logger logger.Logger,
) *SavedEventService {
	return &SavedEventService{
		savedRepo: savedRepo,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// Save registers (user, event) in the save registry. Saving twice is a
// success both times and leaves a single row; concurrent saves racing on
// the unique constraint are absorbed the same way.
func (s *SavedEventService) Save(ctx context.Context, userID, eventID string) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return fmt.Errorf("check event: %w", err)
	}

	if err := s.savedRepo.Save(ctx, userID, eventID); err != nil {
		return fmt.Errorf("save event: %w", err)
	}

	return nil
}

func (s *SavedEventService) Unsave(ctx context.Context, userID, eventID string) error {
	return s.savedRepo.Unsave(ctx, userID, eventID)
}

// ListEvents returns the user's saved events. Events deleted since being
// saved have had their rows cascaded away and simply do not show up.
func (s *SavedEventService) ListEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	saved, err := s.savedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved events: %w", err)
	}

	events := make([]*domain.Event, 0, len(saved))
	for _, row := range saved {
		event, err := s.eventRepo.GetByID(ctx, row.EventID)
		if err != nil {
			if errors.Is(err, domain.ErrEventNotFound) {
				continue
			}
			return nil, fmt.Errorf("get saved event: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

func (s *SavedEventService) Count(ctx context.Context, userID string) (int, error) {
	return s.savedRepo.CountByUser(ctx, userID)
}
