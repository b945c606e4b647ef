package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type expiredCleaner interface {
	CleanupExpired(ctx context.Context, now time.Time) (int, error)
}

type EventService struct {
	repo     ports.EventRepo
	store    ports.ObjectStore
	cleaner  expiredCleaner
	notifier ports.Notifier
	logger   logger.Logger
}

func NewEventService(
	repo ports.EventRepo,
	store ports.ObjectStore,
	cleaner expiredCleaner,
	notifier ports.Notifier,
	logger logger.Logger,
) *EventService {
	return &EventService{
		repo:     repo,
		store:    store,
		cleaner:  cleaner,
		notifier: notifier,
		logger:   logger,
	}
}

// Create stores a submission. Events always start unapproved; only an admin
// action flips the flag.
func (s *EventService) Create(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if input.Venue == "" {
		return nil, fmt.Errorf("%w: venue is required", domain.ErrValidation)
	}
	if input.Organizer == "" {
		return nil, fmt.Errorf("%w: organizer is required", domain.ErrValidation)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, input.Category)
	}

	now := time.Now().UTC()
	event := &domain.Event{
		ID:               uuid.New().String(),
		Title:            input.Title,
		Description:      input.Description,
		Date:             input.Date,
		Time:             input.Time,
		Venue:            input.Venue,
		Category:         input.Category,
		ImageURL:         input.ImageURL,
		DocumentURL:      input.DocumentURL,
		Organizer:        input.Organizer,
		IsApproved:       false,
		CreatedBy:        input.CreatedBy,
		UserID:           input.UserID,
		RegistrationLink: input.RegistrationLink,
		SocialLink:       input.SocialLink,
		EntryFee:         input.EntryFee,
		ExpectedAudience: input.ExpectedAudience,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event submitted",
		logger.String("event_id", event.ID),
		logger.String("title", event.Title),
		logger.String("created_by", event.CreatedBy),
	)

	return event, nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all events ordered by date. The retention sweep piggybacks
// on this read path so the dataset stays small without a dedicated cron.
func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	if _, err := s.cleaner.CleanupExpired(ctx, time.Now()); err != nil {
		s.logger.Error("retention sweep failed",
			logger.String("error", err.Error()),
		)
	}

	return s.repo.List(ctx)
}

// Approve flips the approval flag, tells the submitter, and broadcasts the
// event to the campus topic.
func (s *EventService) Approve(ctx context.Context, id string) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	if err := s.repo.Approve(ctx, id); err != nil {
		return fmt.Errorf("approve event: %w", err)
	}

	s.logger.Info("event approved",
		logger.String("event_id", id),
		logger.String("title", event.Title),
	)

	go s.notifyApproved(context.WithoutCancel(ctx), event)

	return nil
}

// Reject deletes the submission and tells the submitter. Rejection is a
// deletion with a message attached.
func (s *EventService) Reject(ctx context.Context, id string) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	if err := s.deleteEvent(ctx, event); err != nil {
		return err
	}

	if event.UserID != "" {
		msg := domain.Message{
			Template:  domain.TemplateEventRejected,
			Title:     "Submission rejected",
			Body:      fmt.Sprintf("Your event %q was not approved.", event.Title),
			EventID:   event.ID,
			EventName: event.Title,
		}
		go s.sendToUser(context.WithoutCancel(ctx), event.UserID, msg)
	}

	return nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	return s.deleteEvent(ctx, event)
}

// deleteEvent removes the event's own storage objects before the row.
// Placeholder images hosted elsewhere never resolve to a key and survive.
// A storage failure leaves an orphan for the reconciler; the row goes
// regardless.
func (s *EventService) deleteEvent(ctx context.Context, event *domain.Event) error {
	var keys []string
	for _, rawURL := range []string{event.ImageURL, event.DocumentURL} {
		if rawURL == "" {
			continue
		}
		if key, ok := s.store.ExtractKey(rawURL); ok {
			keys = append(keys, key)
		}
	}

	if len(keys) > 0 {
		if err := s.store.RemoveKeys(ctx, keys); err != nil {
			s.logger.Error("failed to remove event assets",
				logger.String("event_id", event.ID),
				logger.String("error", err.Error()),
			)
		}
	}

	if err := s.repo.Delete(ctx, event.ID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("event deleted",
		logger.String("event_id", event.ID),
		logger.String("title", event.Title),
	)

	return nil
}

func (s *EventService) notifyApproved(ctx context.Context, event *domain.Event) {
	if event.UserID != "" {
		msg := domain.Message{
			Template:  domain.TemplateEventApproved,
			Title:     "Your event is live! 🎉",
			Body:      fmt.Sprintf("%q has been approved and is now visible to everyone.", event.Title),
			EventID:   event.ID,
			EventName: event.Title,
		}
		s.sendToUser(ctx, event.UserID, msg)
	}

	broadcast := domain.Message{
		Template:  domain.TemplateNewEvent,
		Title:     "New event on campus",
		Body:      fmt.Sprintf("%s at %s — check it out.", event.Title, event.Venue),
		EventID:   event.ID,
		EventName: event.Title,
		Venue:     event.Venue,
	}
	if err := s.notifier.Broadcast(ctx, broadcast); err != nil {
		s.logger.Error("event broadcast failed",
			logger.String("event_id", event.ID),
			logger.String("error", err.Error()),
		)
	}
}

func (s *EventService) sendToUser(ctx context.Context, userID string, msg domain.Message) {
	if err := s.notifier.SendToUser(ctx, userID, msg); err != nil {
		s.logger.Error("lifecycle notification failed",
			logger.String("user_id", userID),
			logger.String("event_id", msg.EventID),
			logger.String("template", msg.Template),
			logger.String("error", err.Error()),
		)
	}
}
