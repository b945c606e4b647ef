package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/repository/memory"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendToUser(ctx context.Context, userID string, msg domain.Message) error {
	args := m.Called(ctx, userID, msg)
	return args.Error(0)
}

func (m *mockNotifier) Broadcast(ctx context.Context, msg domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// seedEvent stores an event starting at the given instant: the calendar day
// becomes the date, the clock becomes the "HH:MM" time field.
func seedEvent(t *testing.T, store *memory.Store, start time.Time) *domain.Event {
	t.Helper()

	clock := start.Format("15:04")
	event := &domain.Event{
		ID:         uuid.New().String(),
		Title:      "Annual Mushaira",
		Date:       time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		Time:       &clock,
		Venue:      "Kennedy Hall",
		Category:   domain.CategoryCultural,
		Organizer:  "Kennedy Hall",
		IsApproved: true,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := store.Events().Create(context.Background(), event); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return event
}

func saveEvent(t *testing.T, store *memory.Store, userID, eventID string) {
	t.Helper()
	if err := store.SavedEvents().Save(context.Background(), userID, eventID); err != nil {
		t.Fatalf("seed saved event: %v", err)
	}
}

func savedRow(t *testing.T, store *memory.Store, userID, eventID string) *domain.SavedEvent {
	t.Helper()
	rows, err := store.SavedEvents().ListByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("list saved: %v", err)
	}
	for _, row := range rows {
		if row.EventID == eventID {
			return row
		}
	}
	t.Fatalf("saved row (%s, %s) not found", userID, eventID)
	return nil
}

