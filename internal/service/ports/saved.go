package ports

import (
	"context"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
)

type SavedEventRepo interface {
	// Save is idempotent: saving an already-saved event is a no-op.
	Save(ctx context.Context, userID, eventID string) error
	Unsave(ctx context.Context, userID, eventID string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.SavedEvent, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// ListPending returns rows with at least one unsent reminder flag,
	// joined with their event's date, time, title and venue.
	ListPending(ctx context.Context) ([]*domain.PendingReminder, error)
	// ListForUser returns all of one user's rows regardless of flags,
	// joined the same way. Used by the sweep's test mode.
	ListForUser(ctx context.Context, userID string) ([]*domain.PendingReminder, error)
	// UpsertReminderFlags persists staged flag updates keyed by
	// (user, event). Flags only ever advance from false to true.
	UpsertReminderFlags(ctx context.Context, updates []domain.ReminderFlagUpdate) error
}
