package ports

import (
	"context"
	"time"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
)

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Approve(ctx context.Context, id string) error
	// ListExpired returns events dated on or before the cutoff day.
	ListExpired(ctx context.Context, cutoff time.Time) ([]*domain.Event, error)
	// Delete removes the events; saved rows and notifications cascade.
	Delete(ctx context.Context, ids ...string) error
}
