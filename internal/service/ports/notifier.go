package ports

import (
	"context"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
)

// Notifier is the push dispatch sink. SendToUser addresses one recipient;
// Broadcast addresses the campus-wide topic. A recipient with no registered
// device is not an error; a transport failure is.
type Notifier interface {
	SendToUser(ctx context.Context, userID string, msg domain.Message) error
	Broadcast(ctx context.Context, msg domain.Message) error
}
