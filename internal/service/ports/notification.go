package ports

import (
	"context"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
)

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
}

type PushTokenRepo interface {
	Add(ctx context.Context, userID string, chatID int64) error
	Remove(ctx context.Context, userID string, chatID int64) error
	ListByUser(ctx context.Context, userID string) ([]int64, error)
	ListAll(ctx context.Context) ([]int64, error)
}
