package service

import (
	"context"
	"fmt"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/service/ports"
)

// NotificationService serves the inbox and the push-token registry.
type NotificationService struct {
	repo   ports.NotificationRepo
	tokens ports.PushTokenRepo
}

func NewNotificationService(repo ports.NotificationRepo, tokens ports.PushTokenRepo) *NotificationService {
	return &NotificationService{repo: repo, tokens: tokens}
}

func (s *NotificationService) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

// RegisterToken binds a device token to the user so push dispatch can reach
// them. Re-registering the same token is a no-op.
func (s *NotificationService) RegisterToken(ctx context.Context, userID string, chatID int64) error {
	if chatID == 0 {
		return fmt.Errorf("%w: device token is required", domain.ErrValidation)
	}
	return s.tokens.Add(ctx, userID, chatID)
}

func (s *NotificationService) RemoveToken(ctx context.Context, userID string, chatID int64) error {
	return s.tokens.Remove(ctx, userID, chatID)
}
