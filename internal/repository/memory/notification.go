package memory

import (
	"context"
	"sort"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
)

type NotificationRepo struct {
	s *Store
}

func (r *NotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	clone := *n
	r.s.notifications[n.ID] = &clone

	return nil
}

func (r *NotificationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var res []*domain.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			clone := *n
			res = append(res, &clone)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })

	return res, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	n.Read = true

	return nil
}

func (r *NotificationRepo) UnreadCount(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}

	return count, nil
}
