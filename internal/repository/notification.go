package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type NotificationRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewNotificationRepo(db *dbpg.DB) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (id, user_id, event_id, type, title, body, read, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		n.ID, n.UserID, n.EventID, n.Type, n.Title, n.Body, n.Read, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	query := `SELECT id, user_id, event_id, type, title, body, read, created_at
			  FROM notifications
			  WHERE user_id = $1
			  ORDER BY created_at DESC`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var res []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err = rows.Scan(&n.ID, &n.UserID, &n.EventID, &n.Type, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		res = append(res, &n)
	}

	return res, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	query := `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecWithRetry(ctx, r.strategy, query, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = false`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	var count int
	if err = row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan unread count: %w", err)
	}

	return count, nil
}
