package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type PushTokenRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewPushTokenRepo(db *dbpg.DB) *PushTokenRepository {
	return &PushTokenRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *PushTokenRepository) Add(ctx context.Context, userID string, chatID int64) error {
	query := `INSERT INTO push_tokens (user_id, chat_id, created_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_id, chat_id) DO NOTHING`

	_, err := r.db.ExecWithRetry(ctx, r.strategy, query, userID, chatID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert push token: %w", err)
	}

	return nil
}

func (r *PushTokenRepository) Remove(ctx context.Context, userID string, chatID int64) error {
	query := `DELETE FROM push_tokens WHERE user_id = $1 AND chat_id = $2`

	if _, err := r.db.ExecWithRetry(ctx, r.strategy, query, userID, chatID); err != nil {
		return fmt.Errorf("delete push token: %w", err)
	}

	return nil
}

func (r *PushTokenRepository) ListByUser(ctx context.Context, userID string) ([]int64, error) {
	query := `SELECT chat_id FROM push_tokens WHERE user_id = $1`

	return r.listChatIDs(ctx, query, userID)
}

func (r *PushTokenRepository) ListAll(ctx context.Context) ([]int64, error) {
	query := `SELECT DISTINCT chat_id FROM push_tokens`

	return r.listChatIDs(ctx, query)
}

func (r *PushTokenRepository) listChatIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list push tokens: %w", err)
	}
	defer rows.Close()

	var res []int64
	for rows.Next() {
		var chatID int64
		if err = rows.Scan(&chatID); err != nil {
			return nil, fmt.Errorf("scan push token: %w", err)
		}
		res = append(res, chatID)
	}

	return res, rows.Err()
}
