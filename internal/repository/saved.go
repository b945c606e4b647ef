package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type SavedEventRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewSavedEventRepo(db *dbpg.DB) *SavedEventRepository {
	return &SavedEventRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

// Save inserts the (user, event) pair. ON CONFLICT DO NOTHING makes the
// call idempotent and absorbs the unique-constraint race between two
// concurrent saves.
func (r *SavedEventRepository) Save(ctx context.Context, userID, eventID string) error {
	query := `INSERT INTO saved_events (user_id, event_id, created_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_id, event_id) DO NOTHING`

	_, err := r.db.ExecWithRetry(ctx, r.strategy, query, userID, eventID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert saved event: %w", err)
	}

	return nil
}

func (r *SavedEventRepository) Unsave(ctx context.Context, userID, eventID string) error {
	query := `DELETE FROM saved_events WHERE user_id = $1 AND event_id = $2`

	res, err := r.db.ExecWithRetry(ctx, r.strategy, query, userID, eventID)
	if err != nil {
		return fmt.Errorf("delete saved event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unsave rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrSavedEventNotFound
	}

	return nil
}

func (r *SavedEventRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SavedEvent, error) {
	query := `SELECT user_id, event_id, reminder_24h_sent, reminder_1h_sent, created_at
			  FROM saved_events
			  WHERE user_id = $1
			  ORDER BY created_at DESC`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved events: %w", err)
	}
	defer rows.Close()

	var res []*domain.SavedEvent
	for rows.Next() {
		var s domain.SavedEvent
		if err = rows.Scan(&s.UserID, &s.EventID, &s.Reminder24hSent, &s.Reminder1hSent, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan saved event: %w", err)
		}
		res = append(res, &s)
	}

	return res, rows.Err()
}

func (r *SavedEventRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM saved_events WHERE user_id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, userID)
	if err != nil {
		return 0, fmt.Errorf("count saved events: %w", err)
	}

	var count int
	if err = row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan saved count: %w", err)
	}

	return count, nil
}

const pendingColumns = `s.user_id, s.event_id, s.reminder_24h_sent, s.reminder_1h_sent,
			  e.title, e.date, e.time, e.venue`

func (r *SavedEventRepository) ListPending(ctx context.Context) ([]*domain.PendingReminder, error) {
	query := `SELECT ` + pendingColumns + `
			  FROM saved_events s
			  JOIN events e ON e.id = s.event_id
			  WHERE s.reminder_24h_sent = false OR s.reminder_1h_sent = false`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}
	defer rows.Close()

	return scanPending(rows)
}

func (r *SavedEventRepository) ListForUser(ctx context.Context, userID string) ([]*domain.PendingReminder, error) {
	query := `SELECT ` + pendingColumns + `
			  FROM saved_events s
			  JOIN events e ON e.id = s.event_id
			  WHERE s.user_id = $1`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user reminders: %w", err)
	}
	defer rows.Close()

	return scanPending(rows)
}

// UpsertReminderFlags persists staged flag updates in one transaction.
// Flags are ORed with the stored value so they never regress, even if a
// stale sweep writes after a fresher one.
func (r *SavedEventRepository) UpsertReminderFlags(ctx context.Context, updates []domain.ReminderFlagUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO saved_events (user_id, event_id, reminder_24h_sent, reminder_1h_sent, created_at)
			  VALUES ($1, $2, $3, $4, now())
			  ON CONFLICT (user_id, event_id) DO UPDATE
			  SET reminder_24h_sent = saved_events.reminder_24h_sent OR EXCLUDED.reminder_24h_sent,
			      reminder_1h_sent  = saved_events.reminder_1h_sent  OR EXCLUDED.reminder_1h_sent`

	for _, u := range updates {
		if _, err = tx.ExecContext(ctx, query, u.UserID, u.EventID, u.Reminder24hSent, u.Reminder1hSent); err != nil {
			return fmt.Errorf("upsert reminder flags: %w", err)
		}
	}

	return tx.Commit()
}

func scanPending(rows *sql.Rows) ([]*domain.PendingReminder, error) {
	var res []*domain.PendingReminder
	for rows.Next() {
		var p domain.PendingReminder
		if err := rows.Scan(
			&p.UserID, &p.EventID, &p.Reminder24hSent, &p.Reminder1hSent,
			&p.EventTitle, &p.EventDate, &p.EventTime, &p.Venue,
		); err != nil {
			return nil, fmt.Errorf("scan pending reminder: %w", err)
		}
		res = append(res, &p)
	}

	return res, rows.Err()
}
