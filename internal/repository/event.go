package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

const eventColumns = `id, title, description, date, time, venue, category,
		image_url, document_url, organizer, is_approved, created_by, user_id,
		registration_link, social_link, entry_fee, expected_audience,
		created_at, updated_at`

type EventRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewEventRepo(db *dbpg.DB) *EventRepository {
	return &EventRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (` + eventColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		e.ID, e.Title, e.Description, e.Date, e.Time, e.Venue, e.Category,
		e.ImageURL, e.DocumentURL, e.Organizer, e.IsApproved, e.CreatedBy, e.UserID,
		e.RegistrationLink, e.SocialLink, e.EntryFee, e.ExpectedAudience,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	e, err := scanEvent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}

	return e, nil
}

func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM events
			  ORDER BY date ASC`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var res []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		res = append(res, e)
	}

	return res, rows.Err()
}

func (r *EventRepository) Approve(ctx context.Context, id string) error {
	query := `UPDATE events SET is_approved = true, updated_at = now() WHERE id = $1`

	res, err := r.db.ExecWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return fmt.Errorf("approve event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("approve rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrEventNotFound
	}

	return nil
}

func (r *EventRepository) ListExpired(ctx context.Context, cutoff time.Time) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE date <= $1::date`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list expired events: %w", err)
	}
	defer rows.Close()

	var res []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan expired event: %w", err)
		}
		res = append(res, e)
	}

	return res, rows.Err()
}

// Delete removes events by id. saved_events and notifications rows go with
// them via ON DELETE CASCADE.
func (r *EventRepository) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM events WHERE id = ANY($1)`
	_, err := r.db.ExecWithRetry(ctx, r.strategy, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("delete events: %w", err)
	}

	return nil
}

func scanEvent(scan func(dest ...any) error) (*domain.Event, error) {
	var e domain.Event
	err := scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Venue, &e.Category,
		&e.ImageURL, &e.DocumentURL, &e.Organizer, &e.IsApproved, &e.CreatedBy, &e.UserID,
		&e.RegistrationLink, &e.SocialLink, &e.EntryFee, &e.ExpectedAudience,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
