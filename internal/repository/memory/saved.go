package memory

import (
	"context"
	"time"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
)

type SavedEventRepo struct {
	s *Store
}

func (r *SavedEventRepo) Save(_ context.Context, userID, eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := savedKey{userID: userID, eventID: eventID}
	if _, exists := r.s.saved[key]; exists {
		return nil
	}

	r.s.saved[key] = &domain.SavedEvent{
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: time.Now().UTC(),
	}

	return nil
}

func (r *SavedEventRepo) Unsave(_ context.Context, userID, eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := savedKey{userID: userID, eventID: eventID}
	if _, exists := r.s.saved[key]; !exists {
		return domain.ErrSavedEventNotFound
	}
	delete(r.s.saved, key)

	return nil
}

func (r *SavedEventRepo) ListByUser(_ context.Context, userID string) ([]*domain.SavedEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var res []*domain.SavedEvent
	for _, row := range r.s.saved {
		if row.UserID == userID {
			clone := *row
			res = append(res, &clone)
		}
	}

	return res, nil
}

func (r *SavedEventRepo) CountByUser(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, row := range r.s.saved {
		if row.UserID == userID {
			count++
		}
	}

	return count, nil
}

func (r *SavedEventRepo) ListPending(_ context.Context) ([]*domain.PendingReminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var res []*domain.PendingReminder
	for _, row := range r.s.saved {
		if row.Reminder24hSent && row.Reminder1hSent {
			continue
		}
		if p := r.join(row); p != nil {
			res = append(res, p)
		}
	}

	return res, nil
}

func (r *SavedEventRepo) ListForUser(_ context.Context, userID string) ([]*domain.PendingReminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var res []*domain.PendingReminder
	for _, row := range r.s.saved {
		if row.UserID != userID {
			continue
		}
		if p := r.join(row); p != nil {
			res = append(res, p)
		}
	}

	return res, nil
}

// join mirrors the SQL inner join: rows whose event is gone drop out.
func (r *SavedEventRepo) join(row *domain.SavedEvent) *domain.PendingReminder {
	event, ok := r.s.events[row.EventID]
	if !ok {
		return nil
	}

	return &domain.PendingReminder{
		UserID:          row.UserID,
		EventID:         row.EventID,
		Reminder24hSent: row.Reminder24hSent,
		Reminder1hSent:  row.Reminder1hSent,
		EventTitle:      event.Title,
		EventDate:       event.Date,
		EventTime:       event.Time,
		Venue:           event.Venue,
	}
}

func (r *SavedEventRepo) UpsertReminderFlags(_ context.Context, updates []domain.ReminderFlagUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range updates {
		key := savedKey{userID: u.UserID, eventID: u.EventID}
		row, ok := r.s.saved[key]
		if !ok {
			row = &domain.SavedEvent{
				UserID:    u.UserID,
				EventID:   u.EventID,
				CreatedAt: time.Now().UTC(),
			}
			r.s.saved[key] = row
		}
		// OR keeps the flags monotonic.
		row.Reminder24hSent = row.Reminder24hSent || u.Reminder24hSent
		row.Reminder1hSent = row.Reminder1hSent || u.Reminder1hSent
	}

	return nil
}
