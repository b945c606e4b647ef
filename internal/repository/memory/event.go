package memory

import (
	"context"
	"sort"
	"time"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
)

type EventRepo struct {
	s *Store
}

func (r *EventRepo) Create(_ context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	clone := *e
	r.s.events[e.ID] = &clone

	return nil
}

func (r *EventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}

	clone := *e
	return &clone, nil
}

func (r *EventRepo) List(_ context.Context) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res := make([]*domain.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		clone := *e
		res = append(res, &clone)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date.Before(res[j].Date) })

	return res, nil
}

func (r *EventRepo) Approve(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	e.IsApproved = true
	e.UpdatedAt = time.Now().UTC()

	return nil
}

func (r *EventRepo) ListExpired(_ context.Context, cutoff time.Time) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cutoffDay := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)

	var res []*domain.Event
	for _, e := range r.s.events {
		day := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
		if !day.After(cutoffDay) {
			clone := *e
			res = append(res, &clone)
		}
	}

	return res, nil
}

func (r *EventRepo) Delete(_ context.Context, ids ...string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range ids {
		delete(r.s.events, id)

		for key := range r.s.saved {
			if key.eventID == id {
				delete(r.s.saved, key)
			}
		}
		for nid, n := range r.s.notifications {
			if n.EventID == id {
				delete(r.s.notifications, nid)
			}
		}
	}

	return nil
}
