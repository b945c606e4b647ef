package memory

import (
	"context"
	"sort"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
)

type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}

	clone := *user
	r.s.users[user.ID] = &clone

	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	clone := *u
	return &clone, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}

	return nil, domain.ErrUserNotFound
}

func (r *UserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		clone := *u
		res = append(res, &clone)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Email < res[j].Email })

	return res, nil
}
