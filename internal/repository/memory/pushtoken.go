package memory

import "context"

type PushTokenRepo struct {
	s *Store
}

func (r *PushTokenRepo) Add(_ context.Context, userID string, chatID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tokens[tokenKey{userID: userID, chatID: chatID}] = struct{}{}

	return nil
}

func (r *PushTokenRepo) Remove(_ context.Context, userID string, chatID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.tokens, tokenKey{userID: userID, chatID: chatID})

	return nil
}

func (r *PushTokenRepo) ListByUser(_ context.Context, userID string) ([]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var res []int64
	for key := range r.s.tokens {
		if key.userID == userID {
			res = append(res, key.chatID)
		}
	}

	return res, nil
}

func (r *PushTokenRepo) ListAll(_ context.Context) ([]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[int64]struct{})
	var res []int64
	for key := range r.s.tokens {
		if _, dup := seen[key.chatID]; dup {
			continue
		}
		seen[key.chatID] = struct{}{}
		res = append(res, key.chatID)
	}

	return res, nil
}
