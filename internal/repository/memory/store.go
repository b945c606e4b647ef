// Package memory implements every repository port over in-process maps.
// It backs local runs without Postgres and doubles as the fake in service
// and handler tests. Selection happens once at startup; services only ever
// see the port interfaces.
package memory

import (
	"sync"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
)

type savedKey struct {
	userID  string
	eventID string
}

type tokenKey struct {
	userID string
	chatID int64
}

// Store holds all tables behind one lock so event deletion can cascade to
// saved rows and notifications atomically, mirroring the SQL schema's
// ON DELETE CASCADE.
type Store struct {
	mu            sync.RWMutex
	events        map[string]*domain.Event
	saved         map[savedKey]*domain.SavedEvent
	users         map[string]*domain.User
	notifications map[string]*domain.Notification
	tokens        map[tokenKey]struct{}
}

func NewStore() *Store {
	return &Store{
		events:        make(map[string]*domain.Event),
		saved:         make(map[savedKey]*domain.SavedEvent),
		users:         make(map[string]*domain.User),
		notifications: make(map[string]*domain.Notification),
		tokens:        make(map[tokenKey]struct{}),
	}
}

func (s *Store) Events() *EventRepo               { return &EventRepo{s: s} }
func (s *Store) SavedEvents() *SavedEventRepo     { return &SavedEventRepo{s: s} }
func (s *Store) Users() *UserRepo                 { return &UserRepo{s: s} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }
func (s *Store) PushTokens() *PushTokenRepo       { return &PushTokenRepo{s: s} }
