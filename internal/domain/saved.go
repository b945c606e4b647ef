package domain

import "time"

// SavedEvent is one (user, event) pair in the save registry. The reminder
// flags are monotonic: once a flag is set it stays set until the row is
// deleted (unsave or event deletion).
type SavedEvent struct {
	UserID          string    `json:"user_id"`
	EventID         string    `json:"event_id"`
	Reminder24hSent bool      `json:"reminder_24h_sent"`
	Reminder1hSent  bool      `json:"reminder_1h_sent"`
	CreatedAt       time.Time `json:"created_at"`
}

// PendingReminder is a SavedEvent row joined with the fields of its event
// the reminder sweep needs.
type PendingReminder struct {
	UserID          string
	EventID         string
	Reminder24hSent bool
	Reminder1hSent  bool
	EventTitle      string
	EventDate       time.Time
	EventTime       *string
	Venue           string
}

func (p *PendingReminder) EventStartsAt() time.Time {
	return CombineDateTime(p.EventDate, p.EventTime)
}

// ReminderFlagUpdate is one staged flag write, keyed by (user, event).
type ReminderFlagUpdate struct {
	UserID          string
	EventID         string
	Reminder24hSent bool
	Reminder1hSent  bool
}
