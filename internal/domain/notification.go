package domain

import "time"

// Message templates understood by the push dispatcher.
const (
	TemplateEventReminder = "event-reminder"
	TemplateEventApproved = "event-approved"
	TemplateEventRejected = "event-rejected"
	TemplateNewEvent      = "new-event"
)

type ReminderWindow string

const (
	Window24h ReminderWindow = "24h"
	Window1h  ReminderWindow = "1h"
)

// Message is a single dispatch payload addressed to one recipient or to the
// campus-wide topic.
type Message struct {
	Template  string
	Title     string
	Body      string
	EventID   string
	EventName string
	Venue     string
	StartTime string
	Window    ReminderWindow
}

// Notification is a persisted inbox record. Rows referencing an event are
// deleted together with it.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
