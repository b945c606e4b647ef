package dto

import (
	"time"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/service"
)

const dateLayout = "2006-01-02"

type EventResponse struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Date             string  `json:"date"`
	Time             *string `json:"time"`
	Venue            string  `json:"venue"`
	Category         string  `json:"category"`
	ImageURL         string  `json:"image_url,omitempty"`
	DocumentURL      string  `json:"document_url,omitempty"`
	Organizer        string  `json:"organizer"`
	IsApproved       bool    `json:"is_approved"`
	CreatedBy        string  `json:"created_by"`
	RegistrationLink string  `json:"registration_link,omitempty"`
	SocialLink       string  `json:"social_link,omitempty"`
	EntryFee         string  `json:"entry_fee,omitempty"`
	ExpectedAudience string  `json:"expected_audience,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Date:             e.Date.Format(dateLayout),
		Time:             e.Time,
		Venue:            e.Venue,
		Category:         string(e.Category),
		ImageURL:         e.ImageURL,
		DocumentURL:      e.DocumentURL,
		Organizer:        e.Organizer,
		IsApproved:       e.IsApproved,
		CreatedBy:        e.CreatedBy,
		RegistrationLink: e.RegistrationLink,
		SocialLink:       e.SocialLink,
		EntryFee:         e.EntryFee,
		ExpectedAudience: e.ExpectedAudience,
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
	}
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

type NotificationResponse struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		EventID:   n.EventID,
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

// SweepResponse matches what the admin dashboard expects from the reminder
// trigger endpoint.
type SweepResponse struct {
	Message   string              `json:"message"`
	Results   SweepResultsSection `json:"results"`
	Processed int                 `json:"processed"`
}

type SweepResultsSection struct {
	Sent24h int `json:"sent24h"`
	Sent1h  int `json:"sent1h"`
	Errors  int `json:"errors"`
}

func ToSweepResponse(res *service.SweepResult) SweepResponse {
	msg := "Reminder sweep complete"
	if res.Processed == 0 && res.Errors == 0 {
		msg = "No pending reminders"
	}
	return SweepResponse{
		Message: msg,
		Results: SweepResultsSection{
			Sent24h: res.Sent24h,
			Sent1h:  res.Sent1h,
			Errors:  res.Errors,
		},
		Processed: res.Processed,
	}
}

type CleanupResponse struct {
	Deleted int `json:"deleted"`
	Total   int `json:"total"`
	Errors  int `json:"errors"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
