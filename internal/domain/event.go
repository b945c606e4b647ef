package domain

import "time"

type Category string

const (
	CategoryCultural   Category = "Cultural"
	CategoryAcademic   Category = "Academic"
	CategoryHall       Category = "Hall"
	CategoryClub       Category = "Club"
	CategoryDepartment Category = "Department"
	CategorySports     Category = "Sports"
)

var Categories = []Category{
	CategoryCultural, CategoryAcademic, CategoryHall,
	CategoryClub, CategoryDepartment, CategorySports,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Event is a single campus event. Date carries the calendar day only;
// Time is an optional "HH:MM" local clock time.
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Date             time.Time `json:"date"`
	Time             *string   `json:"time"`
	Venue            string    `json:"venue"`
	Category         Category  `json:"category"`
	ImageURL         string    `json:"image_url"`
	DocumentURL      string    `json:"document_url,omitempty"`
	Organizer        string    `json:"organizer"`
	IsApproved       bool      `json:"is_approved"`
	CreatedBy        string    `json:"created_by"`
	UserID           string    `json:"user_id,omitempty"`
	RegistrationLink string    `json:"registration_link,omitempty"`
	SocialLink       string    `json:"social_link,omitempty"`
	EntryFee         string    `json:"entry_fee,omitempty"`
	ExpectedAudience string    `json:"expected_audience,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StartsAt combines the event's date and clock time into a single instant.
// A missing time means midnight.
func (e *Event) StartsAt() time.Time {
	return CombineDateTime(e.Date, e.Time)
}

func CombineDateTime(date time.Time, clock *string) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if clock == nil || *clock == "" {
		return day
	}
	t, err := time.Parse("15:04", *clock)
	if err != nil {
		return day
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

type CreateEventInput struct {
	Title            string
	Description      string
	Date             time.Time
	Time             *string
	Venue            string
	Category         Category
	ImageURL         string
	DocumentURL      string
	Organizer        string
	CreatedBy        string
	UserID           string
	RegistrationLink string
	SocialLink       string
	EntryFee         string
	ExpectedAudience string
}
