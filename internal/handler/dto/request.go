package dto

type CreateEventRequest struct {
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description" binding:"required"`
	Date             string  `json:"date" binding:"required"`
	Time             *string `json:"time"`
	Venue            string  `json:"venue" binding:"required"`
	Category         string  `json:"category" binding:"required"`
	ImageURL         string  `json:"image_url"`
	DocumentURL      string  `json:"document_url"`
	Organizer        string  `json:"organizer" binding:"required"`
	RegistrationLink string  `json:"registration_link"`
	SocialLink       string  `json:"social_link"`
	EntryFee         string  `json:"entry_fee"`
	ExpectedAudience string  `json:"expected_audience"`
}

type CreateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Role  string `json:"role" binding:"omitempty,oneof=admin student"`
}

type ReminderTriggerRequest struct {
	TestMode bool `json:"test_mode"`
}

type PushTokenRequest struct {
	DeviceToken int64  `json:"device_token"`
	Action      string `json:"action" binding:"omitempty,oneof=add remove"`
}
