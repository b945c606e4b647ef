package domain

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSavedEventNotFound   = errors.New("event is not saved")
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("admin access required")
)

var (
	ErrEmailTaken = errors.New("email is already registered")
)

var (
	ErrValidation = errors.New("validation error")
)
