package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "validation_error"
	case errors.Is(err, ErrUserExists):
		return "user_exists"
	case errors.Is(err, ErrUserNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrSessionNotFound):
		return "unauthorized"
	default:
		return "internal_error"
	}
}
