package domain

import "errors"

var (
	// ErrUnauthenticated means no bearer credential was presented
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidToken covers bad signature, malformed token and expiry
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserNotFound means the token subject has no matching account
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by signup when the email is taken
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned for an unknown email and for a wrong password alike
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound means a vocabulary entry is absent or owned by someone else
	ErrNotFound = errors.New("not found")
	// ErrTutorUnavailable means the tutor failed or could not be reached
	ErrTutorUnavailable = errors.New("tutor unavailable")
	// ErrUnavailable wraps unexpected store faults
	ErrUnavailable = errors.New("service unavailable")
	// ErrInvalidInput is returned for rejected field values
	ErrInvalidInput = errors.New("invalid input")
)
