package service

import "errors"

var (
	// ErrNotFound is returned when a card or user lookup misses.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUser is returned on signup when the email is taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials is returned on login mismatch. The same
	// error covers unknown email and wrong password so a caller can
	// not probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError signals a missing required input field.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return e.Field + " required"
}
