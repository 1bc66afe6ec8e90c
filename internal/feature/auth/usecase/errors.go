// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username, email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering with a username that already exists.
	ErrUsernameTaken = errors.New("username already registered")

	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserAlreadyExists is returned when an insert loses a registration race
	// and the store rejects the row on a unique constraint.
	ErrUserAlreadyExists = errors.New("user already registered")

	// ErrInvalidCredentials is returned during login when the username or
	// password is wrong. The message is deliberately generic.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)
