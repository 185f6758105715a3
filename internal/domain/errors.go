package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced event, camera, or user
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCamera is returned when a camera exists but belongs to a
	// different event than the one named by the command.
	ErrInvalidCamera = errors.New("camera does not belong to event")

	// ErrInvalidTransition is returned when an event lifecycle change would
	// move backwards (e.g. resuming an ended broadcast).
	ErrInvalidTransition = errors.New("invalid event status transition")

	// ErrInvalidCredentials is returned on failed login attempts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrEmptyMessage is returned when posting a blank chat message.
	ErrEmptyMessage = errors.New("empty chat message")

	// ErrSessionExpired is returned when a session cookie references an
	// expired or unknown session row.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotImplemented marks flows that are intentionally unfinished
	// (email verification, password reset by token).
	ErrNotImplemented = errors.New("not implemented")
)
