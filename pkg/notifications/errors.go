package notifications

import "errors"

var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrEmptyNotificationID is returned when a stored notification lacks
	// an ID.
	ErrEmptyNotificationID = errors.New("notification ID is required")

	// ErrEmptyTarget is returned when a notification lacks a target
	// reference.
	ErrEmptyTarget = errors.New("notification target is required")
)
