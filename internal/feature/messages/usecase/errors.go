// Package usecase implements the business logic for the messages feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when the target or owning user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotAcceptingMessages is returned when the recipient's acceptance
	// gate is closed. No message is stored in that case.
	ErrNotAcceptingMessages = errors.New("user is not accepting messages")

	// ErrMessageNotFound is returned when no message with the given ID exists
	// in the owner's collection. Repeated deletes of the same ID report this
	// without any further effect.
	ErrMessageNotFound = errors.New("message not found or already deleted")

	// ErrEmptyContent is returned when the submitted message body is empty.
	ErrEmptyContent = errors.New("message content must not be empty")

	// ErrContentTooLong is returned when the submitted message body exceeds
	// the maximum length.
	ErrContentTooLong = errors.New("message content is too long")
)
