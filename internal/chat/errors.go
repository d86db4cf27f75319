package chat

import "errors"

var (
	// ErrUnauthorized means the caller has no valid session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the conversation or participant does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the actor is not a participant of the target
	// conversation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput means a required field is missing or empty.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCreationFailed means both storage representations rejected the
	// new conversation.
	ErrCreationFailed = errors.New("conversation creation failed")
)
