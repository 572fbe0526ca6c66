package transition

import "errors"

var (
	// ErrRepositoryRequired is returned when no reminder source is provided.
	ErrRepositoryRequired = errors.New("reminder repository required")

	// ErrNotifierRequired is returned when no notifier is provided.
	ErrNotifierRequired = errors.New("notifier required")

	// ErrHandlerClosed is returned when delivering to a closed handler.
	ErrHandlerClosed = errors.New("transition handler closed")

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("transition handler already running")
)
