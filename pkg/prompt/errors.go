package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrInvalidChoice is returned when a driver reports a selection outside
	// the offered options.
	ErrInvalidChoice = errors.New("prompt: invalid choice")
)
