package game

import (
	"errors"
	"fmt"
)

// ErrInvalidBoard is the cause when a board cannot hold the player craft.
var ErrInvalidBoard = errors.New("invalid board")

// InitializationError is returned when an engine cannot be brought up. The
// engine stays inert afterwards.
type InitializationError struct {
	Op            string
	Width, Height int
	Err           error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("%s %dx%d: %v", e.Op, e.Width, e.Height, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }
