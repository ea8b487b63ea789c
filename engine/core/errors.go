package core

import (
	"errors"
)

var (
	// ErrInvalidBrushParameter is returned when a stroke is created with a
	// non-positive radius or a negative debounce distance. It fails only the
	// offending creation call and never corrupts existing strokes.
	ErrInvalidBrushParameter = errors.New("invalid brush parameter")

	// ErrUseAfterDispose signals a programming-contract violation: a stroke
	// was touched after its resources were released. It is used as a panic
	// value, not as a recoverable error.
	ErrUseAfterDispose = errors.New("stroke used after dispose")

	ErrUnknown = errors.New("unknown")
)
