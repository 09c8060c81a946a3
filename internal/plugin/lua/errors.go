package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrInvalidFeature is returned when a script does not define a usable
	// feature table.
	ErrInvalidFeature = errors.New("invalid feature definition")

	// ErrNoHost is returned when the editor API is used outside a feature
	// callback.
	ErrNoHost = errors.New("feature is not running in an editor")
)
