package editor

import (
	"errors"
	"fmt"
)

// Controller errors.
var (
	// ErrClosed is returned by operations on a closed controller.
	ErrClosed = errors.New("editor closed")

	// ErrDisabled is returned when input is rejected in disabled mode.
	ErrDisabled = errors.New("editor disabled")

	// ErrNoScheduler is returned by New when Options has no Scheduler.
	ErrNoScheduler = errors.New("editor requires a scheduler")

	// ErrNotExecutable is returned by Exec for features without a command.
	ErrNotExecutable = errors.New("feature has no command")

	// ErrInvalidChange indicates a change document that is not JSON.
	ErrInvalidChange = errors.New("invalid change document")
)

// Operation names used in OperationError.
const (
	OpUndo       = "undo"
	OpRedo       = "redo"
	OpPaste      = "paste"
	OpCut        = "cut"
	OpSetContent = "set-content"
	OpMount      = "mount"
	OpUnmount    = "unmount"
	OpExec       = "exec"
)

// OperationError reports the failure of a controller operation.
type OperationError struct {
	Op     string // Operation name (e.g., "undo", "paste")
	Target string // Feature name, when the operation concerns one
	Err    error  // Underlying error
}

func newOpError(op string, err error) *OperationError {
	return &OperationError{Op: op, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches both the wrapper itself and the wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
