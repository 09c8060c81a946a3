package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrUnsavedChanges is returned by the first quit request while the
	// content has unsaved changes. A second request quits anyway.
	ErrUnsavedChanges = errors.New("unsaved changes, press Ctrl+Q again to quit")

	// ErrNoContentPath indicates a save without a content file.
	ErrNoContentPath = errors.New("no content file")

	// ErrClipboardUnavailable indicates the system has no clipboard tool.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)

// ComponentError represents a failure to set up or tear down a component.
type ComponentError struct {
	Component string // Component name (e.g., "config", "screen", "metrics")
	Action    string // Action being performed
	Err       error  // Underlying error
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Action != "" {
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Action, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FileError represents a content file operation error.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return e.Op + " " + e.Path
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}
