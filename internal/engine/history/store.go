package history

import (
	"errors"
	"sync"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrNoSnapshot    = errors.New("checkpoint has no snapshot")
)

// DefaultMaxEntries is the history bound used when none is given.
const DefaultMaxEntries = 100

// Store is a bounded undo/redo history of checkpoints.
type Store struct {
	mu sync.Mutex

	undoStack []Checkpoint
	redoStack []Checkpoint

	maxEntries int
}

// NewStore creates a store holding at most maxEntries checkpoints.
func NewStore(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{maxEntries: maxEntries}
}

// Save pushes cp as the current state and clears the redo stack.
// It returns false and changes nothing when cp has the same content as
// the current state.
func (s *Store) Save(cp Checkpoint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.undoStack); n > 0 && s.undoStack[n-1].Content == cp.Content {
		return false
	}
	s.undoStack = append(s.undoStack, cp)
	if len(s.undoStack) > s.maxEntries {
		excess := len(s.undoStack) - s.maxEntries
		s.undoStack = s.undoStack[excess:]
	}
	s.redoStack = nil
	return true
}

// Undo moves the current state to the redo stack and returns the state
// before it. At least two states are required.
func (s *Store) Undo() (Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.undoStack)
	if n < 2 {
		return Checkpoint{}, ErrNothingToUndo
	}
	s.redoStack = append(s.redoStack, s.undoStack[n-1])
	s.undoStack = s.undoStack[:n-1]
	return s.undoStack[n-2], nil
}

// Redo moves the most recently undone state back onto the undo stack and
// returns it.
func (s *Store) Redo() (Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.redoStack)
	if n == 0 {
		return Checkpoint{}, ErrNothingToRedo
	}
	cp := s.redoStack[n-1]
	s.redoStack = s.redoStack[:n-1]
	s.undoStack = append(s.undoStack, cp)
	return cp, nil
}

// Current returns the newest state.
func (s *Store) Current() (Checkpoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undoStack) == 0 {
		return Checkpoint{}, false
	}
	return s.undoStack[len(s.undoStack)-1], true
}

// CanUndo returns true if undo is available.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undoStack) > 1
}

// CanRedo returns true if redo is available.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redoStack) > 0
}

// Len returns the number of states on the undo stack.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undoStack)
}

// RedoLen returns the number of states on the redo stack.
func (s *Store) RedoLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redoStack)
}

// Clear removes all history.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undoStack = nil
	s.redoStack = nil
}

// SetMaxEntries changes the bound. If the undo stack is larger, the
// oldest entries are removed.
func (s *Store) SetMaxEntries(maxEntries int) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxEntries = maxEntries
	if len(s.undoStack) > maxEntries {
		excess := len(s.undoStack) - maxEntries
		s.undoStack = s.undoStack[excess:]
	}
}

// MaxEntries returns the bound.
func (s *Store) MaxEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxEntries
}

// Contents returns the content of every state on the undo stack, oldest
// first.
func (s *Store) Contents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.undoStack))
	for i, cp := range s.undoStack {
		out[i] = cp.Content
	}
	return out
}
