package history

import (
	"fmt"
	"time"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
)

// Checkpoint is one entry of the history.
type Checkpoint struct {
	// Content is the serialized markup of the root.
	Content string

	// Node is a detached deep clone of the root, or nil when the
	// checkpoint only carries markup.
	Node *dom.Node

	// Range is the selection expressed against Node.
	Range selection.Range

	// Time is when the checkpoint was captured.
	Time time.Time
}

// HasSnapshot reports whether the checkpoint carries a structural snapshot.
func (c Checkpoint) HasSnapshot() bool {
	return c.Node != nil
}

// NewCheckpoint captures root together with r. r must lie within root.
func NewCheckpoint(root *dom.Node, r selection.Range, at time.Time) (Checkpoint, error) {
	node, cloned, err := selection.CloneNodeAndRange(root, r)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("capture checkpoint: %w", err)
	}
	return Checkpoint{
		Content: dom.Render(root),
		Node:    node,
		Range:   cloned,
		Time:    at,
	}, nil
}

// ContentCheckpoint creates a checkpoint that only carries markup.
func ContentCheckpoint(content string, at time.Time) Checkpoint {
	return Checkpoint{Content: content, Time: at}
}

// Restore returns a fresh clone of the snapshot and its range, leaving
// the stored snapshot untouched so it can be restored again.
func (c Checkpoint) Restore() (*dom.Node, selection.Range, error) {
	if c.Node == nil {
		return nil, selection.Range{}, ErrNoSnapshot
	}
	return selection.CloneNodeAndRange(c.Node, c.Range)
}
