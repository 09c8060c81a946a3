package history

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
)

func TestNewCheckpoint(t *testing.T) {
	root, _ := dom.Parse(dom.TagDiv, `<p>ab</p>`)
	text := root.Child(0).Child(0)
	cp, err := NewCheckpoint(root, selection.Caret(text, 1), time.Unix(1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if cp.Content != `<p>ab</p>` || !cp.HasSnapshot() {
		t.Errorf("checkpoint = %+v", cp)
	}
	if cp.Node == root || cp.Range.Start.Container == text {
		t.Error("snapshot must not share nodes with the live tree")
	}

	// Later edits do not leak into the snapshot.
	text.SetText("changed")
	if got := dom.Render(cp.Node); got != `<p>ab</p>` {
		t.Errorf("snapshot = %q", got)
	}
}

func TestNewCheckpointRangeOutside(t *testing.T) {
	root, _ := dom.Parse(dom.TagDiv, `<p>ab</p>`)
	other := dom.NewText("x")
	_, err := NewCheckpoint(root, selection.Caret(other, 0), time.Time{})
	if !errors.Is(err, selection.ErrRangeNotInside) {
		t.Errorf("err = %v, want ErrRangeNotInside", err)
	}
}

func TestCheckpointRestoreClones(t *testing.T) {
	root, _ := dom.Parse(dom.TagDiv, `<p>ab</p>`)
	cp, err := NewCheckpoint(root, selection.Caret(root.Child(0), 1), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	first, r1, err := cp.Restore()
	if err != nil {
		t.Fatal(err)
	}
	second, _, _ := cp.Restore()
	if first == second || first == cp.Node {
		t.Error("each restore must produce a fresh clone")
	}
	if r1.Start.Container != first.Child(0) || r1.Start.Offset != 1 {
		t.Errorf("restored range = %v", r1)
	}

	if _, _, err := ContentCheckpoint("x", time.Time{}).Restore(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("err = %v, want ErrNoSnapshot", err)
	}
}
