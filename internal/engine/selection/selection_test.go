package selection

import (
	"errors"
	"testing"

	"github.com/dshills/richedit/internal/engine/dom"
)

func TestSelectionReplaceAndClear(t *testing.T) {
	root := parse(t, `abc`)
	sel := New()
	calls := 0
	sel.OnChange(func() { calls++ })

	if _, ok := sel.Range(); ok {
		t.Fatal("new selection should be empty")
	}
	sel.Replace(Caret(root, 0))
	if r, ok := sel.Range(); !ok || r.Start.Container != root {
		t.Errorf("Range() = %v, %v", r, ok)
	}
	sel.Clear()
	sel.Clear()
	if calls != 2 {
		t.Errorf("OnChange called %d times, want 2", calls)
	}
}

func TestInsertTextCoalesces(t *testing.T) {
	root := parse(t, `<p>ac</p>`)
	text := textAt(t, root, 0)
	sel := New()
	sel.Replace(Caret(text, 1))

	if err := sel.InsertText("b"); err != nil {
		t.Fatal(err)
	}
	if got := dom.Render(root); got != `<p>abc</p>` {
		t.Errorf("Render = %q", got)
	}
	if root.Child(0).ChildCount() != 1 {
		t.Error("text should be spliced into the existing node")
	}
	r, _ := sel.Range()
	if r.Start != (Position{text, 2}) || !r.Collapsed() {
		t.Errorf("caret = %v, want after inserted text", r)
	}
}

func TestInsertTextIntoElement(t *testing.T) {
	root := parse(t, `<p><br></p>`)
	p := root.Child(0)
	sel := New()
	sel.Replace(Caret(p, 0))

	if err := sel.InsertText("hi"); err != nil {
		t.Fatal(err)
	}
	if got := dom.Render(root); got != `<p>hi<br></p>` {
		t.Errorf("Render = %q", got)
	}
	r, _ := sel.Range()
	if r.Start.Container != p.Child(0) || r.Start.Offset != 2 {
		t.Errorf("caret = %v", r)
	}
}

func TestInsertTextReplacesSelection(t *testing.T) {
	root := parse(t, `hello world`)
	text := textAt(t, root, 0)
	sel := New()
	sel.Replace(Range{Start: Position{text, 6}, End: Position{text, 11}})

	if err := sel.InsertText("there"); err != nil {
		t.Fatal(err)
	}
	if got := dom.TextContent(root); got != "hello there" {
		t.Errorf("text = %q", got)
	}
}

func TestInsertTextNoSelection(t *testing.T) {
	if err := New().InsertText("x"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", err)
	}
}

func TestInsertNodesSplitsText(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		want   string
		count  int
	}{
		{"middle", 2, `ab<br>cd`, 3},
		{"start", 0, `<br>abcd`, 2},
		{"end", 4, `abcd<br>`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, `abcd`)
			text := textAt(t, root, 0)
			sel := New()
			sel.Replace(Caret(text, tt.offset))

			if err := sel.InsertNodes(dom.NewElement(dom.TagBR)); err != nil {
				t.Fatal(err)
			}
			if got := dom.Render(root); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
			if root.ChildCount() != tt.count {
				t.Errorf("ChildCount = %d, want %d", root.ChildCount(), tt.count)
			}
			if text.Parent() != nil {
				t.Error("split text node should be detached")
			}
		})
	}
}

func TestInsertNodesIntoElement(t *testing.T) {
	root := parse(t, `<p>a</p><p>b</p>`)
	sel := New()
	sel.Replace(Caret(root, 1))
	if err := sel.InsertNodes(dom.NewElement("hr")); err != nil {
		t.Fatal(err)
	}
	if got := dom.Render(root); got != `<p>a</p><hr><p>b</p>` {
		t.Errorf("Render = %q", got)
	}
}

func TestIsInside(t *testing.T) {
	root := parse(t, `<p>a</p><p>b</p><p>c</p>`)
	a, b, c := textAt(t, root, 0), textAt(t, root, 1), textAt(t, root, 2)
	sel := New()
	sel.Replace(Range{Start: Position{a, 0}, End: Position{b, 1}})

	if !sel.IsInside(root.Child(0), root.Child(1)) {
		t.Error("selection spans the first two paragraphs")
	}
	if sel.IsInside(root.Child(0)) {
		t.Error("selection ends outside the first paragraph")
	}
	if sel.IsInside(root.Child(1), root.Child(2)) {
		t.Error("selection starts outside")
	}
	sel.Replace(Caret(c, 0))
	if !sel.IsInside(root) {
		t.Error("root contains the caret")
	}
}

func TestSelectedChildren(t *testing.T) {
	root := parse(t, `<p>a</p><p>b</p><p>c</p><p>d</p>`)
	sel := New()
	sel.Replace(Range{Start: Position{textAt(t, root, 1), 0}, End: Position{textAt(t, root, 2), 1}})

	got := sel.SelectedChildren(root)
	if len(got) != 2 || got[0] != root.Child(1) || got[1] != root.Child(2) {
		t.Errorf("SelectedChildren = %v", got)
	}

	sel.Replace(Caret(root, 4))
	if got := sel.SelectedChildren(root); len(got) != 0 {
		t.Errorf("caret past last child selects %d children", len(got))
	}
}

func TestFindIntersecting(t *testing.T) {
	t.Run("caret at tag boundary", func(t *testing.T) {
		root := parse(t, `<p>a<b>b</b>c</p>`)
		b := dom.FindChild(root, dom.Tag(dom.TagB))
		sel := New()
		sel.Replace(Caret(b.FirstChild(), 0))
		if got := sel.FindIntersecting(dom.Tag(dom.TagB), root); got != b {
			t.Errorf("FindIntersecting = %v, want b", got)
		}
	})

	t.Run("caret in matching container", func(t *testing.T) {
		root := parse(t, `<blockquote><br></blockquote>`)
		quote := root.Child(0)
		sel := New()
		sel.Replace(Caret(quote, 0))
		if got := sel.FindIntersecting(dom.Tag(dom.TagBlockquote), root); got != quote {
			t.Errorf("FindIntersecting = %v, want blockquote", got)
		}
	})

	t.Run("limit stops ancestor walk", func(t *testing.T) {
		outer := parse(t, `<b><div>x</div></b>`)
		editor := outer.Child(0).Child(0)
		sel := New()
		sel.Replace(Caret(editor.FirstChild(), 0))
		if got := sel.FindIntersecting(dom.Tag(dom.TagB), editor); got != nil {
			t.Errorf("FindIntersecting escaped the limit: %v", got)
		}
	})

	t.Run("expanded over sibling blocks", func(t *testing.T) {
		root := parse(t, `<p>a</p><p><i>b</i></p><p>c</p>`)
		sel := New()
		sel.Replace(Range{Start: Position{textAt(t, root, 0), 0}, End: Position{textAt(t, root, 2), 1}})
		i := dom.FindChild(root, dom.Tag(dom.TagI))
		if got := sel.FindIntersecting(dom.Tag(dom.TagI), root); got != i {
			t.Errorf("FindIntersecting = %v, want i", got)
		}
	})

	t.Run("nearest ancestor before descendants", func(t *testing.T) {
		root := parse(t, `<ul><li>a</li><li>b</li></ul>`)
		first := root.Child(0).Child(0)
		sel := New()
		sel.Replace(Range{Start: Position{textAt(t, root, 0), 0}, End: Position{textAt(t, root, 1), 1}})
		if got := sel.FindIntersecting(dom.AnyTag(dom.TagUL, dom.TagLI), root); got != first {
			t.Errorf("FindIntersecting = %v, want first li", got)
		}
	})

	t.Run("outside selection", func(t *testing.T) {
		root := parse(t, `<p>a</p><p><i>b</i></p>`)
		sel := New()
		sel.Replace(Caret(textAt(t, root, 0), 0))
		if got := sel.FindIntersecting(dom.Tag(dom.TagI), root); got != nil {
			t.Errorf("FindIntersecting = %v, want nil", got)
		}
	})

	t.Run("no selection", func(t *testing.T) {
		if got := New().FindIntersecting(dom.Tag(dom.TagB), nil); got != nil {
			t.Error("empty selection should find nothing")
		}
	})
}

func TestCloneNodeAndRange(t *testing.T) {
	root := parse(t, `<p>ab<b>cd</b></p>`)
	r := Range{Start: Position{textAt(t, root, 0), 1}, End: Position{root.Child(0), 2}}

	clone, cr, err := CloneNodeAndRange(root, r)
	if err != nil {
		t.Fatal(err)
	}
	if dom.Render(clone) != dom.Render(root) {
		t.Error("clone differs from original")
	}
	if cr.Start.Container == r.Start.Container || !clone.Contains(cr.Start.Container) {
		t.Error("start not rebased onto clone")
	}
	if cr.End.Container != clone.Child(0) || cr.End.Offset != 2 {
		t.Errorf("end = %v", cr.End)
	}
	if cr.Start.Offset != 1 || cr.Start.Container.Text() != "ab" {
		t.Errorf("start = %v", cr.Start)
	}
}

func TestCloneNodeAndRangeOutside(t *testing.T) {
	root := parse(t, `<p>a</p><p>b</p>`)
	r := Range{Start: Position{textAt(t, root, 0), 0}, End: Position{textAt(t, root, 1), 1}}
	if _, _, err := CloneNodeAndRange(root.Child(0), r); !errors.Is(err, ErrRangeNotInside) {
		t.Errorf("err = %v, want ErrRangeNotInside", err)
	}
}

func TestRebase(t *testing.T) {
	a, b := dom.NewElement(dom.TagDiv), dom.NewElement(dom.TagDiv)
	r := Rebase(Range{Start: Position{a, 1}, End: Position{b, 0}}, a, b)
	if r.Start.Container != b || r.Start.Offset != 1 || r.End.Container != b {
		t.Errorf("Rebase = %v", r)
	}
}
