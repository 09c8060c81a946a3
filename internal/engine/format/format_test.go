package format

import (
	"testing"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
)

type fixture struct {
	root *dom.Node
	sel  *selection.Selection
	f    *Formatter
}

func newFixture(t *testing.T, markup string) *fixture {
	t.Helper()
	root, err := dom.Parse(dom.TagDiv, markup)
	if err != nil {
		t.Fatalf("Parse(%q): %v", markup, err)
	}
	sel := selection.New()
	return &fixture{root: root, sel: sel, f: New(root, dom.DefaultLayout{}, sel)}
}

func (fx *fixture) text(t *testing.T, s string) *dom.Node {
	t.Helper()
	n := dom.FindChild(fx.root, func(c *dom.Node) bool { return c.IsText() && c.Text() == s })
	if n == nil {
		t.Fatalf("no text node %q in %q", s, dom.Render(fx.root))
	}
	return n
}

func (fx *fixture) caret(t *testing.T, s string, offset int) {
	t.Helper()
	fx.sel.Replace(selection.Caret(fx.text(t, s), offset))
}

func (fx *fixture) selectText(t *testing.T, from string, fromOffset int, to string, toOffset int) {
	t.Helper()
	fx.sel.Replace(selection.Range{
		Start: selection.Position{Container: fx.text(t, from), Offset: fromOffset},
		End:   selection.Position{Container: fx.text(t, to), Offset: toOffset},
	})
}

func (fx *fixture) render() string { return dom.Render(fx.root) }

func TestHasFormatRequiresSelectionInRoot(t *testing.T) {
	fx := newFixture(t, `<b>x</b>`)
	if fx.f.HasFormat(dom.TagB, "") {
		t.Error("no selection should report no format")
	}
	other := dom.NewElement(dom.TagB)
	other.AppendChild(dom.NewText("y"))
	fx.sel.Replace(selection.Caret(other.FirstChild(), 0))
	if fx.f.HasFormat(dom.TagB, "") {
		t.Error("selection outside the root should report no format")
	}
}

func TestBoldToggleRemovesWrapper(t *testing.T) {
	fx := newFixture(t, `<p>a<b>b</b>c</p>`)
	fx.caret(t, "b", 1)

	if !fx.f.HasFormat(dom.TagB, "") {
		t.Fatal("caret inside b should report bold")
	}
	fx.f.RemoveInline(dom.TagB, "")
	if got := fx.render(); got != `<p>abc</p>` {
		t.Errorf("Render = %q, want <p>abc</p>", got)
	}
	if fx.f.HasFormat(dom.TagB, "") {
		t.Error("bold should be gone")
	}
	r, _ := fx.sel.Range()
	if r.Start.Container.Text() != "b" || r.Start.Offset != 1 {
		t.Errorf("caret = %v, want b@1", r)
	}
}

func TestRemoveInlineTranslatesElementAnchors(t *testing.T) {
	fx := newFixture(t, `<p>a<b>x<br></b></p>`)
	b := dom.FindChild(fx.root, dom.Tag(dom.TagB))
	fx.sel.Replace(selection.Caret(b, 1))

	fx.f.RemoveInline(dom.TagB, "")
	r, _ := fx.sel.Range()
	p := fx.root.Child(0)
	if r.Start.Container != p || r.Start.Offset != 2 {
		t.Errorf("caret = %v, want p@2", r)
	}
}

func TestApplyInline(t *testing.T) {
	t.Run("within text", func(t *testing.T) {
		fx := newFixture(t, `<p>abcd</p>`)
		fx.selectText(t, "abcd", 1, "abcd", 3)
		if err := fx.f.ApplyInline(dom.TagB); err != nil {
			t.Fatal(err)
		}
		if got := fx.render(); got != `<p>a<b>bc</b>d</p>` {
			t.Errorf("Render = %q", got)
		}
		r, _ := fx.sel.Range()
		if r.Start.Container.Text() != "bc" || r.Start.Offset != 0 || r.End.Offset != 2 {
			t.Errorf("selection = %v", r)
		}
		if !fx.f.HasFormat(dom.TagB, "") {
			t.Error("selection should now be bold")
		}
	})

	t.Run("across blocks", func(t *testing.T) {
		fx := newFixture(t, `<p>ab</p><p>cd</p>`)
		fx.selectText(t, "ab", 1, "cd", 1)
		if err := fx.f.ApplyInline(dom.TagI); err != nil {
			t.Fatal(err)
		}
		if got := fx.render(); got != `<p>a<i>b</i></p><p><i>c</i>d</p>` {
			t.Errorf("Render = %q", got)
		}
	})

	t.Run("caret inserts empty wrapper", func(t *testing.T) {
		fx := newFixture(t, `<p>ab</p>`)
		fx.caret(t, "ab", 1)
		if err := fx.f.ApplyInline(dom.TagS); err != nil {
			t.Fatal(err)
		}
		if err := fx.sel.InsertText("x"); err != nil {
			t.Fatal(err)
		}
		if got := fx.render(); got != `<p>a<s>x</s>b</p>` {
			t.Errorf("Render = %q", got)
		}
	})

	t.Run("already formatted text is kept", func(t *testing.T) {
		fx := newFixture(t, `<p><b>ab</b>cd</p>`)
		fx.selectText(t, "ab", 0, "cd", 2)
		if err := fx.f.ApplyInline(dom.TagB); err != nil {
			t.Fatal(err)
		}
		if got := fx.render(); got != `<p><b>ab</b><b>cd</b></p>` {
			t.Errorf("Render = %q", got)
		}
	})

	t.Run("no selection", func(t *testing.T) {
		fx := newFixture(t, `<p>ab</p>`)
		if err := fx.f.ApplyInline(dom.TagB); err == nil {
			t.Error("expected an error without a selection")
		}
	})
}

func TestSpoilerClass(t *testing.T) {
	const class = "coral-rte-spoiler"
	fx := newFixture(t, `<p>secret</p>`)
	fx.selectText(t, "secret", 0, "secret", 6)

	if err := fx.f.ApplyInline(dom.TagSpan, dom.Attr{Key: "class", Val: class}); err != nil {
		t.Fatal(err)
	}
	if got := fx.render(); got != `<p><span class="coral-rte-spoiler">secret</span></p>` {
		t.Errorf("Render = %q", got)
	}
	if !fx.f.HasFormat(dom.TagSpan, class) {
		t.Error("spoiler should be active")
	}
	if fx.f.HasFormat(dom.TagSpan, "other") {
		t.Error("a span with another class is not a spoiler")
	}
	fx.f.RemoveInline(dom.TagSpan, class)
	if got := fx.render(); got != `<p>secret</p>` {
		t.Errorf("Render = %q", got)
	}
}

func TestForEachBlock(t *testing.T) {
	fx := newFixture(t, `<p>a</p><blockquote>b</blockquote><p>c</p>`)
	fx.selectText(t, "a", 0, "b", 1)

	var got []string
	fx.f.ForEachBlock(func(b *dom.Node) bool {
		got = append(got, b.Tag())
		return false
	})
	if len(got) != 2 || got[0] != "p" || got[1] != "blockquote" {
		t.Errorf("blocks = %v, want [p blockquote]", got)
	}

	calls := 0
	fx.f.ForEachBlock(func(*dom.Node) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("returning true should stop iteration, got %d calls", calls)
	}
}

func TestForEachBlockRootContent(t *testing.T) {
	fx := newFixture(t, `plain`)
	fx.caret(t, "plain", 2)
	var got []*dom.Node
	fx.f.ForEachBlock(func(b *dom.Node) bool {
		got = append(got, b)
		return false
	})
	if len(got) != 1 || got[0] != fx.root {
		t.Errorf("blocks = %v, want root", got)
	}
}
