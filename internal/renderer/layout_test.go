package renderer

import (
	"testing"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/surface"
)

func parse(t *testing.T, markup string) *dom.Node {
	t.Helper()
	root, err := dom.Parse(dom.TagDiv, markup)
	if err != nil {
		t.Fatalf("Parse(%q): %v", markup, err)
	}
	return root
}

// findText returns the first text node with the given content.
func findText(t *testing.T, root *dom.Node, text string) *dom.Node {
	t.Helper()
	var found *dom.Node
	dom.Walk(root, func(n *dom.Node) {
		if found == nil && n.IsText() && n.Text() == text {
			found = n
		}
	})
	if found == nil {
		t.Fatalf("no text node %q", text)
	}
	return found
}

func caretAt(container *dom.Node, offset int) *selection.Selection {
	sel := selection.New()
	sel.Replace(selection.Caret(container, offset))
	return sel
}

func TestLayoutText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		width  int
		want   string
	}{
		{"empty", ``, 0, ``},
		{"paragraphs", `<p>ab</p><p>cd</p>`, 0, "ab\ncd"},
		{"line break", `ab<br>cd`, 0, "ab\ncd"},
		{"trailing break", `<p>ab<br></p>`, 0, "ab"},
		{"double break", `a<br><br>`, 0, "a\n"},
		{"empty paragraph", `<p>a</p><p><br></p><p>b</p>`, 0, "a\n\nb"},
		{"quote", `<blockquote><p>a</p><p>b</p></blockquote>`, 0, "│ a\n│ b"},
		{"bullets", `<ul><li>a</li><li>b</li></ul>`, 0, "• a\n• b"},
		{"numbers", `<ol><li>a</li><li>b</li><li>c</li></ol>`, 0, "1. a\n2. b\n3. c"},
		{"item continuation", `<ul><li>a<br>b</li></ul>`, 0, "• a\n  b"},
		{"quoted list", `<blockquote><ul><li>x</li></ul></blockquote>`, 0, "│ • x"},
		{"inline formatting", `<p>a<b>b</b><i>c</i></p>`, 0, "abc"},
		{"wrap", `<p>abcdef</p>`, 3, "abc\ndef"},
		{"wrap in item", `<ul><li>abcdef</li></ul>`, 5, "• abc\n  def"},
		{"wide", `<p>日本語</p>`, 4, "日本\n語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, tt.markup)
			f := Layout(root, nil, Options{Surface: surface.NewStylesheet(), Width: tt.width})
			if got := f.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if f.HasCaret {
				t.Error("caret without a selection")
			}
		})
	}
}

func TestLayoutCaret(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		width  int
		at     func(t *testing.T, root *dom.Node) (*dom.Node, int)
		want   Point
	}{
		{
			name:   "second paragraph",
			markup: `<p>ab</p><p>cd</p>`,
			at:     func(t *testing.T, root *dom.Node) (*dom.Node, int) { return findText(t, root, "cd"), 1 },
			want:   Point{X: 1, Y: 1},
		},
		{
			name:   "end of text",
			markup: `<p>ab</p><p>cd</p>`,
			at:     func(t *testing.T, root *dom.Node) (*dom.Node, int) { return findText(t, root, "ab"), 2 },
			want:   Point{X: 2, Y: 0},
		},
		{
			name:   "empty paragraph",
			markup: `<p>a</p><p><br></p>`,
			at:     func(t *testing.T, root *dom.Node) (*dom.Node, int) { return root.Child(1), 0 },
			want:   Point{X: 0, Y: 1},
		},
		{
			name:   "after quote bar",
			markup: `<blockquote><p>a</p></blockquote>`,
			at:     func(t *testing.T, root *dom.Node) (*dom.Node, int) { return findText(t, root, "a"), 0 },
			want:   Point{X: 2, Y: 0},
		},
		{
			name:   "empty root",
			markup: ``,
			at:     func(t *testing.T, root *dom.Node) (*dom.Node, int) { return root, 0 },
			want:   Point{X: 0, Y: 0},
		},
		{
			name:   "wide characters",
			markup: `<p>日本</p>`,
			at:     func(t *testing.T, root *dom.Node) (*dom.Node, int) { return findText(t, root, "日本"), 3 },
			want:   Point{X: 2, Y: 0},
		},
		{
			name:   "wrapped",
			markup: `<p>abcdef</p>`,
			width:  3,
			at:     func(t *testing.T, root *dom.Node) (*dom.Node, int) { return findText(t, root, "abcdef"), 4 },
			want:   Point{X: 1, Y: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, tt.markup)
			container, offset := tt.at(t, root)
			f := Layout(root, caretAt(container, offset), Options{Surface: surface.NewStylesheet(), Width: tt.width})
			if !f.HasCaret {
				t.Fatal("HasCaret = false")
			}
			if f.Caret != tt.want {
				t.Errorf("Caret = %+v, want %+v", f.Caret, tt.want)
			}
		})
	}
}

func TestLayoutIgnoresForeignSelection(t *testing.T) {
	root := parse(t, `<p>ab</p>`)
	other := parse(t, `x`)
	f := Layout(root, caretAt(other, 0), Options{Surface: surface.NewStylesheet()})
	if f.HasCaret {
		t.Errorf("caret placed for a range outside root: %+v", f.Caret)
	}
}

func TestLayoutPlaceholder(t *testing.T) {
	root := parse(t, `<p><br></p>`)
	f := Layout(root, caretAt(root.Child(0), 0), Options{
		Surface:     surface.NewStylesheet(),
		Placeholder: "Write...",
	})
	if got := f.Text(); got != "Write..." {
		t.Errorf("Text() = %q", got)
	}
	if f.Rows[0][0].Style != AttrDim {
		t.Errorf("placeholder style = %v, want dim", f.Rows[0][0].Style)
	}
	if f.Caret != (Point{}) {
		t.Errorf("Caret = %+v, want origin", f.Caret)
	}
}

func TestLayoutStyles(t *testing.T) {
	root := parse(t, `<p>a<b>b</b><i>c</i><s>d</s><u>e</u><span class="spoiler">f</span><b><i>g</i></b></p>`)
	f := Layout(root, nil, Options{Surface: surface.NewStylesheet(), SpoilerClass: "spoiler"})
	if len(f.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(f.Rows))
	}
	want := []Attribute{
		AttrNone,
		AttrBold,
		AttrItalic,
		AttrStrikethrough,
		AttrUnderline,
		AttrReverse,
		AttrBold | AttrItalic,
	}
	row := f.Rows[0]
	if len(row) != len(want) {
		t.Fatalf("cells = %d, want %d", len(row), len(want))
	}
	for i, w := range want {
		if row[i].Style != w {
			t.Errorf("cell %d (%q) style = %v, want %v", i, row[i].Text, row[i].Style, w)
		}
	}
}

func TestLayoutStylesheetRule(t *testing.T) {
	ss := surface.NewStylesheet()
	ss.Set("span", surface.PropFontWeight, "bold")
	root := parse(t, `<p><span>x</span></p>`)
	f := Layout(root, nil, Options{Surface: ss})
	if got := f.Rows[0][0].Style; got != AttrBold {
		t.Errorf("style = %v, want bold", got)
	}
}

func TestCells(t *testing.T) {
	row := Cells("a日\u0301b", AttrBold)
	if got := row.String(); got != "a日\u0301b" {
		t.Errorf("String() = %q", got)
	}
	if len(row) != 3 {
		t.Fatalf("len = %d, want 3", len(row))
	}
	if got := row.Width(); got != 4 {
		t.Errorf("Width() = %d, want 4", got)
	}
	if !row[1].Style.Has(AttrBold) {
		t.Error("style not applied")
	}
}
