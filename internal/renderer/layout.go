package renderer

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/line"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/surface"
)

// Point is a screen position relative to the content area.
type Point struct {
	X, Y int
}

// Frame is laid out content.
type Frame struct {
	Rows []Row

	// Caret is where the selection's focus is drawn, valid when
	// HasCaret is set.
	Caret    Point
	HasCaret bool
}

// Text returns the rows joined by newlines, without styles.
func (f Frame) Text() string {
	lines := make([]string, len(f.Rows))
	for i, r := range f.Rows {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

// Options configures Layout.
type Options struct {
	// Surface resolves display and computed styles.
	Surface surface.Surface

	// Width wraps rows longer than it. Zero disables wrapping.
	Width int

	// SpoilerClass marks spans drawn in reverse video.
	SpoilerClass string

	// Placeholder is drawn dimmed on the first row when non-empty.
	Placeholder string
}

// Quote bars and list markers.
const (
	quoteBar = "│ "
	bullet   = "• "
)

// Layout renders the children of root. When sel has a range inside root
// its end is placed as the caret.
func Layout(root *dom.Node, sel *selection.Selection, opts Options) Frame {
	l := &layouter{opts: opts, root: root}
	if sel != nil {
		if r, ok := sel.Range(); ok && root.Contains(r.End.Container) {
			l.caret, l.wantCaret = r.End, true
		}
	}
	l.walk(root, AttrNone)
	l.flush()
	if len(l.frame.Rows) == 0 {
		l.frame.Rows = []Row{nil}
	}
	if opts.Placeholder != "" {
		first := l.frame.Rows[0]
		l.frame.Rows[0] = append(first, Cells(opts.Placeholder, AttrDim)...)
		if l.wantCaret && !l.frame.HasCaret {
			l.frame.Caret, l.frame.HasCaret = Point{X: first.Width()}, true
		}
	}
	return l.frame
}

// indent is one level of quote or list nesting.
type indent struct {
	first Row
	rest  Row
	used  bool
}

type layouter struct {
	opts  Options
	root  *dom.Node
	frame Frame

	row  Row
	open bool

	indents []*indent

	caret     selection.Position
	wantCaret bool
}

func (l *layouter) walk(n *dom.Node, style Attribute) {
	for i, c := range n.Children() {
		l.mark(n, i)
		l.node(c, style)
	}
	l.mark(n, n.ChildCount())
}

func (l *layouter) node(n *dom.Node, style Attribute) {
	switch {
	case n.IsText():
		l.text(n, style)
	case n.Is(dom.TagBR):
		if line.IsBogusBR(l.opts.Surface, n) {
			l.start()
			return
		}
		l.start()
		l.flush()
		l.start()
	case dom.IsBlock(l.opts.Surface, n):
		l.flush()
		pushed := l.push(n)
		l.walk(n, style)
		l.flush()
		if pushed {
			l.indents = l.indents[:len(l.indents)-1]
		}
	default:
		l.walk(n, style|l.inlineStyle(n))
	}
}

// push adds the indent n introduces, if any.
func (l *layouter) push(n *dom.Node) bool {
	switch {
	case n.Is(dom.TagBlockquote):
		bar := Cells(quoteBar, AttrDim)
		l.indents = append(l.indents, &indent{first: bar, rest: bar})
	case n.Is(dom.TagLI):
		marker := Cells(bullet, AttrNone)
		if n.Parent().Is(dom.TagOL) {
			marker = Cells(strconv.Itoa(listIndex(n))+". ", AttrNone)
		}
		pad := Cells(strings.Repeat(" ", marker.Width()), AttrNone)
		l.indents = append(l.indents, &indent{first: marker, rest: pad})
	default:
		return false
	}
	return true
}

// listIndex is the 1-based position of li among its li siblings.
func listIndex(li *dom.Node) int {
	n := 0
	for _, c := range li.Parent().Children() {
		if c.Is(dom.TagLI) {
			n++
		}
		if c == li {
			break
		}
	}
	return n
}

// start opens a row with the current indentation.
func (l *layouter) start() {
	if l.open {
		return
	}
	l.open = true
	l.row = l.prefix()
}

func (l *layouter) prefix() Row {
	var row Row
	for _, in := range l.indents {
		if in.used {
			row = append(row, in.rest...)
			continue
		}
		row = append(row, in.first...)
		in.used = true
	}
	return row
}

func (l *layouter) flush() {
	if !l.open {
		return
	}
	l.frame.Rows = append(l.frame.Rows, l.row)
	l.row = nil
	l.open = false
}

func (l *layouter) text(n *dom.Node, style Attribute) {
	style |= l.textStyle(n)
	s := n.Text()
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		from, _ := g.Positions()
		w := g.Width()
		if w == 0 {
			continue
		}
		l.start()
		if l.opts.Width > 0 && l.row.Width()+w > l.opts.Width && l.row.Width() > l.prefixWidth() {
			l.flush()
			l.start()
		}
		l.mark(n, from)
		l.row = append(l.row, Cell{Text: g.Str(), Width: w, Style: style})
	}
	l.mark(n, len(s))
}

// prefixWidth is the width of a continuation prefix.
func (l *layouter) prefixWidth() int {
	w := 0
	for _, in := range l.indents {
		w += in.rest.Width()
	}
	return w
}

// mark records the caret when it sits at (container, offset).
func (l *layouter) mark(container *dom.Node, offset int) {
	if !l.wantCaret || l.frame.HasCaret {
		return
	}
	if l.caret.Container != container || l.caret.Offset != offset {
		return
	}
	x := l.row.Width()
	if !l.open {
		x = l.nextPrefixWidth()
	}
	l.frame.Caret = Point{X: x, Y: len(l.frame.Rows)}
	l.frame.HasCaret = true
}

// nextPrefixWidth is the width of the prefix the next row will get.
func (l *layouter) nextPrefixWidth() int {
	w := 0
	for _, in := range l.indents {
		if in.used {
			w += in.rest.Width()
		} else {
			w += in.first.Width()
		}
	}
	return w
}

// textStyle maps the computed style of a text node to attributes.
func (l *layouter) textStyle(n *dom.Node) Attribute {
	var a Attribute
	s := l.opts.Surface
	if w := s.ComputedStyle(n, surface.PropFontWeight); w == "bold" || w == "bolder" || w == "700" {
		a |= AttrBold
	}
	if fs := s.ComputedStyle(n, surface.PropFontStyle); fs == "italic" || fs == "oblique" {
		a |= AttrItalic
	}
	deco := s.ComputedStyle(n, surface.PropTextDecoration)
	if strings.Contains(deco, "line-through") {
		a |= AttrStrikethrough
	}
	if strings.Contains(deco, "underline") {
		a |= AttrUnderline
	}
	return a
}

// inlineStyle returns attributes an inline element adds beyond its
// computed style.
func (l *layouter) inlineStyle(n *dom.Node) Attribute {
	if l.opts.SpoilerClass != "" && n.Is(dom.TagSpan) && n.HasClass(l.opts.SpoilerClass) {
		return AttrReverse
	}
	return AttrNone
}
