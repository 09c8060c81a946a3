package format

import (
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
)

// ApplyInline wraps the selected text in elements with the given tag and
// attributes. With a caret, an empty element is inserted and the caret is
// placed inside it so typed text picks up the format. Text already inside
// a matching element is left alone.
func (f *Formatter) ApplyInline(tag string, attrs ...dom.Attr) error {
	r, ok := f.rangeInside()
	if !ok {
		return selection.ErrNoSelection
	}
	if r.Collapsed() {
		return f.insertEmptyInline(tag, attrs)
	}

	class := ""
	for _, a := range attrs {
		if a.Key == "class" {
			class = a.Val
		}
	}
	match := dom.TagWithClass(tag, class)

	var first, last *dom.Node
	for _, seg := range f.textSegments(r) {
		if dom.FindAncestor(seg.node, match, f.root) != nil {
			if first == nil {
				first = seg.node
			}
			last = seg.node
			continue
		}
		mid := splitText(seg.node, seg.start, seg.end)
		wrapper := dom.NewElement(tag, attrs...)
		mid.Parent().InsertBefore(wrapper, mid)
		wrapper.AppendChild(mid)
		if first == nil {
			first = mid
		}
		last = mid
	}
	if first == nil {
		return nil
	}
	f.sel.Replace(selection.Range{
		Start: selection.Position{Container: first, Offset: 0},
		End:   selection.Position{Container: last, Offset: last.Len()},
	})
	return nil
}

func (f *Formatter) insertEmptyInline(tag string, attrs []dom.Attr) error {
	wrapper := dom.NewElement(tag, attrs...)
	text := dom.NewText("")
	wrapper.AppendChild(text)
	if err := f.sel.InsertNodes(wrapper); err != nil {
		return err
	}
	f.sel.Replace(selection.Caret(text, 0))
	return nil
}

// RemoveInline unwraps every element with tag and class that intersects
// the selection, keeping its content in place.
func (f *Formatter) RemoveInline(tag, class string) {
	r, ok := f.rangeInside()
	if !ok {
		return
	}
	match := dom.TagWithClass(tag, class)
	var targets []*dom.Node
	add := func(n *dom.Node) {
		for _, t := range targets {
			if t == n {
				return
			}
		}
		targets = append(targets, n)
	}
	ancestors := func(n *dom.Node) {
		if n != f.root && match(n) {
			add(n)
		}
		dom.TraverseUp(n, func(a *dom.Node) (struct{}, bool) {
			if a != f.root && match(a) {
				add(a)
			}
			return struct{}{}, false
		}, f.root)
	}
	ancestors(r.Start.Container)
	if ca := r.CommonAncestor(); ca != nil {
		for _, child := range f.sel.SelectedChildren(ca) {
			if match(child) {
				add(child)
			}
			dom.Walk(child, func(n *dom.Node) {
				if match(n) {
					add(n)
				}
			})
		}
	}
	ancestors(r.End.Container)

	for _, t := range targets {
		parent := t.Parent()
		at := dom.Unwrap(t)
		if at < 0 {
			continue
		}
		r.Start = reanchor(r.Start, t, parent, at)
		r.End = reanchor(r.End, t, parent, at)
	}
	f.sel.Replace(r)
	f.ensureSelection(f.root)
}

// reanchor translates a position anchored on an unwrapped element into
// its former parent.
func reanchor(p selection.Position, unwrapped, parent *dom.Node, at int) selection.Position {
	if p.Container != unwrapped {
		return p
	}
	return selection.Position{Container: parent, Offset: at + p.Offset}
}

type segment struct {
	node       *dom.Node
	start, end int
}

// textSegments returns the non-empty portions of text nodes covered by r.
func (f *Formatter) textSegments(r selection.Range) []segment {
	var out []segment
	add := func(n *dom.Node) {
		start, end := 0, n.Len()
		if n == r.Start.Container {
			start = r.Start.Offset
		}
		if n == r.End.Container {
			end = r.End.Offset
		}
		if start < end {
			out = append(out, segment{node: n, start: start, end: end})
		}
	}
	if r.Start.Container == r.End.Container && r.Start.Container.IsText() {
		add(r.Start.Container)
		return out
	}
	ca := r.CommonAncestor()
	if ca == nil {
		return nil
	}
	dom.Walk(ca, func(n *dom.Node) {
		if !n.IsText() {
			return
		}
		before := selection.Position{Container: n.Parent(), Offset: n.Index()}
		after := selection.Position{Container: n.Parent(), Offset: n.Index() + 1}
		if n != r.Start.Container && selection.ComparePoints(after, r.Start) <= 0 {
			return
		}
		if n != r.End.Container && selection.ComparePoints(before, r.End) >= 0 {
			return
		}
		add(n)
	})
	return out
}

// splitText splits n so that [start, end) is a node of its own and returns
// that node. The original node keeps the middle part.
func splitText(n *dom.Node, start, end int) *dom.Node {
	t := n.Text()
	parent := n.Parent()
	if start > 0 {
		parent.InsertBefore(dom.NewText(t[:start]), n)
	}
	if end < len(t) {
		parent.InsertBefore(dom.NewText(t[end:]), n.NextSibling())
	}
	n.SetText(t[start:end])
	return n
}
