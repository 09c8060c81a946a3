package format

import (
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/line"
	"github.com/dshills/richedit/internal/engine/selection"
)

// Formatter applies formatting commands to the content under root.
type Formatter struct {
	root   *dom.Node
	layout dom.Layout
	sel    *selection.Selection
}

// New creates a Formatter for the editor rooted at root.
func New(root *dom.Node, layout dom.Layout, sel *selection.Selection) *Formatter {
	return &Formatter{root: root, layout: layout, sel: sel}
}

// Root returns the editor root.
func (f *Formatter) Root() *dom.Node { return f.root }

// Selection returns the live selection.
func (f *Formatter) Selection() *selection.Selection { return f.sel }

// Layout returns the layout used for block queries.
func (f *Formatter) Layout() dom.Layout { return f.layout }

// rangeInside returns the live range when both endpoints lie in the root.
func (f *Formatter) rangeInside() (selection.Range, bool) {
	r, ok := f.sel.Range()
	if !ok || !r.Valid() {
		return selection.Range{}, false
	}
	if !f.root.Contains(r.Start.Container) || !f.root.Contains(r.End.Container) {
		return selection.Range{}, false
	}
	return r, true
}

// HasFormat reports whether an element with tag and class intersects the
// selection. An empty class matches any element with the tag.
func (f *Formatter) HasFormat(tag, class string) bool {
	return f.Find(dom.TagWithClass(tag, class)) != nil
}

// Find returns the node accepted by m that intersects the selection, or
// nil. The root itself is never returned.
func (f *Formatter) Find(m dom.Matcher) *dom.Node {
	if _, ok := f.rangeInside(); !ok {
		return nil
	}
	n := f.sel.FindIntersecting(m, f.root)
	if n == nil || n == f.root {
		return nil
	}
	return n
}

// ForEachBlock calls fn for every block the selection touches, innermost
// blocks first, until fn returns true. The root counts as a block when
// content sits directly in it.
func (f *Formatter) ForEachBlock(fn func(block *dom.Node) bool) {
	r, ok := f.rangeInside()
	if !ok {
		return
	}
	seen := make(map[*dom.Node]bool)
	visit := func(b *dom.Node) bool {
		if b == nil || seen[b] {
			return false
		}
		seen[b] = true
		return fn(b)
	}
	if visit(f.blockOf(r.Start.Container)) {
		return
	}
	if ca := r.CommonAncestor(); ca != nil {
		for _, child := range f.sel.SelectedChildren(ca) {
			if dom.IsBlock(f.layout, child) && visit(child) {
				return
			}
			stop, _ := dom.Traverse(child, func(n *dom.Node) (bool, bool) {
				if dom.IsBlock(f.layout, n) && visit(n) {
					return true, true
				}
				return false, false
			})
			if stop {
				return
			}
		}
	}
	visit(f.blockOf(r.End.Container))
}

func (f *Formatter) blockOf(n *dom.Node) *dom.Node {
	if n != f.root && dom.IsBlock(f.layout, n) {
		return n
	}
	if b := dom.FindAncestor(n, func(a *dom.Node) bool { return dom.IsBlock(f.layout, a) }, f.root); b != nil {
		return b
	}
	return f.root
}

// ensureSelection moves the caret to the end of fallback unless the live
// range is still anchored inside the root.
func (f *Formatter) ensureSelection(fallback *dom.Node) {
	if _, ok := f.rangeInside(); ok {
		return
	}
	if !line.SelectEndOfNode(f.sel, fallback) {
		f.sel.Replace(selection.Caret(fallback, fallback.Len()))
	}
}
