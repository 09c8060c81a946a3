package selection

import "github.com/dshills/richedit/internal/engine/dom"

// CloneNodeAndRange deep clones node and re-expresses r against the clone.
// It fails with ErrRangeNotInside when either endpoint of r lies outside
// node.
func CloneNodeAndRange(node *dom.Node, r Range) (*dom.Node, Range, error) {
	cloned := r
	var startFound, endFound bool
	var clone func(n *dom.Node) *dom.Node
	clone = func(n *dom.Node) *dom.Node {
		c := n.Clone(false)
		for _, child := range n.Children() {
			c.AppendChild(clone(child))
		}
		if n == r.Start.Container {
			cloned.Start.Container, startFound = c, true
		}
		if n == r.End.Container {
			cloned.End.Container, endFound = c, true
		}
		return c
	}
	root := clone(node)
	if !startFound || !endFound {
		return nil, Range{}, ErrRangeNotInside
	}
	return root, cloned, nil
}

// Rebase rewrites every endpoint of r that points at from so it points at
// to. Offsets are kept.
func Rebase(r Range, from, to *dom.Node) Range {
	if r.Start.Container == from {
		r.Start.Container = to
	}
	if r.End.Container == from {
		r.End.Container = to
	}
	return r
}
