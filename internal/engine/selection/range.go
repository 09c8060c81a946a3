package selection

import (
	"fmt"

	"github.com/dshills/richedit/internal/engine/dom"
)

// Position is a boundary point in the tree.
type Position struct {
	Container *dom.Node
	Offset    int
}

// Valid reports whether the offset is a valid index into the container.
func (p Position) Valid() bool {
	return p.Container != nil && p.Offset >= 0 && p.Offset <= p.Container.Len()
}

// Node resolves the position to the node it designates.
// See RangeNode.
func (p Position) Node() *dom.Node {
	return RangeNode(p.Container, p.Offset)
}

// String returns a debug representation.
func (p Position) String() string {
	if p.Container == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s@%d", p.Container.Tag(), p.Offset)
}

// Range is a pair of positions. Start never follows End.
type Range struct {
	Start Position
	End   Position
}

// Caret returns a collapsed range at (container, offset).
func Caret(container *dom.Node, offset int) Range {
	p := Position{Container: container, Offset: offset}
	return Range{Start: p, End: p}
}

// NewRange returns a range between two positions, swapping them when
// end precedes start.
func NewRange(start, end Position) Range {
	if ComparePoints(start, end) > 0 {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// Collapsed reports whether the range is a caret.
func (r Range) Collapsed() bool {
	return r.Start == r.End
}

// Valid reports whether both endpoints are valid positions in the same tree.
func (r Range) Valid() bool {
	return r.Start.Valid() && r.End.Valid() && r.Start.Container.Root() == r.End.Container.Root()
}

// Collapse returns the range collapsed to its start or end.
func (r Range) Collapse(toStart bool) Range {
	if toStart {
		return Range{Start: r.Start, End: r.Start}
	}
	return Range{Start: r.End, End: r.End}
}

// CommonAncestor returns the deepest node containing both endpoints.
func (r Range) CommonAncestor() *dom.Node {
	for n := r.Start.Container; n != nil; n = n.Parent() {
		if n.Contains(r.End.Container) {
			return n
		}
	}
	return nil
}

// String returns a debug representation.
func (r Range) String() string {
	return fmt.Sprintf("[%s, %s]", r.Start, r.End)
}

// ComparePoints returns -1, 0 or 1 when a is before, equal to or after b
// in document order.
func ComparePoints(a, b Position) int {
	pa, pb := path(a), path(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		switch {
		case pa[i] < pb[i]:
			return -1
		case pa[i] > pb[i]:
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

// path returns the child indices from the root down to the container
// followed by the offset.
func path(p Position) []int {
	var out []int
	for n := p.Container; n != nil && n.Parent() != nil; n = n.Parent() {
		out = append(out, n.Index())
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return append(out, p.Offset)
}

// RangeNode resolves a boundary point to a node: text containers resolve
// to themselves, elements to the child at offset. Returns nil when the
// offset points past the last child.
func RangeNode(container *dom.Node, offset int) *dom.Node {
	if container.IsText() {
		return container
	}
	return container.Child(offset)
}

// DeleteContents removes the content between the endpoints. Text
// containers are truncated and fully enclosed nodes are removed;
// partially enclosed elements stay in place. Returns the range collapsed
// to its start, which remains a valid position.
func (r Range) DeleteContents() Range {
	if r.Collapsed() {
		return r
	}
	sc, so := r.Start.Container, r.Start.Offset
	ec, eo := r.End.Container, r.End.Offset

	if sc == ec && sc.IsText() {
		t := sc.Text()
		sc.SetText(t[:so] + t[eo:])
		return r.Collapse(true)
	}

	var contained []*dom.Node
	var collect func(n *dom.Node)
	collect = func(n *dom.Node) {
		for i, c := range n.Children() {
			before := Position{Container: n, Offset: i}
			after := Position{Container: n, Offset: i + 1}
			if ComparePoints(before, r.Start) >= 0 && ComparePoints(after, r.End) <= 0 {
				contained = append(contained, c)
				continue
			}
			collect(c)
		}
	}
	if ca := r.CommonAncestor(); ca != nil {
		collect(ca)
	}

	if sc.IsText() {
		sc.SetText(sc.Text()[:so])
	}
	if ec.IsText() {
		ec.SetText(ec.Text()[eo:])
	}
	for _, n := range contained {
		n.Remove()
	}
	return r.Collapse(true)
}
