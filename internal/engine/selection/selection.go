package selection

import "github.com/dshills/richedit/internal/engine/dom"

// Selection is the live range of one editor. The zero value has no range.
// A Selection is not safe for concurrent use; it is owned by the editor's
// event loop.
type Selection struct {
	r        Range
	ok       bool
	onChange func()
}

// New creates an empty selection.
func New() *Selection {
	return &Selection{}
}

// Range returns the live range and whether one exists.
func (s *Selection) Range() (Range, bool) {
	return s.r, s.ok
}

// Replace makes r the live range, discarding the previous one.
func (s *Selection) Replace(r Range) {
	s.r, s.ok = r, true
	s.changed()
}

// Clear removes the live range.
func (s *Selection) Clear() {
	if !s.ok {
		return
	}
	s.r, s.ok = Range{}, false
	s.changed()
}

// Collapsed reports whether the live range is a caret. Returns true when
// there is no range.
func (s *Selection) Collapsed() bool {
	return !s.ok || s.r.Collapsed()
}

// OnChange registers fn to run after every Replace or Clear.
// Passing nil removes the hook.
func (s *Selection) OnChange(fn func()) {
	s.onChange = fn
}

func (s *Selection) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// IsInside reports whether the live range starts in one of nodes and ends
// in the same or a later one.
func (s *Selection) IsInside(nodes ...*dom.Node) bool {
	if !s.ok {
		return false
	}
	foundStart := false
	for _, n := range nodes {
		if !foundStart {
			foundStart = n.Contains(s.r.Start.Container)
		}
		if foundStart && n.Contains(s.r.End.Container) {
			return true
		}
	}
	return false
}

// DeleteContents removes the selected content and collapses the live
// range to its start.
func (s *Selection) DeleteContents() error {
	if !s.ok {
		return ErrNoSelection
	}
	s.Replace(s.r.DeleteContents())
	return nil
}

// InsertText inserts text at the caret, replacing selected content. Text
// typed into a text node extends it; otherwise a new text node is created.
// The caret is moved to the end of the inserted text.
func (s *Selection) InsertText(text string) error {
	if !s.ok {
		return ErrNoSelection
	}
	r := s.r
	if !r.Collapsed() {
		r = r.DeleteContents()
	}
	container, offset := r.Start.Container, r.Start.Offset
	if container.IsText() {
		t := container.Text()
		container.SetText(t[:offset] + text + t[offset:])
		s.Replace(Caret(container, offset+len(text)))
		return nil
	}
	node := dom.NewText(text)
	container.InsertBefore(node, container.Child(offset))
	s.Replace(Caret(node, len(text)))
	return nil
}

// InsertNodes inserts nodes at the caret, replacing selected content. A
// text node at the insertion point is split into a left and right part
// around the nodes; empty parts are dropped. The live range is not
// updated and may be stale afterwards.
func (s *Selection) InsertNodes(nodes ...*dom.Node) error {
	if !s.ok {
		return ErrNoSelection
	}
	r := s.r
	if !r.Collapsed() {
		r = r.DeleteContents()
		s.r = r
	}
	container, offset := r.Start.Container, r.Start.Offset
	if container.IsText() {
		parent := container.Parent()
		if parent == nil {
			return ErrRangeNotInside
		}
		t := container.Text()
		if left := t[:offset]; left != "" {
			nodes = append([]*dom.Node{dom.NewText(left)}, nodes...)
		}
		if right := t[offset:]; right != "" {
			nodes = append(nodes, dom.NewText(right))
		}
		for _, n := range nodes {
			parent.InsertBefore(n, container)
		}
		parent.RemoveChild(container)
		return nil
	}
	next := container.Child(offset)
	for _, n := range nodes {
		container.InsertBefore(n, next)
	}
	return nil
}

// SelectedChildren returns the children of ancestor that intersect the
// live range, in order. It starts at the child containing the start
// boundary node and stops after the child containing the end boundary node.
func (s *Selection) SelectedChildren(ancestor *dom.Node) []*dom.Node {
	if !s.ok {
		return nil
	}
	start := RangeNode(s.r.Start.Container, s.r.Start.Offset)
	end := RangeNode(s.r.End.Container, s.r.End.Offset)
	var result []*dom.Node
	foundStart := false
	for _, n := range ancestor.Children() {
		if !foundStart && dom.NodeContains(n, dom.Same(start)) {
			foundStart = true
		}
		if foundStart {
			result = append(result, n)
			if dom.NodeContains(n, dom.Same(end)) {
				break
			}
		}
	}
	return result
}

// FindIntersecting returns a node accepted by m that intersects the live
// range. The start container is tested first, then its ancestors up to
// limit, and finally the descendants of every child of the common
// ancestor that overlaps the range. Returns nil when nothing matches.
func (s *Selection) FindIntersecting(m dom.Matcher, limit *dom.Node) *dom.Node {
	if !s.ok {
		return nil
	}
	if m(s.r.Start.Container) {
		return s.r.Start.Container
	}
	if a := dom.FindAncestor(s.r.Start.Container, m, limit); a != nil {
		return a
	}
	ca := s.r.CommonAncestor()
	if ca == nil {
		return nil
	}
	for _, n := range s.SelectedChildren(ca) {
		if m(n) {
			return n
		}
		if found := dom.FindChild(n, m); found != nil {
			return found
		}
	}
	return nil
}
