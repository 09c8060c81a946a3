package line

import (
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
)

// IsBogusBR reports whether n is a trailing placeholder break: a <br>
// without a next sibling whose previous sibling is absent or inline.
func IsBogusBR(l dom.Layout, n *dom.Node) bool {
	if !n.Is(dom.TagBR) || n.NextSibling() != nil {
		return false
	}
	prev := n.PrevSibling()
	return prev == nil || !dom.IsBlock(l, prev)
}

// AddBogusBR appends a placeholder break to a block that does not end
// with one. Inline nodes are left unchanged.
func AddBogusBR(l dom.Layout, n *dom.Node) {
	if !dom.IsBlock(l, n) {
		return
	}
	if last := n.LastChild(); last == nil || !IsBogusBR(l, last) {
		n.AppendChild(dom.NewElement(dom.TagBR))
	}
}

func isBreakOrBlock(l dom.Layout, n *dom.Node) bool {
	return n.Is(dom.TagBR) || dom.IsBlock(l, n)
}

// LeftOfNode returns the siblings before n on the same line, in order.
func LeftOfNode(l dom.Layout, n *dom.Node) []*dom.Node {
	var result []*dom.Node
	for prev := n.PrevSibling(); prev != nil && !isBreakOrBlock(l, prev); prev = prev.PrevSibling() {
		result = append([]*dom.Node{prev}, result...)
	}
	return result
}

// RightOfNode returns the siblings after n on the same line, including the
// terminating break unless it is bogus. A break has nothing to its right.
func RightOfNode(l dom.Layout, n *dom.Node) []*dom.Node {
	if n.Is(dom.TagBR) {
		return nil
	}
	var result []*dom.Node
	cur := n
	for next := cur.NextSibling(); next != nil && !isBreakOrBlock(l, next); next = cur.NextSibling() {
		cur = next
		result = append(result, cur)
	}
	if next := cur.NextSibling(); next.Is(dom.TagBR) && !IsBogusBR(l, next) {
		result = append(result, next)
	}
	return result
}

// WholeLine returns every node on the line that n belongs to. A block is
// a line of its own.
func WholeLine(l dom.Layout, n *dom.Node) []*dom.Node {
	if dom.IsBlock(l, n) {
		return []*dom.Node{n}
	}
	child := n
	if p := n.Parent(); p == nil || !dom.IsBlock(l, p) {
		if a := dom.LastParentBeforeBlock(l, n); a != nil {
			child = a
		}
	}
	result := append(LeftOfNode(l, child), child)
	if child.Is(dom.TagBR) {
		return result
	}
	return append(result, RightOfNode(l, child)...)
}

// SelectedLine returns the line at the start of the live range.
func SelectedLine(l dom.Layout, sel *selection.Selection) []*dom.Node {
	r, ok := sel.Range()
	if !ok {
		return nil
	}
	start := r.Start.Node()
	if start == nil {
		return nil
	}
	return WholeLine(l, start)
}

// SelectedNodesExpanded returns the whole lines touched by the live range,
// as siblings under the nearest block containing both endpoints.
func SelectedNodesExpanded(l dom.Layout, sel *selection.Selection) []*dom.Node {
	r, ok := sel.Range()
	if !ok {
		return nil
	}
	if r.Collapsed() {
		return SelectedLine(l, sel)
	}
	ancestor := r.CommonAncestor()
	if ancestor == nil {
		return nil
	}
	if !dom.IsBlock(l, ancestor) {
		ancestor = dom.FindParentBlock(l, ancestor)
		if ancestor == nil {
			return nil
		}
	}
	nodes := sel.SelectedChildren(ancestor)
	if len(nodes) == 0 {
		return nil
	}
	result := LeftOfNode(l, nodes[0])
	result = append(result, nodes...)
	return append(result, RightOfNode(l, nodes[len(nodes)-1])...)
}

// SelectEndOfNode moves the caret to the last position inside n that can
// hold one: the end of the last text node, or just before a trailing
// break. Returns false when n has no such position.
func SelectEndOfNode(sel *selection.Selection, n *dom.Node) bool {
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		child := children[i]
		if SelectEndOfNode(sel, child) {
			return true
		}
		if child.Is(dom.TagBR) {
			prev := child.PrevSibling()
			if !prev.IsText() {
				sel.Replace(selection.Caret(n, i))
				return true
			}
			child = prev
		}
		if child.IsText() {
			sel.Replace(selection.Caret(child, child.Len()))
			return true
		}
	}
	return false
}

// SelectStartOfNode moves the caret to the first position inside n that
// can hold one: the start of the first text node, or just before a
// leading break. Returns false when n has no such position.
func SelectStartOfNode(sel *selection.Selection, n *dom.Node) bool {
	for i, child := range n.Children() {
		if SelectStartOfNode(sel, child) {
			return true
		}
		if child.IsText() {
			sel.Replace(selection.Caret(child, 0))
			return true
		}
		if child.Is(dom.TagBR) {
			sel.Replace(selection.Caret(n, i))
			return true
		}
	}
	return false
}
