package line

import (
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
)

// IndentNodes wraps a run of siblings in a new element with the given tag,
// placed where the first node was. A bogus break ending the parent right
// after the run and a break right before the run are removed first, since
// the new block already separates the line. Returns the new element, or nil
// when nodes is empty or detached.
func IndentNodes(l dom.Layout, sel *selection.Selection, nodes []*dom.Node, tag string, changeSelection bool) *dom.Node {
	if len(nodes) == 0 || nodes[0].Parent() == nil {
		return nil
	}
	first, last := nodes[0], nodes[len(nodes)-1]
	parent := first.Parent()
	block := dom.NewElement(tag)

	if tail := parent.LastChild(); tail != nil && last.NextSibling() == tail && IsBogusBR(l, tail) {
		parent.RemoveChild(tail)
	}
	if prev := first.PrevSibling(); prev.Is(dom.TagBR) {
		parent.RemoveChild(prev)
	}

	parent.InsertBefore(block, first)
	for _, n := range nodes {
		block.AppendChild(n)
	}
	if changeSelection {
		SelectEndOfNode(sel, block)
	}
	return block
}

// OutdentBlock unwraps a block: its children move into the parent at its
// position and the empty block is removed. A trailing bogus break inside
// the block is dropped. Breaks are added around the unwrapped content only
// where it would otherwise merge with a neighbouring inline run.
//
// When changeSelection is set and the selection was inside the block,
// endpoints anchored on the block are translated into the parent;
// otherwise the caret is placed where the block was.
func OutdentBlock(l dom.Layout, sel *selection.Selection, n *dom.Node, changeSelection bool) {
	parent := n.Parent()
	if parent == nil {
		return
	}
	wasInside := sel.IsInside(n)
	saved, hadRange := sel.Range()

	if last := n.LastChild(); last != nil && IsBogusBR(l, last) {
		n.RemoveChild(last)
	}

	next, last := n.NextSibling(), n.LastChild()
	needAfter := last == nil ||
		(next != nil && !dom.IsBlock(l, next) && !dom.IsBlock(l, last))
	prev := n.PrevSibling()
	needBefore := prev != nil && !dom.IsBlock(l, prev) && !prev.Is(dom.TagBR)

	if needBefore {
		parent.InsertBefore(dom.NewElement(dom.TagBR), n)
	}
	offset := n.Index()
	for n.ChildCount() > 0 {
		parent.InsertBefore(n.FirstChild(), n)
	}
	if needAfter {
		parent.InsertBefore(dom.NewElement(dom.TagBR), n)
	}
	parent.RemoveChild(n)

	if !changeSelection {
		return
	}
	if !wasInside || !hadRange {
		sel.Replace(selection.Caret(parent, clamp(offset, parent.Len())))
		return
	}
	r := saved
	if r.Start.Container == n {
		r.Start = selection.Position{Container: parent, Offset: clamp(r.Start.Offset+offset, parent.Len())}
	}
	if r.End.Container == n {
		r.End = selection.Position{Container: parent, Offset: clamp(r.End.Offset+offset, parent.Len())}
	}
	sel.Replace(r)
}

func clamp(offset, limit int) int {
	if offset > limit {
		return limit
	}
	return offset
}
