package format

import (
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/line"
	"github.com/dshills/richedit/internal/engine/selection"
)

// IncreaseQuoteLevel wraps the selected lines in a blockquote. With no
// content at the caret an empty quote holding a placeholder break is
// inserted.
func (f *Formatter) IncreaseQuoteLevel() *dom.Node {
	if _, ok := f.rangeInside(); !ok {
		return nil
	}
	nodes := f.selectedLines()
	if len(nodes) == 0 {
		return f.insertEmptyBlock(dom.NewElement(dom.TagBlockquote))
	}
	return line.IndentNodes(f.layout, f.sel, nodes, dom.TagBlockquote, true)
}

// DecreaseQuoteLevel unwraps the innermost blockquote around the
// selection. Returns false when there is none.
func (f *Formatter) DecreaseQuoteLevel() bool {
	quote := f.Find(dom.Tag(dom.TagBlockquote))
	if quote == nil {
		return false
	}
	line.OutdentBlock(f.layout, f.sel, quote, true)
	f.ensureSelection(f.root)
	return true
}

// MakeList turns the selected lines into items of a list with the given
// tag (ul or ol). A list of the other kind around the selection is
// converted in place.
func (f *Formatter) MakeList(tag string) *dom.Node {
	if _, ok := f.rangeInside(); !ok {
		return nil
	}
	if list := f.Find(dom.AnyTag(dom.TagUL, dom.TagOL)); list != nil {
		if list.Is(tag) {
			return list
		}
		return retag(list, tag)
	}

	nodes := f.selectedLines()
	if len(nodes) == 0 {
		list := dom.NewElement(tag)
		list.AppendChild(dom.NewElement(dom.TagLI))
		f.insertEmptyBlock(list)
		return list
	}

	parent := nodes[0].Parent()
	list := dom.NewElement(tag)
	parent.InsertBefore(list, nodes[0])
	if tail := parent.LastChild(); tail != nil && nodes[len(nodes)-1].NextSibling() == tail && line.IsBogusBR(f.layout, tail) {
		parent.RemoveChild(tail)
	}

	var item *dom.Node
	for _, n := range nodes {
		switch {
		case dom.IsBlock(f.layout, n):
			li := n
			if !n.Is(dom.TagLI) {
				li = dom.NewElement(dom.TagLI)
				dom.ReplaceChildren(li, n)
				n.Remove()
			}
			fillEmpty(li)
			list.AppendChild(li)
			item = nil
		case n.Is(dom.TagBR):
			if item == nil {
				item = dom.NewElement(dom.TagLI)
				list.AppendChild(item)
			}
			fillEmpty(item)
			n.Remove()
			item = nil
		default:
			if item == nil {
				item = dom.NewElement(dom.TagLI)
				list.AppendChild(item)
			}
			item.AppendChild(n)
		}
	}
	if item != nil {
		fillEmpty(item)
	}
	if !f.sel.IsInside(list) {
		line.SelectEndOfNode(f.sel, list)
	}
	return list
}

// RemoveList unwraps the list around the selection and each of its items
// back into plain lines. Returns false when the selection is not in a list.
func (f *Formatter) RemoveList() bool {
	list := f.Find(dom.AnyTag(dom.TagUL, dom.TagOL))
	if list == nil {
		return false
	}
	items := make([]*dom.Node, 0, list.ChildCount())
	items = append(items, list.Children()...)
	line.OutdentBlock(f.layout, f.sel, list, true)
	for _, li := range items {
		if !li.Is(dom.TagLI) || li.Parent() == nil {
			continue
		}
		line.OutdentBlock(f.layout, f.sel, li, f.sel.IsInside(li))
	}
	f.ensureSelection(f.root)
	return true
}

// paragraphTags are blocks that hold a single run of text. Lines inside
// them are restructured as a whole.
var paragraphTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "pre": true,
}

// selectedLines returns the nodes of the selected lines. Lines inside a
// paragraph resolve to the paragraph itself.
func (f *Formatter) selectedLines() []*dom.Node {
	nodes := line.SelectedNodesExpanded(f.layout, f.sel)
	if len(nodes) == 0 {
		return nil
	}
	if p := nodes[0].Parent(); p != nil && p != f.root && paragraphTags[p.Tag()] {
		return []*dom.Node{p}
	}
	return nodes
}

// insertEmptyBlock inserts block at the caret, gives its innermost last
// element a placeholder break and places the caret before that break.
func (f *Formatter) insertEmptyBlock(block *dom.Node) *dom.Node {
	r, _ := f.sel.Range()
	container, offset := r.Start.Container, r.Start.Offset
	if container.IsText() {
		offset = container.Index() + 1
		container = container.Parent()
	}
	container.InsertAt(offset, block)

	target := block
	for target.LastChild() != nil && target.LastChild().IsElement() {
		target = target.LastChild()
	}
	target.AppendChild(dom.NewElement(dom.TagBR))
	f.sel.Replace(selection.Caret(target, 0))
	return block
}

// retag replaces list with a new element of the given tag holding the
// same children.
func retag(list *dom.Node, tag string) *dom.Node {
	replacement := dom.NewElement(tag, list.Attrs()...)
	list.Parent().InsertBefore(replacement, list)
	dom.ReplaceChildren(replacement, list)
	list.Remove()
	return replacement
}

// SplitBlock splits block at the caret into two siblings of the same tag,
// splitting every inline element between the caret and block as well.
// Selected content is deleted first. The caret is placed at the start of
// the new second block, which is returned. Empty halves receive a
// placeholder break.
func (f *Formatter) SplitBlock(block *dom.Node) *dom.Node {
	r, ok := f.rangeInside()
	if !ok || !block.Contains(r.Start.Container) || block.Parent() == nil {
		return nil
	}
	if !r.Collapsed() {
		r = r.DeleteContents()
	}
	n, at := r.Start.Container, r.Start.Offset
	if n.IsText() {
		t := n.Text()
		switch {
		case at == 0:
			at = n.Index()
		case at >= len(t):
			at = n.Index() + 1
		default:
			n.Parent().InsertAt(n.Index()+1, dom.NewText(t[at:]))
			n.SetText(t[:at])
			at = n.Index() + 1
		}
		n = n.Parent()
	}
	for n != block {
		carry := n.Clone(false)
		for n.ChildCount() > at {
			carry.AppendChild(n.Child(at))
		}
		at = n.Index() + 1
		if carry.ChildCount() > 0 {
			n.Parent().InsertAt(at, carry)
		}
		n = n.Parent()
	}

	second := block.Clone(false)
	for block.ChildCount() > at {
		second.AppendChild(block.Child(at))
	}
	block.Parent().InsertAt(block.Index()+1, second)
	fillEmpty(block)
	fillEmpty(second)
	if !line.SelectStartOfNode(f.sel, second) {
		f.sel.Replace(selection.Caret(second, 0))
	}
	return second
}

// fillEmpty gives a block without visible content a placeholder break so it
// keeps its line.
func fillEmpty(block *dom.Node) {
	if dom.TextContent(block) != "" || dom.FindChild(block, dom.Tag(dom.TagBR)) != nil {
		return
	}
	block.AppendChild(dom.NewElement(dom.TagBR))
}

// IsEmptyBlock reports whether block has no visible content apart from
// placeholder breaks.
func IsEmptyBlock(block *dom.Node) bool {
	if dom.TextContent(block) != "" {
		return false
	}
	return dom.FindChild(block, func(n *dom.Node) bool {
		return n.IsElement() && !n.Is(dom.TagBR)
	}) == nil
}

// ExitList removes the list item li and leaves the list at its position:
// items after li move into a new list of the same kind, an empty list is
// removed, and the caret is placed on a fresh line between the two.
func (f *Formatter) ExitList(li *dom.Node) bool {
	list := li.Parent()
	if !li.Is(dom.TagLI) || list == nil || list.Parent() == nil || !list.Is(dom.TagOL) && !list.Is(dom.TagUL) {
		return false
	}
	parent := list.Parent()
	at := list.Index() + 1
	if li.NextSibling() != nil {
		rest := list.Clone(false)
		for li.NextSibling() != nil {
			rest.AppendChild(li.NextSibling())
		}
		parent.InsertAt(at, rest)
	}
	li.Remove()
	if list.ChildCount() == 0 {
		list.Remove()
		at--
	}
	parent.InsertAt(at, dom.NewElement(dom.TagBR))
	f.sel.Replace(selection.Caret(parent, at))
	return true
}
