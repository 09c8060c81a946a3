package editor

import (
	"unicode/utf8"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/line"
	"github.com/dshills/richedit/internal/engine/selection"
)

// stops returns the caret positions below root in document order: the
// start of every block, the end of every character and the position after
// every break that starts a visible line.
func stops(l dom.Layout, root *dom.Node) []selection.Position {
	var out []selection.Position
	var block *dom.Node
	dom.Walk(root, func(n *dom.Node) {
		if n == root || (!n.IsText() && !n.Is(dom.TagBR)) {
			return
		}
		if b := dom.FindParentBlock(l, n); len(out) == 0 || b != block {
			block = b
			if n.IsText() {
				out = append(out, selection.Position{Container: n})
			} else {
				out = append(out, selection.Position{Container: n.Parent(), Offset: n.Index()})
			}
		}
		if n.IsText() {
			t := n.Text()
			for i := 0; i < len(t); {
				_, size := utf8.DecodeRuneInString(t[i:])
				i += size
				out = append(out, selection.Position{Container: n, Offset: i})
			}
			return
		}
		if !line.IsBogusBR(l, n) {
			out = append(out, selection.Position{Container: n.Parent(), Offset: n.Index() + 1})
		}
	})
	if len(out) == 0 {
		out = append(out, selection.Position{Container: root})
	}
	return out
}

// locate returns the index of the last stop at or before p.
func locate(st []selection.Position, p selection.Position) int {
	at := 0
	for i, s := range st {
		if selection.ComparePoints(s, p) > 0 {
			break
		}
		at = i
	}
	return at
}

// MoveCaret moves the caret delta stops through the document. With
// extend the far end of the selection moves and the other end stays put.
// Without it an expanded selection first collapses toward delta.
func (c *Controller) MoveCaret(delta int, extend bool) bool {
	if c.closed || delta == 0 {
		return false
	}
	r, ok := c.liveRange()
	if !ok {
		return false
	}
	if !extend && !r.Collapsed() {
		p := r.Start
		if delta > 0 {
			p = r.End
		}
		c.extending = false
		c.sel.Replace(selection.Caret(p.Container, p.Offset))
		return true
	}

	anchor, head := r.Start, r.End
	if c.extending && r == c.extended {
		anchor, head = c.anchor, c.head
	}
	st := stops(c.surf, c.root)
	i := locate(st, head)
	if delta > 0 || selection.ComparePoints(st[i], head) == 0 {
		i += delta
	}
	i = max(0, min(i, len(st)-1))
	head = st[i]

	if !extend {
		c.extending = false
		c.sel.Replace(selection.Caret(head.Container, head.Offset))
		return true
	}
	nr := selection.NewRange(anchor, head)
	c.anchor, c.head, c.extended, c.extending = anchor, head, nr, true
	c.sel.Replace(nr)
	return true
}

// deleteBackward removes the selection, or the content between the caret
// and the stop before it. Blocks are not merged.
func (c *Controller) deleteBackward() bool {
	r, ok := c.liveRange()
	if !ok {
		return false
	}
	if r.Collapsed() {
		st := stops(c.surf, c.root)
		i := locate(st, r.Start)
		if selection.ComparePoints(st[i], r.Start) == 0 {
			if i == 0 {
				return false
			}
			i--
		}
		r = selection.NewRange(st[i], r.Start)
	}
	caret := r.DeleteContents()
	b := caret.Start.Container
	if !dom.IsBlock(c.surf, b) {
		b = dom.FindParentBlock(c.surf, b)
	}
	if b != nil && b != c.root && dom.TextContent(b) == "" && !dom.NodeContains(b, dom.Tag(dom.TagBR)) {
		b.AppendChild(dom.NewElement(dom.TagBR))
	}
	c.extending = false
	c.sel.Replace(caret)
	return true
}
