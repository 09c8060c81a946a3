package line

import (
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
)

// InsertNewLine inserts a line break at the caret, replacing any selected
// content. A second placeholder break is added when the new break would
// end its parent or sit directly before a block, since a lone break there
// does not produce a visible line.
func InsertNewLine(l dom.Layout, sel *selection.Selection, changeSelection bool) error {
	br := dom.NewElement(dom.TagBR)
	if err := sel.InsertNodes(br); err != nil {
		return err
	}
	parent := br.Parent()
	if br.NextSibling() == nil {
		parent.AppendChild(dom.NewElement(dom.TagBR))
	}
	if next := br.NextSibling(); next != nil && dom.IsBlock(l, next) {
		parent.InsertBefore(dom.NewElement(dom.TagBR), next)
	}
	if !changeSelection {
		return nil
	}
	offset := parent.ChildCount() - 1
	if next := br.NextSibling(); next != nil {
		offset = next.Index()
	}
	sel.Replace(selection.Caret(parent, offset))
	return nil
}

// InsertNewLineAfterNode inserts a line break directly after n.
func InsertNewLineAfterNode(sel *selection.Selection, n *dom.Node, changeSelection bool) {
	parent := n.Parent()
	if parent == nil {
		return
	}
	br := dom.NewElement(dom.TagBR)
	parent.InsertBefore(br, n.NextSibling())
	if changeSelection {
		sel.Replace(selection.Caret(parent, br.Index()))
	}
}
