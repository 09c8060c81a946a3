package dom

import "strings"

// Layout answers layout questions the tree cannot answer by itself.
// It is implemented by the embedding surface.
type Layout interface {
	// Display returns the computed display value of an element,
	// e.g. "block", "inline", "inline-block" or "list-item".
	Display(n *Node) string
}

// IsBlock reports whether n occupies its own line. Anything that does not
// display as inline or inline-block is block level. Text is never block.
func IsBlock(l Layout, n *Node) bool {
	if n == nil || n.IsText() {
		return false
	}
	return !strings.HasPrefix(l.Display(n), "inline")
}

// FindParentBlock returns the nearest block ancestor of n.
func FindParentBlock(l Layout, n *Node) *Node {
	return FindAncestor(n, func(a *Node) bool { return IsBlock(l, a) }, nil)
}

// LastParentBeforeBlock returns the ancestor of n whose parent is the
// nearest block (or the root).
func LastParentBeforeBlock(l Layout, n *Node) *Node {
	return FindAncestor(n, func(a *Node) bool {
		return a.parent == nil || IsBlock(l, a.parent)
	}, nil)
}

// blockTags holds the tags rendered as blocks by a default stylesheet.
var blockTags = map[string]string{
	"address":    "block",
	"article":    "block",
	"aside":      "block",
	"blockquote": "block",
	"div":        "block",
	"dl":         "block",
	"figure":     "block",
	"footer":     "block",
	"h1":         "block",
	"h2":         "block",
	"h3":         "block",
	"h4":         "block",
	"h5":         "block",
	"h6":         "block",
	"header":     "block",
	"hr":         "block",
	"li":         "list-item",
	"ol":         "block",
	"p":          "block",
	"pre":        "block",
	"section":    "block",
	"table":      "table",
	"ul":         "block",
}

// DefaultDisplay returns the display value a default stylesheet assigns
// to tag.
func DefaultDisplay(tag string) string {
	if d, ok := blockTags[tag]; ok {
		return d
	}
	return "inline"
}

// DefaultLayout is a Layout that uses DefaultDisplay.
type DefaultLayout struct{}

// Display implements Layout.
func (DefaultLayout) Display(n *Node) string {
	return DefaultDisplay(n.Tag())
}
