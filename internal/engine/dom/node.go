package dom

import (
	"slices"
	"strings"
)

// Common tag names. Tags are always stored lower case.
const (
	TagA          = "a"
	TagB          = "b"
	TagBlockquote = "blockquote"
	TagBR         = "br"
	TagDiv        = "div"
	TagEm         = "em"
	TagI          = "i"
	TagLI         = "li"
	TagOL         = "ol"
	TagP          = "p"
	TagS          = "s"
	TagSpan       = "span"
	TagStrong     = "strong"
	TagUL         = "ul"

	// TextTag is the pseudo tag reported by text nodes.
	TextTag = "#text"
)

// Kind distinguishes element nodes from text leaves.
type Kind uint8

const (
	// ElementNode is a node with a tag, attributes and children.
	ElementNode Kind = iota
	// TextNode is a leaf holding character data.
	TextNode
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	default:
		return "unknown"
	}
}

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val string
}

// Node is an element or text node of the content tree.
type Node struct {
	kind     Kind
	tag      string
	text     string
	attrs    []Attr
	parent   *Node
	children []*Node
}

// NewElement creates a detached element node.
func NewElement(tag string, attrs ...Attr) *Node {
	n := &Node{kind: ElementNode, tag: strings.ToLower(tag)}
	if len(attrs) > 0 {
		n.attrs = slices.Clone(attrs)
	}
	return n
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{kind: TextNode, tag: TextTag, text: text}
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the lower case tag name, or TextTag for text nodes.
func (n *Node) Tag() string { return n.tag }

// IsText returns true for text leaves.
func (n *Node) IsText() bool { return n != nil && n.kind == TextNode }

// IsElement returns true for element nodes.
func (n *Node) IsElement() bool { return n != nil && n.kind == ElementNode }

// Is reports whether n is an element with the given tag.
func (n *Node) Is(tag string) bool {
	return n != nil && n.kind == ElementNode && n.tag == tag
}

// Text returns the character data of a text node.
// Elements return the empty string; use TextContent for their text.
func (n *Node) Text() string { return n.text }

// SetText replaces the character data of a text node.
func (n *Node) SetText(s string) {
	if n.kind == TextNode {
		n.text = s
	}
}

// Len returns the length used for offsets into n: the number of bytes of a
// text node or the number of children of an element.
func (n *Node) Len() int {
	if n.kind == TextNode {
		return len(n.text)
	}
	return len(n.children)
}

// Parent returns the parent node or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes. The returned slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the child at index i, or nil when i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node { return n.Child(0) }

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node { return n.Child(len(n.children) - 1) }

// PrevSibling returns the previous sibling or nil.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.Child(n.parent.indexOf(n) - 1)
}

// NextSibling returns the next sibling or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 {
		return nil
	}
	return n.parent.Child(i + 1)
}

// Index returns the position of n in its parent, or -1 when detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return n.parent.indexOf(n)
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Attrs returns the element attributes. The returned slice must not be modified.
func (n *Node) Attrs() []Attr { return n.attrs }

// Attr returns the value of an attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (n *Node) SetAttr(key, val string) {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs[i].Val = val
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Key: key, Val: val})
}

// RemoveAttr deletes an attribute. Returns true if it was present.
func (n *Node) RemoveAttr(key string) bool {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs = slices.Delete(n.attrs, i, i+1)
			return true
		}
	}
	return false
}

// HasClass reports whether the class attribute contains name.
func (n *Node) HasClass(name string) bool {
	v, ok := n.Attr("class")
	if !ok {
		return false
	}
	return slices.Contains(strings.Fields(v), name)
}

// AppendChild adds child as the last child of n, detaching it first.
func (n *Node) AppendChild(child *Node) {
	n.InsertAt(len(n.children), child)
}

// InsertBefore inserts child before ref. A nil ref appends.
// If ref is not a child of n the child is appended.
func (n *Node) InsertBefore(child, ref *Node) {
	if ref == nil {
		n.AppendChild(child)
		return
	}
	child.Remove()
	i := n.indexOf(ref)
	if i < 0 {
		i = len(n.children)
	}
	n.insert(i, child)
}

// InsertAt inserts child at index i, detaching it first. The index is
// clamped to the valid range.
func (n *Node) InsertAt(i int, child *Node) {
	if child.parent == n {
		// Detaching shifts later indices by one.
		if j := n.indexOf(child); j >= 0 && j < i {
			i--
		}
	}
	child.Remove()
	n.insert(i, child)
}

func (n *Node) insert(i int, child *Node) {
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	n.children = slices.Insert(n.children, i, child)
	child.parent = n
}

// RemoveChild detaches child from n. Returns false if it is not a child.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.indexOf(child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	return true
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// RemoveChildren detaches all children of n.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Clone copies n. When deep is true the whole subtree is copied.
// The clone is always detached.
func (n *Node) Clone(deep bool) *Node {
	c := &Node{kind: n.kind, tag: n.tag, text: n.text}
	if len(n.attrs) > 0 {
		c.attrs = slices.Clone(n.attrs)
	}
	if deep {
		for _, child := range n.children {
			c.AppendChild(child.Clone(true))
		}
	}
	return c
}

// Root returns the topmost ancestor of n (n itself when detached).
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for other != nil {
		if other == n {
			return true
		}
		other = other.parent
	}
	return false
}
