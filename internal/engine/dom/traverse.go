package dom

import "strings"

// Matcher is a node predicate used by the find helpers.
type Matcher func(n *Node) bool

// Tag returns a Matcher that accepts elements with the given tag.
func Tag(tag string) Matcher {
	tag = strings.ToLower(tag)
	return func(n *Node) bool { return n.Is(tag) }
}

// AnyTag returns a Matcher that accepts elements with any of the given tags.
func AnyTag(tags ...string) Matcher {
	return func(n *Node) bool {
		for _, t := range tags {
			if n.Is(t) {
				return true
			}
		}
		return false
	}
}

// TagWithClass returns a Matcher for elements with the tag and class.
// An empty class matches like Tag.
func TagWithClass(tag, class string) Matcher {
	if class == "" {
		return Tag(tag)
	}
	return func(n *Node) bool { return n.Is(tag) && n.HasClass(class) }
}

// Traverse walks the descendants of n in pre-order and returns the first
// result for which fn reports ok. The node itself is not visited.
func Traverse[T any](n *Node, fn func(*Node) (T, bool)) (T, bool) {
	for _, child := range n.children {
		if r, ok := fn(child); ok {
			return r, true
		}
		if r, ok := Traverse(child, fn); ok {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Walk visits every descendant of n in pre-order.
func Walk(n *Node, fn func(*Node)) {
	Traverse(n, func(c *Node) (struct{}, bool) {
		fn(c)
		return struct{}{}, false
	})
}

// TraverseUp walks the ancestors of n, nearest first, and returns the first
// result for which fn reports ok. When limit is non-nil the walk stops once
// limit has been visited; limit itself is offered to fn. Starting at limit
// yields no result.
func TraverseUp[T any](n *Node, fn func(*Node) (T, bool), limit *Node) (T, bool) {
	var zero T
	if limit != nil && n == limit {
		return zero, false
	}
	for n.parent != nil {
		n = n.parent
		if r, ok := fn(n); ok {
			return r, true
		}
		if limit != nil && n == limit {
			return zero, false
		}
	}
	return zero, false
}

// FindAncestor returns the nearest ancestor accepted by m, not looking past
// limit. Returns nil when none is found.
func FindAncestor(n *Node, m Matcher, limit *Node) *Node {
	found, _ := TraverseUp(n, func(a *Node) (*Node, bool) {
		return a, m(a)
	}, limit)
	return found
}

// FindChild returns the first descendant of n accepted by m, or nil.
func FindChild(n *Node, m Matcher) *Node {
	found, _ := Traverse(n, func(c *Node) (*Node, bool) {
		return c, m(c)
	})
	return found
}

// NodeContains reports whether n or any of its descendants is accepted by m.
func NodeContains(n *Node, m Matcher) bool {
	if m(n) {
		return true
	}
	return FindChild(n, m) != nil
}

// Same returns a Matcher accepting only target.
func Same(target *Node) Matcher {
	return func(n *Node) bool { return target != nil && n == target }
}

// IndexOfChild returns the index of child in parent, or -1.
func IndexOfChild(parent, child *Node) int {
	return parent.indexOf(child)
}

// ReplaceChildren moves the children of src into dst, replacing the
// children dst had before. src is left empty.
func ReplaceChildren(dst, src *Node) {
	dst.RemoveChildren()
	for src.ChildCount() > 0 {
		dst.AppendChild(src.FirstChild())
	}
}

// Unwrap splices the children of n into its parent at the position of n and
// removes n. Returns the index n had in its parent, or -1 if it was detached.
func Unwrap(n *Node) int {
	parent := n.parent
	if parent == nil {
		return -1
	}
	at := parent.indexOf(n)
	for n.ChildCount() > 0 {
		parent.InsertBefore(n.FirstChild(), n)
	}
	parent.RemoveChild(n)
	return at
}

// StripAttr removes the attribute from every element below n.
func StripAttr(n *Node, key string) {
	Walk(n, func(c *Node) {
		if c.IsElement() {
			c.RemoveAttr(key)
		}
	})
}
