// Package dom provides the mutable content tree edited by the rich text engine.
//
// The tree is made of element nodes (with a tag, attributes and an ordered
// list of children) and text leaves. Every node has at most one parent and a
// parent owns its children exclusively: inserting a node that is already
// attached somewhere detaches it first, so the tree can never share nodes or
// contain cycles.
//
// # Traversal
//
// Traverse walks descendants in pre-order and stops at the first callback
// that reports a result. TraverseUp walks ancestors and can be bounded by a
// limit node so queries never escape the editor root:
//
//	// First <b> below root
//	b := dom.FindChild(root, dom.Tag(dom.TagB))
//
//	// Nearest <blockquote> ancestor, not looking past root
//	q := dom.FindAncestor(node, dom.Tag(dom.TagBlockquote), root)
//
// # Layout
//
// Whether a node is block level is not a property of the tree. It is asked
// from a Layout supplied by the embedding surface, mirroring a computed
// "display" style. Text nodes are never block level.
//
// # Markup
//
// Parse and ParseFragment read serialized markup into nodes, Render writes
// the inner markup of a node back out. Render produces the same form a
// browser reports as innerHTML (void elements as "<br>", not "<br/>").
package dom
