// Package line derives visual lines from the content tree and restructures
// them into and out of block containers.
//
// A line is the maximal run of inline siblings bounded by block elements or
// line breaks. A bogus break is a trailing <br> with no following content
// that only keeps an otherwise empty block from collapsing; it never counts
// as line content.
//
// Block level commands build on two primitives:
//
//	quote := line.IndentNodes(l, sel, line.SelectedNodesExpanded(l, sel), dom.TagBlockquote, true)
//	line.OutdentBlock(l, sel, quote, true)
//
// Functions that move the caret take a changeSelection flag; when it is
// false the live selection is left alone and may be stale afterwards.
package line
