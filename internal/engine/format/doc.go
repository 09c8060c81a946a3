// Package format implements the structural formatting commands used by
// editor features: inline wrappers (b, i, s, span), lists and quote
// levels.
//
// A Formatter is bound to one editor root, its layout and its live
// selection. Every query is limited to the root so matches never escape
// into the host document:
//
//	f := format.New(root, layout, sel)
//	if f.HasFormat(dom.TagB, "") {
//		f.RemoveInline(dom.TagB, "")
//	} else {
//		f.ApplyInline(dom.TagB)
//	}
//
// Commands leave the selection valid: positions inside text nodes are
// kept and positions anchored on removed elements are translated or
// moved to the end of the affected content.
package format
