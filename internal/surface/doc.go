// Package surface defines what the editor core needs from the surface that
// displays it: layout classification and computed style queries.
//
// Stylesheet is a Surface driven by per-tag rules. It starts from a default
// rendering of the tags the editor produces and accepts overrides, usually
// loaded from the styles section of the configuration:
//
//	ss := surface.NewStylesheet()
//	ss.Set("blockquote", "font-style", "italic")
//	ss.ComputedStyle(textInsideQuote, "font-style") // "italic"
package surface
