package renderer

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Attribute is a set of text attributes.
type Attribute uint16

// Text attribute flags.
const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
	AttrStrikethrough
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Cell is one grapheme cluster on screen.
type Cell struct {
	// Text is the grapheme cluster.
	Text string

	// Width is the number of columns Text occupies, 1 or 2.
	Width int

	Style Attribute
}

// Row is one screen line.
type Row []Cell

// String returns the text of the row.
func (r Row) String() string {
	var b strings.Builder
	for _, c := range r {
		b.WriteString(c.Text)
	}
	return b.String()
}

// Width returns the number of columns the row occupies.
func (r Row) Width() int {
	w := 0
	for _, c := range r {
		w += c.Width
	}
	return w
}

// Cells splits s into grapheme cells with the given style. Zero-width
// clusters such as control characters are dropped.
func Cells(s string, style Attribute) Row {
	var row Row
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if w := g.Width(); w > 0 {
			row = append(row, Cell{Text: g.Str(), Width: w, Style: style})
		}
	}
	return row
}
