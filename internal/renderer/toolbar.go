package renderer

import (
	"strconv"

	"github.com/dshills/richedit/internal/editor"
	"github.com/dshills/richedit/internal/feature"
)

// Labels are the toolbar captions of the built-in features. Other
// features show their name.
var Labels = map[string]string{
	feature.NameBold:          "B",
	feature.NameItalic:        "I",
	feature.NameStrike:        "S",
	feature.NameSpoiler:       "Spoiler",
	feature.NameBlockquote:    "Quote",
	feature.NameOrderedList:   "1.",
	feature.NameUnorderedList: "•",
}

// MaxToolbarKeys is the number of features reachable with F1..F12.
const MaxToolbarKeys = 12

// Toolbar renders one button per feature, numbered by the function key
// that runs it. Active buttons are reversed and disabled ones dimmed.
func Toolbar(states []editor.FeatureState) Row {
	var row Row
	for i, st := range states {
		if i > 0 {
			row = append(row, Cells(" ", AttrNone)...)
		}
		label, ok := Labels[st.Name]
		if !ok {
			label = st.Name
		}
		style := AttrNone
		switch {
		case st.Disabled:
			style = AttrDim
		case st.Active:
			style = AttrReverse
		}
		if i < MaxToolbarKeys {
			row = append(row, Cells("F"+strconv.Itoa(i+1), AttrDim)...)
		}
		row = append(row, Cells("["+label+"]", style)...)
	}
	return row
}
