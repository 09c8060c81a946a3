package selection

import "errors"

var (
	// ErrNoSelection indicates there is no live range.
	ErrNoSelection = errors.New("no selection")

	// ErrRangeNotInside indicates a range does not lie within the node it
	// was expressed against.
	ErrRangeNotInside = errors.New("range not inside node")
)
