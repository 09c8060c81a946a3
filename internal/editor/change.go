package editor

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Change is the content handed to the host after every committed change.
type Change struct {
	Text string
	HTML string
}

// JSON encodes the change as {"text": ..., "html": ...}.
func (c Change) JSON() ([]byte, error) {
	out, err := sjson.SetBytes(nil, "text", c.Text)
	if err != nil {
		return nil, fmt.Errorf("encode change: %w", err)
	}
	out, err = sjson.SetBytes(out, "html", c.HTML)
	if err != nil {
		return nil, fmt.Errorf("encode change: %w", err)
	}
	return out, nil
}

// ParseChange decodes a document written by Change.JSON. Missing fields
// are left empty.
func ParseChange(data []byte) (Change, error) {
	if !gjson.ValidBytes(data) {
		return Change{}, ErrInvalidChange
	}
	res := gjson.GetManyBytes(data, "text", "html")
	return Change{Text: res[0].String(), HTML: res[1].String()}, nil
}
