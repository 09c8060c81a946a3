package editor

import (
	"errors"
	"testing"
)

func TestChangeJSON(t *testing.T) {
	ch := Change{Text: "a \"quoted\"\nline", HTML: `<p>a "quoted"<br>line</p>`}
	data, err := ch.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	got, err := ParseChange(data)
	if err != nil {
		t.Fatalf("ParseChange: %v", err)
	}
	if got != ch {
		t.Errorf("ParseChange = %+v, want %+v", got, ch)
	}
}

func TestParseChange(t *testing.T) {
	got, err := ParseChange([]byte(`{"html":"<p>x</p>"}`))
	if err != nil {
		t.Fatalf("ParseChange: %v", err)
	}
	if got.HTML != "<p>x</p>" || got.Text != "" {
		t.Errorf("ParseChange = %+v", got)
	}
	if _, err := ParseChange([]byte(`{"html":`)); !errors.Is(err, ErrInvalidChange) {
		t.Errorf("ParseChange error = %v, want ErrInvalidChange", err)
	}
}

func TestOperationError(t *testing.T) {
	err := &OperationError{Op: OpExec, Target: "bold", Err: ErrDisabled}
	if got := err.Error(); got != "exec bold: editor disabled" {
		t.Errorf("Error = %q", got)
	}
	if !errors.Is(err, ErrDisabled) {
		t.Error("errors.Is should see the wrapped error")
	}
	var nilErr *OperationError
	if nilErr.Error() != "" || nilErr.Unwrap() != nil {
		t.Error("nil OperationError should be inert")
	}
}
