package sanitize

import (
	"errors"
	"strings"
	"testing"
)

func TestNewPolicy(t *testing.T) {
	tests := []struct {
		name    string
		wantNil bool
		wantErr error
	}{
		{"", true, nil},
		{"plain", true, nil},
		{"UGC", false, nil},
		{"strict", false, nil},
		{"loose", true, ErrUnknownPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewPolicy(tt.name, "spoiler")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if (s == nil) != tt.wantNil {
				t.Errorf("sanitizer nil = %v, want %v", s == nil, tt.wantNil)
			}
		})
	}
}

func TestUGCPolicy(t *testing.T) {
	s, err := NewPolicy(PolicyUGC, "spoiler")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in, want string
	}{
		{`<b>x</b><script>alert(1)</script>`, `<b>x</b>`},
		{`<span class="spoiler">s</span>`, `<span class="spoiler">s</span>`},
		{`<span class="other">s</span>`, `<span>s</span>`},
		{`<p style="color:red" onclick="x()">p</p>`, `<p>p</p>`},
		{`<ul><li>a</li></ul>`, `<ul><li>a</li></ul>`},
	}

	for _, tt := range tests {
		if got := s.Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStrictPolicy(t *testing.T) {
	s, err := NewPolicy(PolicyStrict, "")
	if err != nil {
		t.Fatal(err)
	}
	got := s.Sanitize(`<b>bold</b> text`)
	if strings.Contains(got, "<") || !strings.Contains(got, "bold text") {
		t.Errorf("Sanitize = %q", got)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"controls", "a\x00b\x1bc\td", "abc\td"},
		{"nfc", "e\u0301", "\u00e9"},
		{"unchanged", "plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
