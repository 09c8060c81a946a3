package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  Key
		wantRune rune
		wantMod  Modifier
	}{
		{"b", KeyRune, 'b', ModNone},
		{"B", KeyRune, 'b', ModNone},
		{"Ctrl+B", KeyRune, 'b', ModCtrl},
		{"meta+i", KeyRune, 'i', ModMeta},
		{"Ctrl+Shift+Z", KeyRune, 'z', ModCtrl | ModShift},
		{"cmd + shift + z", KeyRune, 'z', ModMeta | ModShift},
		{"Enter", KeyEnter, 0, ModNone},
		{"Shift+Tab", KeyTab, 0, ModShift},
		{"Ctrl+Space", KeyRune, ' ', ModCtrl},
		{"Alt+7", KeyRune, '7', ModAlt},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			ev, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if ev.Key != tt.wantKey {
				t.Errorf("key = %v, want %v", ev.Key, tt.wantKey)
			}
			if ev.Rune != tt.wantRune {
				t.Errorf("rune = %q, want %q", ev.Rune, tt.wantRune)
			}
			if ev.Modifiers != tt.wantMod {
				t.Errorf("modifiers = %v, want %v", ev.Modifiers, tt.wantMod)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+B", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
		{"Ctrl+bogus", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := Parse(tt.spec)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestParseMatchesTerminalEvent(t *testing.T) {
	spec := MustParse("Ctrl+Shift+Z")
	if !spec.Matches(NewRuneEvent('Z', ModCtrl)) {
		t.Error("Ctrl+Shift+Z should match 'Z' reported with Ctrl")
	}
	if spec.Matches(NewRuneEvent('z', ModCtrl)) {
		t.Error("Ctrl+Shift+Z should not match Ctrl+z")
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid spec")
		}
	}()
	MustParse("Hyper+Q")
}
