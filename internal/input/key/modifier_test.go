package key

import "testing"

func TestModifierBits(t *testing.T) {
	mods := []Modifier{ModShift, ModCtrl, ModAlt, ModMeta}
	seen := ModNone
	for _, m := range mods {
		if m == ModNone {
			t.Fatal("modifier must not be zero")
		}
		if seen.Has(m) {
			t.Fatalf("modifier %v overlaps another", m)
		}
		seen = seen.With(m)
	}
}

func TestModifierWithWithout(t *testing.T) {
	m := ModCtrl.With(ModShift)
	if !m.Has(ModCtrl) || !m.Has(ModShift) {
		t.Fatalf("With lost a modifier: %v", m)
	}
	m = m.Without(ModCtrl)
	if m.Has(ModCtrl) {
		t.Error("Without did not remove Ctrl")
	}
	if m != ModShift {
		t.Errorf("m = %v, want Shift", m)
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModMeta.With(ModShift), "Shift+Meta"},
		{ModCtrl | ModAlt | ModShift, "Ctrl+Alt+Shift"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"ctrl", ModCtrl},
		{"Control", ModCtrl},
		{"CMD", ModMeta},
		{"option", ModAlt},
		{"shift", ModShift},
		{"hyper", ModNone},
	}

	for _, tt := range tests {
		if got := ModifierFromName(tt.name); got != tt.want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
