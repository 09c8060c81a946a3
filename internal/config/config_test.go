package config

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/dshills/richedit/internal/feature"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.History.MaxEntries != 100 {
		t.Errorf("MaxEntries = %d, want 100", cfg.History.MaxEntries)
	}
	if cfg.History.Throttle.Std() != time.Second {
		t.Errorf("Throttle = %v, want 1s", cfg.History.Throttle)
	}
	if !slices.Equal(cfg.Editor.Features, feature.DefaultNames) {
		t.Errorf("Features = %v, want %v", cfg.Editor.Features, feature.DefaultNames)
	}

	// The default feature list must not alias the package variable
	cfg.Editor.Features[0] = "changed"
	if feature.DefaultNames[0] == "changed" {
		t.Error("Default() shares the feature slice")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"max entries", func(c *Config) { c.History.MaxEntries = 0 }, "history.max_entries"},
		{"throttle", func(c *Config) { c.History.Throttle = 0 }, "history.throttle"},
		{"spoiler class", func(c *Config) { c.Editor.SpoilerClass = " " }, "editor.spoiler_class"},
		{"toolbar", func(c *Config) { c.Editor.ToolbarPosition = "left" }, "editor.toolbar_position"},
		{"duplicate feature", func(c *Config) { c.Editor.Features = []string{"bold", "bold"} }, "editor.features"},
		{"paste policy", func(c *Config) { c.Paste.Policy = "raw" }, "paste.policy"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"styles", func(c *Config) { c.Styles = map[string]map[string]string{"p": {"": "x"}} }, "styles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("Validate() error = %v, want ErrValidationFailed", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error %T is not a ValidationError", err)
			}
			if ve.Path != tt.path {
				t.Errorf("ValidationError.Path = %q, want %q", ve.Path, tt.path)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.History.MaxEntries = -1
	cfg.Paste.Policy = "nope"

	err := cfg.Validate()
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("Validate() error %T does not join errors", err)
	}
	if got := len(joined.Unwrap()); got != 2 {
		t.Errorf("Validate() reported %d errors, want 2", got)
	}
}

func TestDuration(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("250ms")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if d.Std() != 250*time.Millisecond {
		t.Errorf("Std() = %v, want 250ms", d.Std())
	}
	text, _ := d.MarshalText()
	if string(text) != "250ms" {
		t.Errorf("MarshalText() = %q, want 250ms", text)
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("UnmarshalText(soon) should fail")
	}
}
