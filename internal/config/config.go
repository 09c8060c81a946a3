package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/richedit/internal/feature"
	"github.com/dshills/richedit/internal/logging"
	"github.com/dshills/richedit/internal/sanitize"
)

// Toolbar positions.
const (
	ToolbarTop    = "top"
	ToolbarBottom = "bottom"
)

// Config is the complete host configuration.
type Config struct {
	History HistoryConfig `toml:"history" yaml:"history"`
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Paste   PasteConfig   `toml:"paste" yaml:"paste"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
	Plugins PluginsConfig `toml:"plugins" yaml:"plugins"`

	// Styles overrides the stylesheet surface: tag -> property -> value,
	// e.g. styles.blockquote.font-style = "italic". An empty value removes
	// the built-in rule.
	Styles map[string]map[string]string `toml:"styles" yaml:"styles"`
}

// HistoryConfig configures undo history.
type HistoryConfig struct {
	// MaxEntries bounds the undo stack.
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`

	// Throttle is the checkpoint capture window.
	Throttle Duration `toml:"throttle" yaml:"throttle"`
}

// EditorConfig configures the editor surface.
type EditorConfig struct {
	// SpoilerClass is the class of spoiler spans.
	SpoilerClass string `toml:"spoiler_class" yaml:"spoiler_class"`

	// ToolbarPosition is "top" or "bottom".
	ToolbarPosition string `toml:"toolbar_position" yaml:"toolbar_position"`

	// Placeholder is shown while the content is empty.
	Placeholder string `toml:"placeholder" yaml:"placeholder"`

	// Features lists the features to mount, in toolbar order.
	Features []string `toml:"features" yaml:"features"`
}

// PasteConfig configures clipboard handling.
type PasteConfig struct {
	// Policy is "plain", "ugc" or "strict".
	Policy string `toml:"policy" yaml:"policy"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty discards it, since the terminal
	// host owns stdout and stderr.
	File string `toml:"file" yaml:"file"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Listen is the address serving /metrics. Empty disables it.
	Listen string `toml:"listen" yaml:"listen"`
}

// PluginsConfig configures scripted features.
type PluginsConfig struct {
	// Lua lists Lua feature scripts, mounted after the built-ins.
	Lua []string `toml:"lua" yaml:"lua"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			MaxEntries: 100,
			Throttle:   Duration(time.Second),
		},
		Editor: EditorConfig{
			SpoilerClass:    feature.DefaultSpoilerClass,
			ToolbarPosition: ToolbarTop,
			Features:        slices.Clone(feature.DefaultNames),
		},
		Paste: PasteConfig{Policy: sanitize.PolicyPlain},
		Log:   LogConfig{Level: "info"},
	}
}

// Validate checks every setting and reports all failures.
func (c Config) Validate() error {
	var errs []error
	fail := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if c.History.MaxEntries < 1 {
		fail("history.max_entries", "must be at least 1", c.History.MaxEntries)
	}
	if c.History.Throttle <= 0 {
		fail("history.throttle", "must be positive", c.History.Throttle)
	}
	if strings.TrimSpace(c.Editor.SpoilerClass) == "" {
		fail("editor.spoiler_class", "must not be empty", c.Editor.SpoilerClass)
	}
	switch c.Editor.ToolbarPosition {
	case ToolbarTop, ToolbarBottom:
	default:
		fail("editor.toolbar_position", "must be top or bottom", c.Editor.ToolbarPosition)
	}
	seen := make(map[string]bool, len(c.Editor.Features))
	for _, name := range c.Editor.Features {
		if seen[name] {
			fail("editor.features", "duplicate feature", name)
		}
		seen[name] = true
	}
	switch c.Paste.Policy {
	case sanitize.PolicyPlain, sanitize.PolicyUGC, sanitize.PolicyStrict:
	default:
		fail("paste.policy", "must be plain, ugc or strict", c.Paste.Policy)
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		fail("log.level", "unknown level", c.Log.Level)
	}
	for tag, props := range c.Styles {
		for prop := range props {
			if tag == "" || prop == "" {
				fail("styles", "tag and property must not be empty", tag+"."+prop)
			}
		}
	}
	return errors.Join(errs...)
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration time.Duration

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String implements fmt.Stringer.
func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}
