package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "RICHEDIT_"

// LookupFunc reads an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envSetting struct {
	name string
	path string
	set  func(c *Config, v string) error
}

// envSettings maps environment variables to settings.
var envSettings = []envSetting{
	{"RICHEDIT_HISTORY_MAX_ENTRIES", "history.max_entries", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		c.History.MaxEntries = n
		return err
	}},
	{"RICHEDIT_HISTORY_THROTTLE", "history.throttle", func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		c.History.Throttle = Duration(d)
		return err
	}},
	{"RICHEDIT_EDITOR_SPOILER_CLASS", "editor.spoiler_class", func(c *Config, v string) error {
		c.Editor.SpoilerClass = v
		return nil
	}},
	{"RICHEDIT_EDITOR_TOOLBAR_POSITION", "editor.toolbar_position", func(c *Config, v string) error {
		c.Editor.ToolbarPosition = strings.ToLower(v)
		return nil
	}},
	{"RICHEDIT_EDITOR_PLACEHOLDER", "editor.placeholder", func(c *Config, v string) error {
		c.Editor.Placeholder = v
		return nil
	}},
	{"RICHEDIT_EDITOR_FEATURES", "editor.features", func(c *Config, v string) error {
		c.Editor.Features = splitList(v, ",")
		return nil
	}},
	{"RICHEDIT_PASTE_POLICY", "paste.policy", func(c *Config, v string) error {
		c.Paste.Policy = strings.ToLower(v)
		return nil
	}},
	{"RICHEDIT_LOG_LEVEL", "log.level", func(c *Config, v string) error {
		c.Log.Level = v
		return nil
	}},
	{"RICHEDIT_LOG_FILE", "log.file", func(c *Config, v string) error {
		c.Log.File = v
		return nil
	}},
	{"RICHEDIT_METRICS_LISTEN", "metrics.listen", func(c *Config, v string) error {
		c.Metrics.Listen = v
		return nil
	}},
	{"RICHEDIT_PLUGINS_LUA", "plugins.lua", func(c *Config, v string) error {
		c.Plugins.Lua = splitList(v, string(os.PathListSeparator))
		return nil
	}},
}

// ApplyEnv overrides cfg with the RICHEDIT_* variables lookup knows.
// Empty values are treated as set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	for _, s := range envSettings {
		v, ok := lookup(s.name)
		if !ok {
			continue
		}
		if err := s.set(cfg, strings.TrimSpace(v)); err != nil {
			return &ValidationError{Path: s.path, Message: "invalid value in " + s.name, Value: v}
		}
	}
	return nil
}

// EnvNames returns the recognized environment variables.
func EnvNames() []string {
	out := make([]string, len(envSettings))
	for i, s := range envSettings {
		out[i] = s.name
	}
	return out
}

func splitList(v, sep string) []string {
	var out []string
	for _, part := range strings.Split(v, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
