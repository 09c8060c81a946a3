package plugin

import "errors"

// Plugin manager errors.
var (
	// ErrPluginNotFound is returned when a plugin is not loaded.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrAlreadyLoaded is returned when a plugin with the same name is
	// already loaded.
	ErrAlreadyLoaded = errors.New("plugin is already loaded")

	// ErrInvalidPlugin is returned when a script cannot be loaded as a
	// feature.
	ErrInvalidPlugin = errors.New("invalid plugin")
)
