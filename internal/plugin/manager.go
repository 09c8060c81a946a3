package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/richedit/internal/plugin/lua"
)

// Manager owns the Lua feature scripts loaded for an editor. It loads
// them in order and closes their states on unload; mounting them is the
// caller's job.
type Manager struct {
	mu sync.RWMutex

	// Loaded features by name, and their load order
	plugins   map[string]*lua.Feature
	loadOrder []string

	eventHandlers []EventHandler

	stateOpts []lua.StateOption
}

// EventHandler handles plugin manager events. Panics in handlers are
// recovered.
type EventHandler func(event ManagerEvent)

// ManagerEvent represents a plugin manager event.
type ManagerEvent struct {
	Type   ManagerEventType
	Plugin string
	Path   string
	Error  error
}

// ManagerEventType is the type of manager event.
type ManagerEventType int

const (
	// EventPluginLoaded is emitted when a plugin is loaded.
	EventPluginLoaded ManagerEventType = iota
	// EventPluginUnloaded is emitted when a plugin is unloaded.
	EventPluginUnloaded
	// EventPluginError is emitted when a plugin fails to load.
	EventPluginError
)

// String returns a string representation of the event type.
func (t ManagerEventType) String() string {
	switch t {
	case EventPluginLoaded:
		return "loaded"
	case EventPluginUnloaded:
		return "unloaded"
	case EventPluginError:
		return "error"
	default:
		return "unknown"
	}
}

// NewManager creates a manager whose scripts run with opts.
func NewManager(opts ...lua.StateOption) *Manager {
	return &Manager{
		plugins:   make(map[string]*lua.Feature),
		stateOpts: opts,
	}
}

// Load loads the feature script at path.
// If a feature with the same name is loaded, returns ErrAlreadyLoaded.
func (m *Manager) Load(path string) (*lua.Feature, error) {
	f, err := lua.LoadFile(path, m.stateOpts...)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidPlugin, err)
		m.emitEvent(ManagerEvent{Type: EventPluginError, Path: path, Error: err})
		return nil, err
	}

	m.mu.Lock()
	if _, exists := m.plugins[f.Name()]; exists {
		m.mu.Unlock()
		_ = f.Close()
		return nil, fmt.Errorf("plugin %q: %w", f.Name(), ErrAlreadyLoaded)
	}
	m.plugins[f.Name()] = f
	m.loadOrder = append(m.loadOrder, f.Name())
	m.mu.Unlock()

	m.emitEvent(ManagerEvent{Type: EventPluginLoaded, Plugin: f.Name(), Path: path})
	return f, nil
}

// LoadAll loads every script in paths, in order. Scripts that fail are
// skipped; their errors are joined.
func (m *Manager) LoadAll(paths []string) ([]*lua.Feature, error) {
	var loaded []*lua.Feature
	var loadErrors []error
	for _, path := range paths {
		f, err := m.Load(path)
		if err != nil {
			loadErrors = append(loadErrors, fmt.Errorf("%s: %w", path, err))
			continue
		}
		loaded = append(loaded, f)
	}

	if len(loadErrors) > 0 {
		return loaded, fmt.Errorf("failed to load %d plugins: %w", len(loadErrors), errors.Join(loadErrors...))
	}
	return loaded, nil
}

// Unload closes the named plugin. It must already be unmounted.
func (m *Manager) Unload(name string) error {
	m.mu.Lock()
	f, exists := m.plugins[name]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("plugin %q: %w", name, ErrPluginNotFound)
	}
	delete(m.plugins, name)
	m.removeFromLoadOrder(name)
	m.mu.Unlock()

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to unload plugin %q: %w", name, err)
	}
	m.emitEvent(ManagerEvent{Type: EventPluginUnloaded, Plugin: name, Path: f.Source()})
	return nil
}

// UnloadAll unloads all plugins in reverse load order.
func (m *Manager) UnloadAll() error {
	m.mu.RLock()
	names := make([]string, len(m.loadOrder))
	for i, name := range m.loadOrder {
		names[len(m.loadOrder)-1-i] = name
	}
	m.mu.RUnlock()

	var unloadErrors []error
	for _, name := range names {
		if err := m.Unload(name); err != nil {
			unloadErrors = append(unloadErrors, err)
		}
	}
	return errors.Join(unloadErrors...)
}

// Get returns a plugin by name.
func (m *Manager) Get(name string) (*lua.Feature, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, exists := m.plugins[name]
	return f, exists
}

// List returns the loaded plugin names in load order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.loadOrder))
	copy(out, m.loadOrder)
	return out
}

// Count returns the number of loaded plugins.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.plugins)
}

// Subscribe registers an event handler.
func (m *Manager) Subscribe(handler EventHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventHandlers = append(m.eventHandlers, handler)
}

func (m *Manager) removeFromLoadOrder(name string) {
	for i, n := range m.loadOrder {
		if n == name {
			m.loadOrder = append(m.loadOrder[:i], m.loadOrder[i+1:]...)
			return
		}
	}
}

// emitEvent sends an event to all handlers with panic recovery.
func (m *Manager) emitEvent(event ManagerEvent) {
	m.mu.RLock()
	handlers := make([]EventHandler, len(m.eventHandlers))
	copy(handlers, m.eventHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		func() {
			defer func() { _ = recover() }()
			handler(event)
		}()
	}
}
