package config

import (
	"sync"
	"time"

	"github.com/dshills/richedit/internal/config/watcher"
)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path   string
	lookup LookupFunc
	fw     *watcher.Watcher

	mu       sync.RWMutex
	onChange []func(Config)
	onError  []func(error)
}

// WatchOption configures a Watcher.
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
	lookup   LookupFunc
}

// WithReloadDebounce sets how long changes settle before a reload.
func WithReloadDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) { o.debounce = d }
}

// WithLookup replaces the environment consulted on reload.
func WithLookup(lookup LookupFunc) WatchOption {
	return func(o *watchOptions) { o.lookup = lookup }
}

// NewWatcher starts watching path. The file may not exist yet.
func NewWatcher(path string, opts ...WatchOption) (*Watcher, error) {
	o := watchOptions{debounce: 100 * time.Millisecond, lookup: defaultLookup}
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := FormatOf(path); err != nil {
		return nil, err
	}

	fw, err := watcher.New(watcher.WithDebounce(o.debounce))
	if err != nil {
		return nil, err
	}
	w := &Watcher{path: path, lookup: o.lookup, fw: fw}
	fw.OnChange(w.handle)
	fw.OnError(w.fail)
	if err := fw.Watch(path); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string { return w.path }

// OnChange registers fn to receive every successfully reloaded config.
// A removed file reloads as defaults plus environment.
func (w *Watcher) OnChange(fn func(Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// OnError registers fn to receive reload failures.
func (w *Watcher) OnError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = append(w.onError, fn)
}

// Reload loads the file now and notifies the handlers.
func (w *Watcher) Reload() {
	cfg, err := LoadWith(w.path, w.lookup)
	if err != nil {
		w.fail(err)
		return
	}
	w.mu.RLock()
	handlers := append([]func(Config){}, w.onChange...)
	w.mu.RUnlock()
	for _, fn := range handlers {
		fn(cfg)
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) handle(watcher.Event) {
	w.Reload()
}

func (w *Watcher) fail(err error) {
	w.mu.RLock()
	handlers := append([]func(error){}, w.onError...)
	w.mu.RUnlock()
	for _, fn := range handlers {
		fn(err)
	}
}
