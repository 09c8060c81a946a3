// Package app runs the terminal editor. It loads the configuration,
// builds an editor controller with its built-in and scripted features and
// drives it from a tcell screen.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richedit/internal/config"
	"github.com/dshills/richedit/internal/editor"
	"github.com/dshills/richedit/internal/event/loop"
	"github.com/dshills/richedit/internal/feature"
	"github.com/dshills/richedit/internal/input/key"
	"github.com/dshills/richedit/internal/logging"
	"github.com/dshills/richedit/internal/metrics"
	"github.com/dshills/richedit/internal/plugin"
	"github.com/dshills/richedit/internal/renderer"
	"github.com/dshills/richedit/internal/sanitize"
	"github.com/dshills/richedit/internal/surface"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML or YAML configuration file. Empty uses the
	// defaults and the environment only.
	ConfigPath string

	// ContentPath is the document to edit. A .json file holds a change
	// document, anything else raw markup.
	ContentPath string

	// LogLevel overrides log.level when set.
	LogLevel string

	// Screen defaults to the terminal.
	Screen tcell.Screen

	// Clipboard defaults to SystemClipboard.
	Clipboard Clipboard

	// Loop defaults to a wall-clock loop.
	Loop *loop.Loop
}

// Application ties the editor to the terminal.
type Application struct {
	opts Options
	cfg  config.Config

	log     *logging.Logger
	logFile io.Closer

	loop    *loop.Loop
	styles  *surface.Stylesheet
	editor  *editor.Controller
	plugins *plugin.Manager
	metrics *metrics.Metrics
	server  *metricsServer
	watcher *config.Watcher

	screen    tcell.Screen
	view      *renderer.View
	clipboard Clipboard

	status     string
	dirty      bool
	quitArmed  bool
	pasting    []rune
	inPaste    bool
	drawQueued bool

	running atomic.Bool
	stop    func()
}

// New loads the configuration and content and builds every component.
// Nothing touches the terminal until Run.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &ComponentError{Component: "config", Action: "load", Err: err}
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, &ComponentError{Component: "config", Action: "log level", Err: err}
		}
	}

	app := &Application{
		opts:      opts,
		cfg:       cfg,
		loop:      opts.Loop,
		screen:    opts.Screen,
		clipboard: opts.Clipboard,
	}
	if app.loop == nil {
		app.loop = loop.New()
	}
	if app.clipboard == nil {
		app.clipboard = SystemClipboard{}
	}

	if err := app.bootstrap(); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	cfg := app.cfg

	// 1. Logging
	if err := app.openLog(); err != nil {
		return err
	}

	// 2. Metrics
	if cfg.Metrics.Listen != "" {
		srv, m, err := startMetrics(cfg.Metrics.Listen)
		if err != nil {
			return &ComponentError{Component: "metrics", Action: "listen", Err: err}
		}
		app.server, app.metrics = srv, m
		app.log.Info("metrics on http://%s/metrics", srv.Addr())
	}

	// 3. Editor
	content, err := loadContent(app.opts.ContentPath)
	if err != nil {
		return err
	}
	sanitizer, err := sanitize.NewPolicy(cfg.Paste.Policy, cfg.Editor.SpoilerClass)
	if err != nil {
		return &ComponentError{Component: "paste", Err: err}
	}
	app.styles = surface.NewStylesheet()
	app.styles.Apply(cfg.Styles)
	app.editor, err = editor.New(editor.Options{
		Content:     content,
		Scheduler:   app.loop,
		Surface:     app.styles,
		Logger:      app.log,
		Metrics:     app.metrics,
		Sanitizer:   sanitizer,
		MaxHistory:  cfg.History.MaxEntries,
		Throttle:    cfg.History.Throttle.Std(),
		Placeholder: cfg.Editor.Placeholder,
		OnChange:    app.changed,

		// Terminals deliver Ctrl but never Cmd.
		CtrlKey: key.ModCtrl,
	})
	if err != nil {
		return &ComponentError{Component: "editor", Err: err}
	}

	// 4. Features, built-in then scripted
	opts := feature.Options{SpoilerClass: cfg.Editor.SpoilerClass}
	for _, name := range cfg.Editor.Features {
		f, err := feature.New(name, opts)
		if err != nil {
			return &ComponentError{Component: "feature", Action: name, Err: err}
		}
		if err := app.editor.Mount(f); err != nil {
			return &ComponentError{Component: "feature", Action: name, Err: err}
		}
	}
	app.loadPlugins()

	// 5. Config watcher
	if app.opts.ConfigPath != "" {
		w, err := config.NewWatcher(app.opts.ConfigPath)
		if err != nil {
			// Non-fatal, the editor works without live reload
			app.log.Warn("config watcher: %v", err)
		} else {
			w.OnChange(func(cfg config.Config) { app.loop.Post(func() { app.applyConfig(cfg) }) })
			w.OnError(func(err error) { app.loop.Post(func() { app.configFailed(err) }) })
			app.watcher = w
		}
	}

	if app.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return &ComponentError{Component: "screen", Action: "create", Err: err}
		}
		app.screen = s
	}
	app.view = renderer.NewView(app.screen, toolbarTop(cfg))
	return nil
}

// openLog directs logging to log.file. Without one, output is discarded
// because the screen owns the terminal.
func (app *Application) openLog() error {
	level, _ := logging.ParseLevel(app.cfg.Log.Level)
	out := io.Discard
	if path := app.cfg.Log.File; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return &ComponentError{Component: "log", Action: "open", Err: err}
		}
		app.logFile, out = f, f
	}
	app.log = logging.New(logging.Config{Level: level, Output: out, Prefix: "richedit"})
	logging.SetLogger(app.log)
	return nil
}

// loadPlugins mounts the Lua features. A script that fails to load or
// mount is logged and skipped.
func (app *Application) loadPlugins() {
	log := app.log.WithComponent("lua")
	app.plugins = plugin.NewManager()
	app.plugins.Subscribe(func(ev plugin.ManagerEvent) {
		if ev.Error != nil {
			log.Warn("%s %s: %v", ev.Type, ev.Path, ev.Error)
			return
		}
		log.Info("%s %s (%s)", ev.Type, ev.Plugin, ev.Path)
	})
	features, err := app.plugins.LoadAll(app.cfg.Plugins.Lua)
	if err != nil {
		app.setStatus("%d of %d plugins failed, see log", len(app.cfg.Plugins.Lua)-len(features), len(app.cfg.Plugins.Lua))
	}
	for _, f := range features {
		if err := app.editor.Mount(f); err != nil {
			log.Warn("mount %s: %v", f.Name(), err)
			_ = app.plugins.Unload(f.Name())
		}
	}
}

// applyConfig takes over the settings that can change while running.
func (app *Application) applyConfig(cfg config.Config) {
	app.cfg.Styles = cfg.Styles
	app.styles.Apply(cfg.Styles)
	if level, ok := logging.ParseLevel(cfg.Log.Level); ok && app.opts.LogLevel == "" {
		app.log.SetLevel(level)
	}
	app.cfg.Editor.Placeholder = cfg.Editor.Placeholder
	app.editor.SetPlaceholder(cfg.Editor.Placeholder)
	app.cfg.Editor.ToolbarPosition = cfg.Editor.ToolbarPosition
	app.view.SetToolbarTop(toolbarTop(cfg))
	app.log.Info("configuration reloaded")
	app.setStatus("configuration reloaded")
	app.scheduleDraw()
}

func (app *Application) configFailed(err error) {
	app.log.Warn("config reload: %v", err)
	app.setStatus("config: %v", err)
	app.scheduleDraw()
}

// changed is the editor's change handler.
func (app *Application) changed(ch editor.Change) {
	app.dirty = true
	app.quitArmed = false
	app.log.Debug("content changed (%d bytes)", len(ch.HTML))
	app.scheduleDraw()
}

func (app *Application) setStatus(format string, args ...any) {
	app.status = fmt.Sprintf(format, args...)
}

// statusLine is the bottom row: file name, modified flag, caret path and
// the last message.
func (app *Application) statusLine() string {
	name := "[untitled]"
	if app.opts.ContentPath != "" {
		name = filepath.Base(app.opts.ContentPath)
	}
	if app.dirty {
		name += " *"
	}
	line := name
	if p := app.editor.Path(); p != "" {
		line += "  " + p
	}
	if app.status != "" {
		line += "  " + app.status
	}
	return line
}

// Config returns the active configuration.
func (app *Application) Config() config.Config { return app.cfg }

// Editor returns the controller.
func (app *Application) Editor() *editor.Controller { return app.editor }

// Plugins returns the Lua feature manager.
func (app *Application) Plugins() *plugin.Manager { return app.plugins }

// Status returns the last status message.
func (app *Application) Status() string { return app.status }

// Modified reports whether the content changed since the last save.
func (app *Application) Modified() bool { return app.dirty }
