package app

import (
	"context"
	"errors"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richedit/internal/config"
	"github.com/dshills/richedit/internal/editor"
	"github.com/dshills/richedit/internal/engine/history"
	"github.com/dshills/richedit/internal/engine/line"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/renderer"
	"github.com/dshills/richedit/internal/sanitize"
)

// Run initializes the screen and processes events until the user quits
// or ctx is done. Every editor call happens on the loop goroutine.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.screen.Init(); err != nil {
		return &ComponentError{Component: "screen", Action: "init", Err: err}
	}
	defer app.screen.Fini()
	app.screen.EnablePaste()
	app.screen.EnableFocus()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	quit := false
	app.stop = func() {
		quit = true
		cancel()
	}

	app.loop.Post(func() {
		app.focus()
		app.draw()
	})
	go app.pollEvents(ctx)

	err := app.loop.Run(ctx)
	if quit {
		return nil
	}
	return err
}

// pollEvents forwards terminal events to the loop. PollEvent blocks, so
// this goroutine exits once Fini makes it return nil.
func (app *Application) pollEvents(ctx context.Context) {
	for {
		ev := app.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		app.loop.Post(func() { app.dispatch(ev) })
	}
}

// dispatch handles one event and schedules a redraw.
func (app *Application) dispatch(ev tcell.Event) {
	err := app.handleEvent(ev)
	switch {
	case errors.Is(err, ErrQuit):
		if app.stop != nil {
			app.stop()
		}
		return
	case err != nil:
		app.log.Debug("event: %v", err)
		app.setStatus("%v", err)
	}
	app.scheduleDraw()
}

// handleEvent routes a terminal event. Returns ErrQuit if the
// application should exit.
func (app *Application) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
	case *tcell.EventPaste:
		return app.handlePasteEvent(ev)
	case *tcell.EventFocus:
		if ev.Focused {
			app.focus()
		} else {
			app.editor.HandleBlur()
		}
	case *tcell.EventKey:
		if app.inPaste {
			app.collectPaste(ev)
			return nil
		}
		return app.handleKey(ev)
	}
	return nil
}

// handleKey runs host commands and passes everything else to the editor.
func (app *Application) handleKey(ev *tcell.EventKey) error {
	if ev.Key() != tcell.KeyCtrlQ {
		app.quitArmed = false
	}
	if n := renderer.FunctionKey(ev); n > 0 {
		return app.execToolbar(n)
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return app.quit()
	case tcell.KeyCtrlS:
		return app.save()
	case tcell.KeyCtrlC:
		return app.copy()
	case tcell.KeyCtrlX:
		return app.cut()
	case tcell.KeyCtrlV:
		text, err := app.clipboard.ReadAll()
		if err != nil {
			return err
		}
		return app.paste(text)
	case tcell.KeyCtrlY:
		// Terminals cannot report Ctrl+Shift+Z.
		if err := app.editor.Redo(); err != nil && !errors.Is(err, history.ErrNothingToRedo) {
			return err
		}
		return nil
	}

	k, ok := renderer.KeyEvent(ev)
	if !ok {
		return nil
	}
	app.editor.HandleKey(k)
	return nil
}

// execToolbar runs the feature behind function key n.
func (app *Application) execToolbar(n int) error {
	states := app.editor.States()
	if n > len(states) {
		return nil
	}
	return app.editor.Exec(states[n-1].Name)
}

func (app *Application) quit() error {
	if app.dirty && !app.quitArmed {
		app.quitArmed = true
		return ErrUnsavedChanges
	}
	return ErrQuit
}

func (app *Application) save() error {
	ch := editor.Change{Text: app.editor.Text(), HTML: app.editor.Content()}
	if err := saveContent(app.opts.ContentPath, ch); err != nil {
		return err
	}
	app.dirty = false
	app.log.Info("saved %s", app.opts.ContentPath)
	app.setStatus("saved")
	return nil
}

func (app *Application) copy() error {
	text := app.editor.SelectedText()
	if text == "" {
		return nil
	}
	return app.clipboard.WriteAll(text)
}

func (app *Application) cut() error {
	text, err := app.editor.HandleCut()
	if err != nil || text == "" {
		return err
	}
	return app.clipboard.WriteAll(text)
}

// paste hands text to the editor. Text that looks like markup is also
// offered as markup, which the editor only uses with a sanitizing policy.
func (app *Application) paste(text string) error {
	if text == "" {
		return nil
	}
	clip := editor.Clip{Text: text}
	if app.cfg.Paste.Policy != sanitize.PolicyPlain && looksLikeMarkup(text) {
		clip.HTML = text
	}
	return app.editor.HandlePaste(clip)
}

func looksLikeMarkup(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">")
}

// handlePasteEvent brackets a terminal paste. The keys in between are
// collected and pasted as one clip.
func (app *Application) handlePasteEvent(ev *tcell.EventPaste) error {
	if ev.Start() {
		app.inPaste = true
		app.pasting = app.pasting[:0]
		return nil
	}
	if !app.inPaste {
		return nil
	}
	app.inPaste = false
	text := string(app.pasting)
	app.pasting = nil
	return app.paste(text)
}

func (app *Application) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		app.pasting = append(app.pasting, ev.Rune())
	case tcell.KeyEnter:
		app.pasting = append(app.pasting, '\n')
	case tcell.KeyTab:
		app.pasting = append(app.pasting, '\t')
	}
}

// focus moves focus into the content and puts the caret at the end when
// there is no selection yet.
func (app *Application) focus() {
	sel := app.editor.Selection()
	if _, ok := sel.Range(); !ok {
		root := app.editor.Root()
		if !line.SelectEndOfNode(sel, root) {
			sel.Replace(selection.Caret(root, root.ChildCount()))
		}
	}
	app.editor.HandleFocus(editor.FocusContent)
}

// scheduleDraw redraws once the current tick's work is done.
func (app *Application) scheduleDraw() {
	if app.drawQueued {
		return
	}
	app.drawQueued = true
	app.loop.Defer(func() {
		app.drawQueued = false
		app.draw()
	})
}

func (app *Application) draw() {
	width, _ := app.view.ContentSize()
	placeholder, show := app.editor.Placeholder()
	if !show {
		placeholder = ""
	}
	frame := renderer.Layout(app.editor.Root(), app.editor.Selection(), renderer.Options{
		Surface:      app.styles,
		Width:        width,
		SpoilerClass: app.cfg.Editor.SpoilerClass,
		Placeholder:  placeholder,
	})
	app.view.Draw(frame, renderer.Toolbar(app.editor.States()), app.statusLine())
}

// toolbarTop reports where the toolbar goes.
func toolbarTop(cfg config.Config) bool {
	return cfg.Editor.ToolbarPosition == config.ToolbarTop
}
