package editor

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/format"
	"github.com/dshills/richedit/internal/engine/history"
	"github.com/dshills/richedit/internal/engine/line"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/event/loop"
	"github.com/dshills/richedit/internal/feature"
	"github.com/dshills/richedit/internal/input/key"
	"github.com/dshills/richedit/internal/input/keymap"
	"github.com/dshills/richedit/internal/logging"
	"github.com/dshills/richedit/internal/metrics"
	"github.com/dshills/richedit/internal/platform"
	"github.com/dshills/richedit/internal/sanitize"
	"github.com/dshills/richedit/internal/surface"
)

// Options configures a Controller.
type Options struct {
	// Content is the initial markup.
	Content string

	// Scheduler runs deferred work and the checkpoint throttle. Required.
	Scheduler loop.Scheduler

	// Surface answers layout and style queries.
	// Defaults to surface.NewStylesheet().
	Surface surface.Surface

	// Logger defaults to logging.GetLogger().
	Logger *logging.Logger

	// Metrics may be nil.
	Metrics *metrics.Metrics

	// Sanitizer filters pasted markup. When nil, pastes are plain text.
	Sanitizer sanitize.Sanitizer

	// MaxHistory bounds the undo stack (history.DefaultMaxEntries).
	MaxHistory int

	// Throttle is the checkpoint capture window (history.DefaultThrottle).
	Throttle time.Duration

	// CtrlKey is the shortcut modifier. Defaults to platform.CtrlKey().
	CtrlKey key.Modifier

	// Placeholder is shown by hosts while the content is empty.
	Placeholder string

	// Disabled starts the editor in disabled mode.
	Disabled bool

	// OnChange is called after every committed change.
	OnChange func(Change)

	// OnFocus and OnBlur are called when focus enters or leaves the
	// editor as a whole (content plus toolbar).
	OnFocus func()
	OnBlur  func()
}

// FocusTarget is where focus moved to.
type FocusTarget int

const (
	// FocusContent is the editable content.
	FocusContent FocusTarget = iota
	// FocusToolbar is editor chrome outside the content, such as toolbar
	// buttons. Focus stays inside the editor.
	FocusToolbar
	// FocusOutside is anything outside the editor.
	FocusOutside
)

// Clip is clipboard content offered to HandlePaste.
type Clip struct {
	Text string
	HTML string
}

// FeatureState is a feature's toolbar state.
type FeatureState struct {
	Name     string
	Active   bool
	Disabled bool
}

// Controller owns the content tree and live selection of one editor.
type Controller struct {
	id        uuid.UUID
	root      *dom.Node
	sel       *selection.Selection
	surf      surface.Surface
	fmt       *format.Formatter
	sched     loop.Scheduler
	log       *logging.Logger
	metrics   *metrics.Metrics
	sanitizer sanitize.Sanitizer
	history   *history.Store
	throttle  *history.Throttle
	keymap    *keymap.Keymap
	features  *feature.Registry
	ctrl      key.Modifier

	placeholder string
	onChange    func(Change)
	onFocus     func()
	onBlur      func()

	focused     bool
	focusInside bool
	disabled    bool
	closed      bool
	path        string

	// Shift+arrow selection state.
	anchor, head selection.Position
	extended     selection.Range
	extending    bool
}

// New creates a controller holding opts.Content. The content is the first
// history entry.
func New(opts Options) (*Controller, error) {
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	root, err := dom.Parse(dom.TagDiv, opts.Content)
	if err != nil {
		return nil, newOpError(OpSetContent, err)
	}

	c := &Controller{
		id:          uuid.New(),
		root:        root,
		sel:         selection.New(),
		surf:        opts.Surface,
		sched:       opts.Scheduler,
		log:         opts.Logger,
		metrics:     opts.Metrics,
		sanitizer:   opts.Sanitizer,
		history:     history.NewStore(opts.MaxHistory),
		keymap:      keymap.New(),
		features:    feature.NewRegistry(),
		ctrl:        opts.CtrlKey,
		placeholder: opts.Placeholder,
		onChange:    opts.OnChange,
		onFocus:     opts.OnFocus,
		onBlur:      opts.OnBlur,
		disabled:    opts.Disabled,
	}
	if c.surf == nil {
		c.surf = surface.NewStylesheet()
	}
	if c.log == nil {
		c.log = logging.GetLogger()
	}
	c.log = c.log.WithComponent("editor").WithField("editor", c.id.String()[:8])
	if c.ctrl == 0 {
		c.ctrl = platform.CtrlKey()
	}
	c.fmt = format.New(root, c.surf, c.sel)
	c.throttle = history.NewThrottle(c.sched, opts.Throttle, c.capture)
	c.sel.OnChange(c.selectionChanged)
	c.bindHistoryKeys()
	c.normalize()
	c.seed()
	return c, nil
}

func (c *Controller) bindHistoryKeys() {
	undo := func(key.Event) bool { return c.Undo() == nil }
	redo := func(key.Event) bool { return c.Redo() == nil }
	for _, mod := range []key.Modifier{key.ModCtrl, key.ModMeta} {
		_ = c.keymap.Bind(c.id, mod.String()+"+z", "Undo", undo)
		_ = c.keymap.Bind(c.id, mod.String()+"+Shift+z", "Redo", redo)
	}
}

// normalize removes the inline styles native formatting leaves behind.
// Content entering the history goes through it first, so a restored
// checkpoint commits to the same markup it was saved as.
func (c *Controller) normalize() {
	dom.StripAttr(c.root, "style")
}

// seed resets the history to the current content.
func (c *Controller) seed() {
	c.throttle.Cancel()
	c.history.Clear()
	c.history.Save(history.ContentCheckpoint(dom.Render(c.root), c.sched.Now()))
	c.metrics.SetHistoryDepth(c.history.Len())
}

// ID identifies the controller in logs.
func (c *Controller) ID() uuid.UUID { return c.id }

// Root implements feature.Host.
func (c *Controller) Root() *dom.Node { return c.root }

// Selection implements feature.Host.
func (c *Controller) Selection() *selection.Selection { return c.sel }

// Surface implements feature.Host.
func (c *Controller) Surface() surface.Surface { return c.surf }

// Formatter implements feature.Host.
func (c *Controller) Formatter() *format.Formatter { return c.fmt }

// Scheduler implements feature.Host.
func (c *Controller) Scheduler() loop.Scheduler { return c.sched }

// Focused implements feature.Host.
func (c *Controller) Focused() bool { return c.focused }

// Disabled implements feature.Host.
func (c *Controller) Disabled() bool { return c.disabled }

// CtrlKey implements feature.Host.
func (c *Controller) CtrlKey() key.Modifier { return c.ctrl }

// Logger implements feature.Host.
func (c *Controller) Logger() *logging.Logger { return c.log }

// Keymap returns the shortcut bindings.
func (c *Controller) Keymap() *keymap.Keymap { return c.keymap }

// Content returns the serialized markup.
func (c *Controller) Content() string { return dom.Render(c.root) }

// Text returns the plain text form of the content.
func (c *Controller) Text() string { return dom.InnerText(c.surf, c.root) }

// Placeholder returns the placeholder and whether it should be shown.
func (c *Controller) Placeholder() (string, bool) {
	return c.placeholder, c.placeholder != "" && c.empty()
}

// empty reports whether the content is blank: no children, or only the
// break an emptied block leaves behind.
func (c *Controller) empty() bool {
	switch c.root.ChildCount() {
	case 0:
		return true
	case 1:
		return line.IsBogusBR(c.surf, c.root.FirstChild())
	}
	return false
}

// SetPlaceholder replaces the placeholder text.
func (c *Controller) SetPlaceholder(s string) { c.placeholder = s }

// CanUndo reports whether Undo would succeed.
func (c *Controller) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (c *Controller) CanRedo() bool { return c.history.CanRedo() }

// liveRange returns the selection when both ends lie inside the content.
func (c *Controller) liveRange() (selection.Range, bool) {
	r, ok := c.sel.Range()
	if !ok || !r.Valid() || !c.root.Contains(r.Start.Container) || !c.root.Contains(r.End.Container) {
		return selection.Range{}, false
	}
	return r, true
}

// Commit runs the change handler. Every mutation ends here.
func (c *Controller) Commit() {
	if c.closed {
		return
	}
	c.normalize()

	change := Change{Text: c.Text(), HTML: c.Content()}
	c.log.Debug("change committed (%d bytes)", len(change.HTML))
	c.metrics.RecordChange()
	if c.onChange != nil {
		c.onChange(change)
	}
	c.HandleFocus(FocusContent)
	c.throttle.Call()
	c.syncPath()
}

func (c *Controller) capture() {
	if c.closed {
		return
	}
	now := c.sched.Now()
	cp := history.ContentCheckpoint(dom.Render(c.root), now)
	if r, ok := c.sel.Range(); ok {
		snap, err := history.NewCheckpoint(c.root, r, now)
		if err != nil {
			c.log.Warn("checkpoint capture failed: %v", err)
			c.metrics.RecordCaptureFailure()
		} else {
			cp = snap
		}
	}
	c.metrics.RecordCheckpoint(c.history.Save(cp))
	c.metrics.SetHistoryDepth(c.history.Len())
}

// Undo restores the previous checkpoint. A capture still owed by the
// throttle is taken first so the newest edit is not lost.
func (c *Controller) Undo() error {
	return c.step(OpUndo, c.history.Undo)
}

// Redo restores the most recently undone checkpoint.
func (c *Controller) Redo() error {
	return c.step(OpRedo, c.history.Redo)
}

func (c *Controller) step(op string, next func() (history.Checkpoint, error)) error {
	if c.closed {
		return newOpError(op, ErrClosed)
	}
	c.throttle.Flush()
	cp, err := next()
	if err != nil {
		c.metrics.RecordHistory(op, metrics.ResultEmpty)
		return newOpError(op, err)
	}
	if err := c.restore(cp); err != nil {
		c.metrics.RecordHistory(op, metrics.ResultError)
		return newOpError(op, err)
	}
	c.metrics.RecordHistory(op, metrics.ResultOK)
	c.metrics.SetHistoryDepth(c.history.Len())
	return nil
}

// restore puts cp into the live tree. Snapshots bring their selection
// along; markup-only checkpoints leave the caret at the end.
func (c *Controller) restore(cp history.Checkpoint) error {
	c.extending = false
	if cp.HasSnapshot() {
		node, r, err := cp.Restore()
		if err != nil {
			return err
		}
		r = selection.Rebase(r, node, c.root)
		dom.ReplaceChildren(c.root, node)
		c.sel.Replace(r)
	} else {
		if err := dom.SetInnerMarkup(c.root, cp.Content); err != nil {
			return err
		}
		c.selectEnd()
	}
	c.Commit()
	return nil
}

func (c *Controller) selectEnd() {
	if !line.SelectEndOfNode(c.sel, c.root) {
		c.sel.Replace(selection.Caret(c.root, c.root.ChildCount()))
	}
}

// SetContent replaces the content from outside. History is reset to the
// new content. The host is not notified. When the selection was inside
// the editor the caret moves to the end on the next tick.
func (c *Controller) SetContent(markup string) error {
	if c.closed {
		return newOpError(OpSetContent, ErrClosed)
	}
	if markup == c.Content() {
		return nil
	}
	wasInside := c.sel.IsInside(c.root)
	if err := dom.SetInnerMarkup(c.root, markup); err != nil {
		return newOpError(OpSetContent, err)
	}
	c.extending = false
	c.normalize()
	c.seed()
	if wasInside {
		c.sched.Defer(func() {
			if c.closed {
				return
			}
			c.selectEnd()
		})
	}
	return nil
}

// HandleKey processes a key press. It returns true when the editor
// consumed the key.
func (c *Controller) HandleKey(ev key.Event) bool {
	if c.closed || c.disabled {
		return false
	}
	if ev.Modifiers.Has(key.ModCtrl) || ev.Modifiers.Has(key.ModMeta) {
		if !c.keymap.Dispatch(ev) {
			return false
		}
		c.metrics.RecordShortcut()
		return true
	}

	shift := ev.Modifiers.Has(key.ModShift)
	switch {
	case ev.Key == key.KeyEnter:
		return c.handleEnter(shift)
	case ev.Key == key.KeyBackspace:
		if !c.deleteBackward() {
			return false
		}
		c.Commit()
		return true
	case ev.Key == key.KeyLeft:
		return c.MoveCaret(-1, shift)
	case ev.Key == key.KeyRight:
		return c.MoveCaret(1, shift)
	case ev.IsChar():
		if _, ok := c.liveRange(); !ok {
			return false
		}
		if err := c.sel.InsertText(string(ev.Rune)); err != nil {
			return false
		}
		c.extending = false
		c.Commit()
		return true
	}
	return false
}

func (c *Controller) handleEnter(shift bool) bool {
	if _, ok := c.liveRange(); !ok {
		return false
	}
	if !shift && c.specialEnter() {
		c.Commit()
		return true
	}
	if err := line.InsertNewLine(c.surf, c.sel, true); err != nil {
		c.log.Warn("insert newline: %v", err)
		return false
	}
	c.Commit()
	return true
}

// specialEnter offers the caret container and each of its ancestors below
// the root to every feature, in mount order.
func (c *Controller) specialEnter() bool {
	r, _ := c.liveRange()
	entries := c.features.Entries()
	for n := r.Start.Container; n != nil && n != c.root; n = n.Parent() {
		for _, e := range entries {
			if h, ok := e.Feature.(feature.EnterHandler); ok && h.OnEnter(n) {
				return true
			}
		}
	}
	return false
}

// HandlePaste inserts clip at the selection on the next tick, replacing
// selected content. Markup is only used when a sanitizer is configured.
func (c *Controller) HandlePaste(clip Clip) error {
	if c.closed {
		return newOpError(OpPaste, ErrClosed)
	}
	if c.disabled {
		return newOpError(OpPaste, ErrDisabled)
	}
	r, ok := c.liveRange()
	if !ok {
		return newOpError(OpPaste, selection.ErrNoSelection)
	}
	c.sched.Defer(func() {
		if c.closed {
			return
		}
		if _, ok := c.liveRange(); !ok && r.Valid() && c.root.Contains(r.Start.Container) && c.root.Contains(r.End.Container) {
			c.sel.Replace(r)
		}
		if err := c.paste(clip); err != nil {
			c.log.Warn("paste failed: %v", err)
			return
		}
		c.metrics.RecordPaste()
		c.Commit()
	})
	return nil
}

func (c *Controller) paste(clip Clip) error {
	if !c.sel.Collapsed() {
		if err := c.sel.DeleteContents(); err != nil {
			return err
		}
	}
	c.extending = false
	if c.sanitizer != nil && clip.HTML != "" {
		nodes, err := dom.ParseFragment(c.sanitizer.Sanitize(clip.HTML))
		if err != nil {
			return err
		}
		if len(nodes) == 0 {
			return nil
		}
		if err := c.sel.InsertNodes(nodes...); err != nil {
			return err
		}
		last := nodes[len(nodes)-1]
		c.sel.Replace(selection.Caret(last.Parent(), last.Index()+1))
		return nil
	}
	for i, ln := range strings.Split(sanitize.PlainText(clip.Text), "\n") {
		if i > 0 {
			if err := line.InsertNewLine(c.surf, c.sel, true); err != nil {
				return err
			}
		}
		if ln == "" {
			continue
		}
		if err := c.sel.InsertText(ln); err != nil {
			return err
		}
	}
	return nil
}

// HandleCut removes the selected content and returns its text.
func (c *Controller) HandleCut() (string, error) {
	if c.closed {
		return "", newOpError(OpCut, ErrClosed)
	}
	if c.disabled {
		return "", newOpError(OpCut, ErrDisabled)
	}
	r, ok := c.liveRange()
	if !ok {
		return "", newOpError(OpCut, selection.ErrNoSelection)
	}
	if r.Collapsed() {
		return "", nil
	}
	text := selectedText(r)
	if err := c.sel.DeleteContents(); err != nil {
		return "", newOpError(OpCut, err)
	}
	c.extending = false
	c.Commit()
	return text, nil
}

// SelectedText returns the text of the selection.
func (c *Controller) SelectedText() string {
	r, ok := c.liveRange()
	if !ok {
		return ""
	}
	return selectedText(r)
}

func selectedText(r selection.Range) string {
	var b strings.Builder
	ca := r.CommonAncestor()
	if ca == nil {
		return ""
	}
	dom.Walk(ca, func(n *dom.Node) {
		switch {
		case n.IsText():
			start, end := 0, n.Len()
			if n == r.Start.Container {
				start = r.Start.Offset
			} else if selection.ComparePoints(selection.Position{Container: n}, r.Start) < 0 {
				return
			}
			if n == r.End.Container {
				end = r.End.Offset
			} else if selection.ComparePoints(selection.Position{Container: n, Offset: end}, r.End) > 0 {
				return
			}
			if start < end {
				b.WriteString(n.Text()[start:end])
			}
		case n.Is(dom.TagBR) && n.Parent() != nil:
			before := selection.Position{Container: n.Parent(), Offset: n.Index()}
			after := selection.Position{Container: n.Parent(), Offset: n.Index() + 1}
			if selection.ComparePoints(before, r.Start) >= 0 && selection.ComparePoints(after, r.End) <= 0 {
				b.WriteByte('\n')
			}
		}
	})
	return b.String()
}

// HandleFocus records that focus moved to target. The host's OnFocus and
// OnBlur fire only when focus enters or leaves the editor as a whole.
func (c *Controller) HandleFocus(target FocusTarget) {
	if c.closed {
		return
	}
	wasFocused := c.focused
	c.focused = target == FocusContent
	if c.focused != wasFocused {
		for _, e := range c.features.Entries() {
			if h, ok := e.Feature.(feature.FocusHandler); ok {
				if c.focused {
					h.OnFocus()
				} else {
					h.OnBlur()
				}
			}
		}
		if !c.focused {
			c.selectionChanged()
		}
	}

	inside := target != FocusOutside
	if inside == c.focusInside {
		return
	}
	c.focusInside = inside
	switch {
	case inside && c.onFocus != nil:
		c.onFocus()
	case !inside && c.onBlur != nil:
		c.onBlur()
	}
}

// HandleBlur records that focus left the editor.
func (c *Controller) HandleBlur() { c.HandleFocus(FocusOutside) }

// FocusInside reports whether focus is anywhere in the editor.
func (c *Controller) FocusInside() bool { return c.focusInside }

// SetDisabled turns disabled mode on or off. Features are asked to
// resynchronize their state.
func (c *Controller) SetDisabled(disabled bool) {
	if c.disabled == disabled {
		return
	}
	c.disabled = disabled
	c.selectionChanged()
}

func (c *Controller) selectionChanged() {
	if c.closed {
		return
	}
	for _, e := range c.features.Entries() {
		if h, ok := e.Feature.(feature.SelectionChangeHandler); ok {
			h.OnSelectionChange()
		}
	}
	c.syncPath()
}

// syncPath notifies path handlers when the tags above the caret change.
func (c *Controller) syncPath() {
	var tags []string
	if r, ok := c.liveRange(); ok {
		for n := r.Start.Container; n != nil && n != c.root; n = n.Parent() {
			if n.IsElement() {
				tags = append(tags, n.Tag())
			}
		}
	}
	slices.Reverse(tags)
	path := strings.Join(tags, ">")
	if path == c.path {
		return
	}
	c.path = path
	for _, e := range c.features.Entries() {
		if h, ok := e.Feature.(feature.PathChangeHandler); ok {
			h.OnPathChange()
		}
	}
}

// Path returns the tags between the root and the caret, outermost first,
// joined by ">".
func (c *Controller) Path() string { return c.path }

// Mount adds f after the already mounted features and binds its
// shortcuts. Nothing is left registered when any step fails.
func (c *Controller) Mount(f feature.Feature) error {
	if c.closed {
		return &OperationError{Op: OpMount, Target: f.Name(), Err: ErrClosed}
	}
	id, err := c.features.Add(f)
	if err != nil {
		return &OperationError{Op: OpMount, Target: f.Name(), Err: err}
	}
	fail := func(err error) error {
		c.keymap.Unbind(id)
		_, _ = c.features.Remove(f.Name())
		return &OperationError{Op: OpMount, Target: f.Name(), Err: err}
	}
	m, isMounter := f.(feature.Mounter)
	if isMounter {
		if err := m.Mount(c); err != nil {
			return fail(err)
		}
	}
	if p, ok := f.(feature.ShortcutProvider); ok {
		for _, sc := range p.Shortcuts() {
			if err := c.keymap.Bind(id, sc.Keys, sc.Description, c.runShortcut(f.Name(), sc)); err != nil {
				if isMounter {
					m.Unmount()
				}
				return fail(err)
			}
		}
	}
	if h, ok := f.(feature.ShortcutHandler); ok {
		c.keymap.BindAll(id, f.Name(), func(ev key.Event) bool {
			if !h.OnShortcut(ev) {
				return false
			}
			c.metrics.RecordCommand(f.Name())
			c.Commit()
			return true
		})
	}
	c.log.Debug("mounted feature %s", f.Name())
	return nil
}

func (c *Controller) runShortcut(name string, sc feature.Shortcut) keymap.Handler {
	return func(key.Event) bool {
		if err := sc.Run(); err != nil {
			c.log.Debug("shortcut %s: %v", sc.Keys, err)
			return false
		}
		c.metrics.RecordCommand(name)
		c.Commit()
		return true
	}
}

// Unmount removes the named feature and its shortcuts.
func (c *Controller) Unmount(name string) error {
	e, err := c.features.Remove(name)
	if err != nil {
		return &OperationError{Op: OpUnmount, Target: name, Err: err}
	}
	c.release(e)
	return nil
}

func (c *Controller) release(e feature.Entry) {
	c.keymap.Unbind(e.ID)
	if m, ok := e.Feature.(feature.Mounter); ok {
		m.Unmount()
	}
}

// Features returns the mounted feature names in mount order.
func (c *Controller) Features() []string { return c.features.Names() }

// Exec runs the named feature's command, as a toolbar button would.
func (c *Controller) Exec(name string) error {
	if c.closed {
		return &OperationError{Op: OpExec, Target: name, Err: ErrClosed}
	}
	if c.disabled {
		return &OperationError{Op: OpExec, Target: name, Err: ErrDisabled}
	}
	f, ok := c.features.Get(name)
	if !ok {
		return &OperationError{Op: OpExec, Target: name, Err: feature.ErrUnknownFeature}
	}
	ex, ok := f.(feature.Executor)
	if !ok {
		return &OperationError{Op: OpExec, Target: name, Err: ErrNotExecutable}
	}
	if err := ex.Exec(); err != nil {
		return &OperationError{Op: OpExec, Target: name, Err: err}
	}
	c.metrics.RecordCommand(name)
	return nil
}

// States returns the current state of every mounted feature.
func (c *Controller) States() []FeatureState {
	entries := c.features.Entries()
	out := make([]FeatureState, 0, len(entries))
	for _, e := range entries {
		st := FeatureState{Name: e.Feature.Name(), Disabled: c.disabled}
		if a, ok := e.Feature.(feature.ActiveChecker); ok {
			st.Active = a.IsActive()
		}
		if d, ok := e.Feature.(feature.DisabledChecker); ok && !st.Disabled {
			st.Disabled = d.IsDisabled()
		}
		out = append(out, st)
	}
	return out
}

// Close tears the controller down: the owed capture is dropped, deferred
// work becomes a no-op and every feature is unmounted.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.throttle.Cancel()
	c.sel.OnChange(nil)
	entries := c.features.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		_, _ = c.features.Remove(entries[i].Feature.Name())
		c.release(entries[i])
	}
	c.log.Debug("closed")
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool { return c.closed }
