package lua

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/richedit/internal/editor"
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/event/loop"
	"github.com/dshills/richedit/internal/input/key"
	"github.com/dshills/richedit/internal/logging"
)

const underline = `
return {
	name = "underline",
	shortcut = "u",
	description = "toggle underline",
	exec = function() rte.toggle_inline("u") end,
	active = function() return rte.has_format("u") end,
}
`

func newEditor(t *testing.T, markup string) (*editor.Controller, *loop.Loop) {
	t.Helper()
	l := loop.NewManual(time.Unix(0, 0))
	c, err := editor.New(editor.Options{
		Content:   markup,
		Scheduler: l,
		Logger:    logging.NullLogger,
		CtrlKey:   key.ModCtrl,
		Throttle:  time.Second,
	})
	if err != nil {
		t.Fatalf("editor.New: %v", err)
	}
	t.Cleanup(c.Close)
	return c, l
}

func selectText(t *testing.T, c *editor.Controller, s string, start, end int) {
	t.Helper()
	n := dom.FindChild(c.Root(), func(n *dom.Node) bool { return n.IsText() && n.Text() == s })
	if n == nil {
		t.Fatalf("no text node %q in %q", s, c.Content())
	}
	c.Selection().Replace(selection.NewRange(
		selection.Position{Container: n, Offset: start},
		selection.Position{Container: n, Offset: end},
	))
}

func load(t *testing.T, source string) *Feature {
	t.Helper()
	f, err := Load("test.lua", source)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestFeatureExec(t *testing.T) {
	c, l := newEditor(t, `<p>abcd</p>`)
	f := load(t, underline)
	if f.Name() != "underline" {
		t.Fatalf("Name() = %q, want underline", f.Name())
	}
	if err := c.Mount(f); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	l.Drain()
	selectText(t, c, "abcd", 1, 3)

	if err := c.Exec("underline"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got, want := c.Content(), `<p>a<u>bc</u>d</p>`; got != want {
		t.Errorf("Content = %q, want %q", got, want)
	}
	states := c.States()
	if len(states) != 1 || !states[0].Active {
		t.Errorf("states = %+v, want underline active", states)
	}

	// A second run removes the format
	if err := c.Exec("underline"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got, want := c.Content(), `<p>abcd</p>`; got != want {
		t.Errorf("Content = %q, want %q", got, want)
	}
}

func TestFeatureLink(t *testing.T) {
	c, l := newEditor(t, `<p>see example.com now</p>`)
	if err := c.Mount(load(t, `return { name = "link", exec = function() rte.link() end }`)); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	l.Drain()
	selectText(t, c, "see example.com now", 4, 15)

	if err := c.Exec("link"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got, want := c.Content(), `<p>see <a href="http://example.com">example.com</a> now</p>`; got != want {
		t.Errorf("Content = %q, want %q", got, want)
	}
}

func TestFeatureShortcut(t *testing.T) {
	c, l := newEditor(t, `<p>abcd</p>`)
	if err := c.Mount(load(t, underline)); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	l.Drain()
	selectText(t, c, "abcd", 0, 2)

	if !c.HandleKey(key.NewRuneEvent('u', key.ModCtrl)) {
		t.Fatal("Ctrl+u not handled")
	}
	if got, want := c.Content(), `<p><u>ab</u>cd</p>`; got != want {
		t.Errorf("Content = %q, want %q", got, want)
	}
}

func TestFeatureEnter(t *testing.T) {
	c, l := newEditor(t, `<p>ab</p>`)
	f := load(t, `
return {
	name = "bang",
	exec = function() end,
	enter = function(tag)
		if tag == "p" then
			rte.insert_text("!")
			return true
		end
		return false
	end,
}
`)
	if err := c.Mount(f); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	l.Drain()
	selectText(t, c, "ab", 1, 1)

	if !c.HandleKey(key.NewSpecialEvent(key.KeyEnter, 0)) {
		t.Fatal("Enter not handled")
	}
	if got, want := c.Content(), `<p>a!b</p>`; got != want {
		t.Errorf("Content = %q, want %q", got, want)
	}
}

func TestFeatureDisabledPredicate(t *testing.T) {
	c, l := newEditor(t, `<p>ab</p>`)
	if err := c.Mount(load(t, `
return {
	name = "never",
	exec = function() rte.insert_text("x") end,
	disabled = function() return true end,
}
`)); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	l.Drain()
	selectText(t, c, "ab", 1, 1)

	if err := c.Exec("never"); err == nil {
		t.Error("Exec of a disabled feature should fail")
	}
	if got := c.Content(); got != `<p>ab</p>` {
		t.Errorf("Content = %q, want unchanged", got)
	}
}

func TestFeatureExecError(t *testing.T) {
	c, l := newEditor(t, `<p>ab</p>`)
	if err := c.Mount(load(t, `return { name = "broken", exec = function() error("nope") end }`)); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	l.Drain()
	selectText(t, c, "ab", 1, 1)

	if err := c.Exec("broken"); err == nil {
		t.Error("Exec should report the script error")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   error
	}{
		{"not a table", `return 42`, ErrInvalidFeature},
		{"no name", `return { exec = function() end }`, ErrInvalidFeature},
		{"blank name", `return { name = " ", exec = function() end }`, ErrInvalidFeature},
		{"no exec", `return { name = "x" }`, ErrInvalidFeature},
		{"bad active", `return { name = "x", exec = function() end, active = true }`, ErrInvalidFeature},
		{"syntax", `return {`, nil},
		{"sandboxed", `return { name = os.getenv("HOME"), exec = function() end }`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load("bad.lua", tt.source)
			if err == nil {
				_ = f.Close()
				t.Fatal("Load should fail")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Load error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "underline.lua")
	if err := os.WriteFile(path, []byte(underline), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	defer f.Close()
	if f.Source() != "underline.lua" {
		t.Errorf("Source() = %q, want underline.lua", f.Source())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.lua")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want ErrNotExist", err)
	}
}
