package lua

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/feature"
	lua "github.com/yuin/gopher-lua"
)

// Feature is an editor feature defined by a Lua script. It behaves like
// the built-in toggles: exec runs from the toolbar or its shortcut and the
// active and disabled predicates drive the toolbar state.
type Feature struct {
	*feature.Toggle

	state  *State
	source string

	// host is set only while a callback runs.
	host feature.Host
}

// LoadFile loads the feature script at path.
func LoadFile(path string, opts ...StateOption) (*Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feature script: %w", err)
	}
	return Load(filepath.Base(path), string(data), opts...)
}

// Load runs source, named chunk in error messages, and builds the feature
// described by the table it returns.
func Load(chunk, source string, opts ...StateOption) (*Feature, error) {
	f := &Feature{state: NewState(opts...), source: chunk}
	a := &api{host: func() feature.Host { return f.host }}
	f.state.RegisterModule(ModuleName, a.funcs())

	ret, err := f.state.Eval(chunk, source)
	if err != nil {
		_ = f.state.Close()
		return nil, fmt.Errorf("%s: %w", chunk, err)
	}
	if err := f.define(ret); err != nil {
		_ = f.state.Close()
		return nil, fmt.Errorf("%s: %w", chunk, err)
	}
	return f, nil
}

func (f *Feature) define(v lua.LValue) error {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return fmt.Errorf("%w: script returned %s, want table", ErrInvalidFeature, v.Type())
	}
	name, ok := tbl.RawGetString("name").(lua.LString)
	if !ok || strings.TrimSpace(string(name)) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidFeature)
	}
	exec, ok := tbl.RawGetString("exec").(*lua.LFunction)
	if !ok {
		return fmt.Errorf("%w: exec function is required", ErrInvalidFeature)
	}

	var opts []feature.ToggleOption
	if fn, err := optFunc(tbl, "active"); err != nil {
		return err
	} else if fn != nil {
		opts = append(opts, feature.WithActive(f.predicate("active", fn)))
	}
	if fn, err := optFunc(tbl, "disabled"); err != nil {
		return err
	} else if fn != nil {
		opts = append(opts, feature.WithDisabled(f.predicate("disabled", fn)))
	}
	if fn, err := optFunc(tbl, "enter"); err != nil {
		return err
	} else if fn != nil {
		opts = append(opts, feature.WithEnter(f.enter(fn)))
	}
	if sc, ok := tbl.RawGetString("shortcut").(lua.LString); ok && sc != "" {
		desc := string(name)
		if d, ok := tbl.RawGetString("description").(lua.LString); ok && d != "" {
			desc = string(d)
		}
		opts = append(opts, feature.WithShortcut(string(sc), desc))
	}

	f.Toggle = feature.NewToggle(string(name), f.command(exec), opts...)
	return nil
}

func optFunc(tbl *lua.LTable, field string) (*lua.LFunction, error) {
	switch v := tbl.RawGetString(field).(type) {
	case *lua.LFunction:
		return v, nil
	case *lua.LNilType:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a function, got %s", ErrInvalidFeature, field, v.Type())
	}
}

// call runs fn with h available to the rte module.
func (f *Feature) call(h feature.Host, fn *lua.LFunction, args ...lua.LValue) (lua.LValue, error) {
	prev := f.host
	f.host = h
	defer func() { f.host = prev }()
	return f.state.CallFunc(fn, args...)
}

func (f *Feature) command(fn *lua.LFunction) feature.Command {
	return func(h feature.Host) error {
		_, err := f.call(h, fn)
		return err
	}
}

func (f *Feature) predicate(field string, fn *lua.LFunction) feature.Predicate {
	return func(h feature.Host) bool {
		v, err := f.call(h, fn)
		if err != nil {
			h.Logger().Debug("%s %s: %v", f.Name(), field, err)
			return false
		}
		return lua.LVAsBool(v)
	}
}

func (f *Feature) enter(fn *lua.LFunction) func(h feature.Host, n *dom.Node) bool {
	return func(h feature.Host, n *dom.Node) bool {
		v, err := f.call(h, fn, lua.LString(n.Tag()))
		if err != nil {
			h.Logger().Warn("%s enter: %v", f.Name(), err)
			return false
		}
		return lua.LVAsBool(v)
	}
}

// Source returns the chunk name the feature was loaded from.
func (f *Feature) Source() string { return f.source }

// Close releases the Lua state. The feature must be unmounted first.
func (f *Feature) Close() error {
	return f.state.Close()
}
