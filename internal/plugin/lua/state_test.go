package lua

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/richedit/internal/feature"
	lua "github.com/yuin/gopher-lua"
)

func TestEval(t *testing.T) {
	s := NewState()
	defer s.Close()

	v, err := s.Eval("sum", "local n = 0 for i = 1, 4 do n = n + i end return n")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v != lua.LNumber(10) {
		t.Errorf("Eval() = %v, want 10", v)
	}

	v, err = s.Eval("none", "local x = 1")
	if err != nil || v != lua.LNil {
		t.Errorf("Eval() without return = %v, %v; want nil", v, err)
	}

	if _, err := s.Eval("syntax", "return ("); err == nil {
		t.Error("Eval() of invalid code should fail")
	}
	if _, err := s.Eval("runtime", "error('boom')"); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Eval() error = %v, want boom", err)
	}
}

func TestSandbox(t *testing.T) {
	s := NewState()
	defer s.Close()

	v, err := s.Eval("check", `
return io == nil and os == nil and debug == nil and package == nil
	and require == nil and load == nil and loadstring == nil
	and dofile == nil and loadfile == nil
	and string ~= nil and table ~= nil and math ~= nil`)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if v != lua.LTrue {
		t.Error("sandbox exposes unsafe globals or lacks safe libraries")
	}
}

func TestExecutionTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	_, err := s.Eval("loop", "while true do end")
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("Eval() error = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable
	if _, err := s.Eval("after", "return 1"); err != nil {
		t.Errorf("Eval() after timeout error = %v", err)
	}
}

func TestCallFunc(t *testing.T) {
	s := NewState()
	defer s.Close()

	v, err := s.Eval("fn", "return function(a, b) return a .. b end")
	if err != nil {
		t.Fatal(err)
	}
	fn, ok := v.(*lua.LFunction)
	if !ok {
		t.Fatalf("Eval() = %T, want function", v)
	}
	got, err := s.CallFunc(fn, lua.LString("rich"), lua.LString("edit"))
	if err != nil {
		t.Fatalf("CallFunc() error = %v", err)
	}
	if got != lua.LString("richedit") {
		t.Errorf("CallFunc() = %v, want richedit", got)
	}
}

func TestClosedState(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := s.Eval("x", "return 1"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Eval() error = %v, want ErrStateClosed", err)
	}
	if _, err := s.CallFunc(nil); !errors.Is(err, ErrStateClosed) {
		t.Errorf("CallFunc() error = %v, want ErrStateClosed", err)
	}
}

func TestModuleOutsideCallback(t *testing.T) {
	s := NewState()
	defer s.Close()
	a := &api{host: func() feature.Host { return nil }}
	s.RegisterModule(ModuleName, a.funcs())

	_, err := s.Eval("x", "return rte.focused()")
	if err == nil || !strings.Contains(err.Error(), ErrNoHost.Error()) {
		t.Errorf("Eval() error = %v, want %q", err, ErrNoHost)
	}
}
