package keymap

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/richedit/internal/input/key"
)

func TestBindAndDispatch(t *testing.T) {
	km := New()
	owner := uuid.New()
	calls := 0

	if err := km.Bind(owner, "Ctrl+B", "bold", func(key.Event) bool {
		calls++
		return true
	}); err != nil {
		t.Fatalf("Bind error = %v", err)
	}

	if !km.Dispatch(key.NewRuneEvent('b', key.ModCtrl)) {
		t.Error("Dispatch(Ctrl+b) = false, want true")
	}
	if km.Dispatch(key.NewRuneEvent('i', key.ModCtrl)) {
		t.Error("Dispatch(Ctrl+i) = true, want false")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBindInvalidSpec(t *testing.T) {
	km := New()
	err := km.Bind(uuid.New(), "Hyper+B", "", nil)
	if !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("Bind error = %v, want ErrInvalidSpec", err)
	}
	if km.Len() != 0 {
		t.Errorf("Len = %d, want 0", km.Len())
	}
}

func TestBindConflict(t *testing.T) {
	km := New()
	a, b := uuid.New(), uuid.New()

	if err := km.Bind(a, "Ctrl+Shift+Z", "", nil); err != nil {
		t.Fatalf("Bind error = %v", err)
	}
	err := km.Bind(b, "ctrl+shift+z", "", nil)
	if !errors.Is(err, ErrShortcutConflict) {
		t.Errorf("Bind error = %v, want ErrShortcutConflict", err)
	}
	if err := km.Bind(b, "Ctrl+Z", "", nil); err != nil {
		t.Errorf("Bind(Ctrl+Z) error = %v", err)
	}
}

func TestDispatchOrder(t *testing.T) {
	km := New()
	var order []string

	km.BindAll(uuid.New(), "first", func(key.Event) bool {
		order = append(order, "first")
		return false
	})
	if err := km.Bind(uuid.New(), "Ctrl+S", "second", func(key.Event) bool {
		order = append(order, "second")
		return true
	}); err != nil {
		t.Fatal(err)
	}
	km.BindAll(uuid.New(), "third", func(key.Event) bool {
		order = append(order, "third")
		return true
	})

	if !km.Dispatch(key.NewRuneEvent('s', key.ModCtrl)) {
		t.Fatal("Dispatch = false, want true")
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}

	order = nil
	km.Dispatch(key.NewRuneEvent('q', key.ModCtrl))
	if len(order) != 2 || order[0] != "first" || order[1] != "third" {
		t.Errorf("order = %v, want [first third]", order)
	}
}

func TestUnbind(t *testing.T) {
	km := New()
	a, b := uuid.New(), uuid.New()

	for _, spec := range []string{"Ctrl+B", "Meta+B"} {
		if err := km.Bind(a, spec, "", func(key.Event) bool { return true }); err != nil {
			t.Fatal(err)
		}
	}
	if err := km.Bind(b, "Ctrl+I", "", func(key.Event) bool { return true }); err != nil {
		t.Fatal(err)
	}

	if n := km.Unbind(a); n != 2 {
		t.Errorf("Unbind = %d, want 2", n)
	}
	if km.Len() != 1 {
		t.Errorf("Len = %d, want 1", km.Len())
	}
	if km.Dispatch(key.NewRuneEvent('b', key.ModCtrl)) {
		t.Error("revoked shortcut still dispatched")
	}
	if err := km.Bind(b, "Ctrl+B", "", nil); err != nil {
		t.Errorf("rebinding freed shortcut: %v", err)
	}
	if n := km.Unbind(a); n != 0 {
		t.Errorf("second Unbind = %d, want 0", n)
	}
}

func TestLookupSnapshot(t *testing.T) {
	km := New()
	owner := uuid.New()
	if err := km.Bind(owner, "Ctrl+B", "bold", nil); err != nil {
		t.Fatal(err)
	}

	got := km.Lookup(key.NewRuneEvent('B', key.ModCtrl|key.ModShift))
	if len(got) != 0 {
		t.Errorf("Ctrl+Shift+B matched %d bindings, want 0", len(got))
	}
	got = km.Lookup(key.NewRuneEvent('b', key.ModCtrl))
	if len(got) != 1 || got[0].Description != "bold" || got[0].Owner != owner {
		t.Errorf("Lookup = %+v", got)
	}
	if all := km.Bindings(); len(all) != 1 || all[0].Keys != "Ctrl+B" {
		t.Errorf("Bindings = %+v", all)
	}
}
