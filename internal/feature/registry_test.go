package feature

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

type named string

func (n named) Name() string { return string(n) }

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"a", "b", "c"} {
		id, err := r.Add(named(n))
		if err != nil {
			t.Fatalf("Add(%s): %v", n, err)
		}
		if id == uuid.Nil {
			t.Errorf("Add(%s) returned nil id", n)
		}
	}

	if got := r.Names(); len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("Names = %v", got)
	}

	if _, err := r.Remove("b"); err != nil {
		t.Fatal(err)
	}
	if got := r.Names(); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Names after remove = %v", got)
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Add(named("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Add(named("a")); !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("duplicate Add error = %v, want ErrAlreadyMounted", err)
	}
	if _, err := r.Remove("missing"); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Remove error = %v, want ErrNotMounted", err)
	}
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	idA, _ := r.Add(named("a"))
	_, _ = r.Add(named("b"))

	snap := r.Entries()
	if _, err := r.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if len(snap) != 2 || snap[0].ID != idA || snap[1].Feature.Name() != "b" {
		t.Errorf("snapshot changed: %+v", snap)
	}
	if f, ok := r.Get("b"); !ok || f.Name() != "b" {
		t.Error("Get(b) failed")
	}
	if _, ok := r.Get("a"); ok {
		t.Error("Get(a) found removed feature")
	}
}
