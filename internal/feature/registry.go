package feature

import (
	"fmt"

	"github.com/google/uuid"
)

// Entry is a mounted feature and its registration handle.
type Entry struct {
	ID      uuid.UUID
	Feature Feature
}

// Registry is the ordered collection of mounted features. Registration
// order is dispatch order.
type Registry struct {
	entries []Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends f and returns its handle. Names are unique.
func (r *Registry) Add(f Feature) (uuid.UUID, error) {
	if _, ok := r.Get(f.Name()); ok {
		return uuid.Nil, fmt.Errorf("%s: %w", f.Name(), ErrAlreadyMounted)
	}
	id := uuid.New()
	r.entries = append(r.entries, Entry{ID: id, Feature: f})
	return id, nil
}

// Remove deletes the feature called name and returns its entry.
func (r *Registry) Remove(name string) (Entry, error) {
	for i, e := range r.entries {
		if e.Feature.Name() == name {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%s: %w", name, ErrNotMounted)
}

// Get returns the feature called name.
func (r *Registry) Get(name string) (Feature, bool) {
	for _, e := range r.entries {
		if e.Feature.Name() == name {
			return e.Feature, true
		}
	}
	return nil, false
}

// Entries returns a snapshot of the registry in order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns the feature names in order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Feature.Name()
	}
	return out
}

// Len returns the number of registered features.
func (r *Registry) Len() int { return len(r.entries) }
