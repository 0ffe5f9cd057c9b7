package model

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tsawler/spatialign/transform"
)

// ErrCoordinateSystemNotFound is returned by Registry.Get when no
// transform is registered under the requested coordinate-system name.
var ErrCoordinateSystemNotFound = errors.New("model: coordinate system not found")

// CoordinateSystemError reports a registry lookup miss for a named
// coordinate system. It matches ErrCoordinateSystemNotFound under
// errors.Is.
type CoordinateSystemError struct {
	Name string
}

func (e CoordinateSystemError) Error() string {
	return fmt.Sprintf("model: coordinate system %q not found in element", e.Name)
}

func (e CoordinateSystemError) Is(target error) bool {
	return target == ErrCoordinateSystemNotFound
}

// Registry maps coordinate-system names to the transform anchoring its
// owning entity in that system. Every entity owns exactly one Registry;
// the transformation engine never mutates the registry of an input entity,
// it derives a fresh one for the transformed output.
type Registry struct {
	entries map[string]transform.Transform
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]transform.Transform)}
}

// NewDefaultRegistry creates the registry a freshly constructed entity
// carries: a single Identity entry under name.
func NewDefaultRegistry(name string) *Registry {
	r := NewRegistry()
	r.entries[name] = transform.Identity{}
	return r
}

// Get returns the transform anchoring the entity in the named coordinate
// system, or a CoordinateSystemError if absent.
func (r *Registry) Get(name string) (transform.Transform, error) {
	t, ok := r.entries[name]
	if !ok {
		return nil, CoordinateSystemError{Name: name}
	}
	return t, nil
}

// Set registers t under the coordinate-system name, replacing any previous
// entry.
func (r *Registry) Set(name string, t transform.Transform) {
	r.entries[name] = t
}

// Remove deletes the entry for name, if present.
func (r *Registry) Remove(name string) {
	delete(r.entries, name)
}

// Reset replaces all entries with a single Identity entry under name.
func (r *Registry) Reset(name string) {
	r.entries = map[string]transform.Transform{name: transform.Identity{}}
}

// Len returns the number of registered coordinate systems.
func (r *Registry) Len() int { return len(r.entries) }

// Names returns the registered coordinate-system names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns a copy of the name-to-transform mapping.
func (r *Registry) All() map[string]transform.Transform {
	out := make(map[string]transform.Transform, len(r.entries))
	for n, t := range r.entries {
		out[n] = t
	}
	return out
}

// Clone returns an independent copy of the registry. Transforms are
// immutable values and are shared.
func (r *Registry) Clone() *Registry {
	return &Registry{entries: r.All()}
}
