// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package passlib is a registry of pass types that can be created by name.
//
// Pass packages register their types in init:
//
//	func init() {
//	    passlib.Register("Blur", "Separable Gaussian blur", newBlur)
//	}
//
// Tools then create passes from names found in configuration:
//
//	p, err := passlib.Create("Blur", passlib.Params{"radius": 4})
//	err = g.AddPass(p, "blur")
package passlib

import (
	"errors"
	"slices"
	"sync"

	"github.com/gogpu/rendergraph"
)

// Params carries pass-specific construction parameters.
type Params map[string]any

// String returns the string parameter key, or def when absent or not a
// string.
func (p Params) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Factory creates a new pass instance.
type Factory func(params Params) (rendergraph.Pass, error)

// Entry describes a registered pass type.
type Entry struct {
	Name        string
	Description string
	Factory     Factory
}

// ErrUnknownPass is returned by Create for names that are not registered.
var ErrUnknownPass = errors.New("passlib: unknown pass type")

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry maps pass type names to factories. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Create.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds a pass type to the global registry. Registering a name
// that already exists replaces the previous entry.
func Register(name, description string, factory Factory) {
	globalRegistry.Register(name, description, factory)
}

// Unregister removes a pass type from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered pass type names sorted alphabetically.
func List() []string {
	return globalRegistry.List()
}

// Get returns the entry registered under name.
func Get(name string) (Entry, bool) {
	return globalRegistry.Get(name)
}

// Create builds a pass of the named type from the global registry.
func Create(name string, params Params) (rendergraph.Pass, error) {
	return globalRegistry.Create(name, params)
}

// Register adds a pass type to this registry.
func (r *Registry) Register(name, description string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &Entry{Name: name, Description: description, Factory: factory}
}

// Unregister removes a pass type from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// List returns the registered names sorted alphabetically.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns a copy of the entry registered under name.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Create builds a pass of the named type. params may be nil.
func (r *Registry) Create(name string, params Params) (rendergraph.Pass, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok || e.Factory == nil {
		return nil, &UnknownPassError{Name: name}
	}
	if params == nil {
		params = Params{}
	}
	return e.Factory(params)
}

// UnknownPassError reports a name that is not registered. It matches
// ErrUnknownPass with errors.Is.
type UnknownPassError struct {
	Name string
}

func (e *UnknownPassError) Error() string {
	return "passlib: unknown pass type: " + e.Name
}

// Is reports whether target is ErrUnknownPass.
func (e *UnknownPassError) Is(target error) bool {
	return target == ErrUnknownPass
}
