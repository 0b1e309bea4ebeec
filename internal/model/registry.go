package model

import (
	"fmt"
	"sort"
)

// GitignoreBinding is always present in bindings so templates can name a
// file "${gitignore}" without shipping a real .gitignore.
const GitignoreBinding = "gitignore"

// Registry stores models by name. Each name may be registered once.
type Registry struct {
	models map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]any)}
}

// Add registers m under name.
func (r *Registry) Add(name string, m any) error {
	if name == "" {
		return fmt.Errorf("registering model: empty name")
	}
	if r.Has(name) {
		return fmt.Errorf("model %q is already registered", name)
	}
	r.models[name] = m
	return nil
}

// Has reports whether a model is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.models[name]
	return ok
}

// Lookup returns the model registered under name.
func (r *Registry) Lookup(name string) (any, bool) {
	m, ok := r.models[name]
	return m, ok
}

// Names returns registered model names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the model registered under name as a T.
func Get[T any](r *Registry, name string) (T, error) {
	var zero T
	m, ok := r.models[name]
	if !ok {
		return zero, fmt.Errorf("model %q has not yet been created", name)
	}
	typed, ok := m.(T)
	if !ok {
		return zero, fmt.Errorf("model %q is %T, not %T", name, m, zero)
	}
	return typed, nil
}

// Bindings flattens every registered model into "<name>.<field>" entries and
// adds the fixed gitignore entry.
func (r *Registry) Bindings() map[string]string {
	bindings := map[string]string{GitignoreBinding: ".gitignore"}
	for _, name := range r.Names() {
		Flatten(name, r.models[name], bindings)
	}
	return bindings
}
