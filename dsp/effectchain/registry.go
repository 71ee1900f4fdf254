package effectchain

import (
	"errors"
	"fmt"
	"slices"
)

// Factory builds one Effect from the parameters supplied for its name.
// Missing or unusable values take the kind's defaults.
type Factory func(ctx Context, params Params) Effect

// Registry maps effect names to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateEffect = errors.New("duplicate effect type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("empty effect type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, name)
	}

	r.factories[name] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	err := r.Register(name, factory)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given effect name, or nil.
func (r *Registry) Lookup(name string) Factory {
	return r.factories[name]
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// ParseSelection resolves effect names into a Selection. params may hold a
// parameter set per name; absent entries use defaults. Names without a
// factory are skipped and returned in unknown, in input order.
func (r *Registry) ParseSelection(ctx Context, names []string, params map[string]Params) (sel Selection, unknown []string) {
	for _, name := range names {
		factory := r.Lookup(name)
		if factory == nil {
			unknown = append(unknown, name)
			continue
		}

		p := params[name]
		p.Type = name
		sel.Set(factory(ctx, p))
	}

	return sel, unknown
}
