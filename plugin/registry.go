// Package plugin maps a name to a constructor for a driver.Handler. It's
// the in-process analogue of a shared-object plugin loader: the same
// name-keyed registration/lookup shape, without actually loading .so
// files, since Go's plugin package has no bearing on request parsing and
// only runs on Linux.
package plugin

import (
	"sync"

	"github.com/wireparse/wireparse/errors"
	"github.com/wireparse/wireparse/internal"
	"github.com/wireparse/wireparse/internal/driver"
)

// Constructor builds a driver.Handler from options specific to the
// plugin. Options are passed through opaquely; a plugin is free to
// ignore them or panic on a shape it doesn't recognize.
type Constructor func(opts ...any) (driver.Handler, error)

// Registry maps a plugin name to its Constructor. Unlike a global
// registration map, a Registry is an explicit object: callers decide
// which registry a given App draws handlers from, so tests and
// independent servers in the same process never share registrations.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds a named constructor. It returns errors.ErrPluginExists if
// name is already registered.
func (r *Registry) Register(name string, ctor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.ctors[name]; found {
		return errors.ErrPluginExists
	}

	r.ctors[name] = ctor

	return nil
}

// MustRegister is Register, panicking on failure. Meant for package-level
// init-time registration where a duplicate name is a programming error.
func (r *Registry) MustRegister(name string, ctor Constructor) {
	if err := r.Register(name, ctor); err != nil {
		panic("plugin: " + name + ": " + err.Error())
	}
}

// Build looks up name and invokes its constructor with opts, returning
// errors.ErrPluginNotFound if nothing is registered under that name.
func (r *Registry) Build(name string, opts ...any) (driver.Handler, error) {
	r.mu.RLock()
	ctor, found := r.ctors[name]
	r.mu.RUnlock()

	if !found {
		return nil, errors.ErrPluginNotFound
	}

	return ctor(opts...)
}

// Names returns every registered plugin name, in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return internal.Keys(r.ctors)
}
