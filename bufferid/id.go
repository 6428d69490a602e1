// Package bufferid implements the process-unique identifiers that tag
// buffers inside a BufferCollection. Ids are obtained from a name
// registry: the same string always resolves to the same id, and two
// different strings never collide.
package bufferid

import (
	"sync"

	"github.com/google/uuid"
)

// ID is an opaque, equality-comparable token produced by a Registry.
// uuid.UUID is a fixed-size byte array, so ID satisfies Go's == and can
// be used directly as a map key without boxing.
type ID uuid.UUID

// Nil is the zero value of ID, returned by Registry.Lookup when a name
// has never been registered.
var Nil ID

// Registry is a process-wide name -> ID interning table. The zero value
// is ready to use.
type Registry struct {
	mu  sync.Mutex
	ids map[string]ID
}

// Global is the default, shared registry. Pipeline steps normally call
// Global.Get in their constructors so that two steps built with the
// same output name always agree on the id, without needing a reference
// to each other.
var Global = &Registry{}

// Get returns the id for name, registering a fresh one on first use.
func (r *Registry) Get(name string) ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ids == nil {
		r.ids = make(map[string]ID)
	}

	if id, ok := r.ids[name]; ok {
		return id
	}

	id := ID(uuid.New())
	r.ids[name] = id
	return id
}

// Lookup returns the id registered for name, and whether it has been
// registered at all. It never allocates a new id.
func (r *Registry) Lookup(name string) (ID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.ids[name]
	return id, ok
}

// Get interns name against the package-level Global registry.
func Get(name string) ID {
	return Global.Get(name)
}

// Unique mints a fresh id unrelated to any name. Pipeline step
// constructors call this to obtain a process-unique identifier for
// each buffer they will produce, independent of how many other
// instances of the same step kind exist. This is distinct from Get,
// which always resolves the same name to the same id: well-known
// external inputs (the data matrix, class labels) are looked up by
// name, but a step's own outputs must not collide with another step's
// outputs even when both steps have the same kind and same name.
func Unique() ID {
	return ID(uuid.New())
}
