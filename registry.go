package keep

import (
	"fmt"
	"reflect"
	"sync"
)

// componentRegistry assigns each distinct component type a stable bit index
// the first time it is seen, so archetype signatures can be represented as
// a mask.Mask256 instead of a sorted slice comparison. This reuses the
// Register/GetIndex shape of the teacher's cache.go SimpleCache[T], adapted
// from a per-instance string-keyed cache to the process-wide, type-keyed
// registry the spec's "process-stable ComponentId" requires.
type componentRegistry struct {
	mu      sync.Mutex
	indices map[reflect.Type]uint32
	types   []reflect.Type
}

// maxComponents bounds the registry to the width of mask.Mask256, matching
// the spec's "maximum archetypes exceeding the archetype-index width" style
// boundary but for distinct component types instead of archetypes.
const maxComponents = 256

var globalComponents = &componentRegistry{
	indices: make(map[reflect.Type]uint32),
}

// register assigns t a bit index if it doesn't already have one.
func (r *componentRegistry) register(t reflect.Type) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx, ok := r.indices[t]; ok {
		return idx
	}
	idx := uint32(len(r.types))
	if idx >= maxComponents {
		panic(fmt.Errorf("keep: component registry exhausted (limit %d distinct component types), registering %s", maxComponents, t))
	}
	r.indices[t] = idx
	r.types = append(r.types, t)
	return idx
}

// indexOf returns t's bit index, registering it first if necessary.
func (r *componentRegistry) indexOf(t reflect.Type) uint32 {
	r.mu.Lock()
	if idx, ok := r.indices[t]; ok {
		r.mu.Unlock()
		return idx
	}
	r.mu.Unlock()
	return r.register(t)
}

func bitIndexOf(id ComponentId) uint32 {
	return globalComponents.indexOf(id.typ)
}
