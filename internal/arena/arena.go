// Package arena tracks scratch allocations for per-tick and per-worker
// bookkeeping: access lists, grant vectors, and dependency graph nodes.
// Values drawn from an Arena are ordinary Go allocations that the Arena
// counts; there is no way to free a single allocation, and Reset clears
// the counts when the tick (or a worker's slice of it) is done.
//
// Grant vectors and graph nodes hold interface fields (component ids carry
// a reflect.Type), so a literal []byte bump allocator with unsafe pointer
// casts would hide live references from the garbage collector. Arena
// therefore hands out normally-allocated Go values and pools no memory,
// staying GC-safe (see DESIGN.md).
package arena

// Arena hands out growable slices for one tick (or one worker's portion of
// a tick) and counts them; Reset clears the counts for the next tick.
type Arena struct {
	blocks    int
	allocated int
}

// New returns an empty Arena.
func New() *Arena {
	return &Arena{}
}

// Reset discards all bookkeeping for this arena. Previously returned
// slices remain valid Go values (the garbage collector reclaims them
// normally once unreferenced); Reset only resets the arena's own counters
// so it can be reused for the next tick.
func (a *Arena) Reset() {
	a.blocks = 0
	a.allocated = 0
}

// Allocated reports how many elements have been handed out since the last
// Reset, across all typed slices drawn from this arena.
func (a *Arena) Allocated() int {
	return a.allocated
}

// Blocks reports how many distinct slice allocations have been made since
// the last Reset.
func (a *Arena) Blocks() int {
	return a.blocks
}

func (a *Arena) track(n int) {
	a.blocks++
	a.allocated += n
}

// AllocSlice returns a zero-length slice with capacity n drawn from the
// arena's bookkeeping. Growth beyond n falls back to Go's normal slice
// growth, same as any other append.
func AllocSlice[T any](a *Arena, n int) []T {
	if n < 0 {
		n = 0
	}
	a.track(n)
	return make([]T, 0, n)
}

// Alloc returns a pointer to a new zero-valued T tracked by the arena.
func Alloc[T any](a *Arena) *T {
	a.track(1)
	var v T
	return &v
}

// Pool hands out one Arena per worker so concurrent schedule execution
// never shares scratch state across goroutines (spec §5: "each worker owns
// its arena; no cross-worker arena access").
type Pool struct {
	arenas []*Arena
}

// NewPool creates a Pool with n per-worker arenas.
func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{arenas: make([]*Arena, n)}
	for i := range p.arenas {
		p.arenas[i] = New()
	}
	return p
}

// Arena returns the arena owned by worker index i, modulo the pool size.
func (p *Pool) Arena(i int) *Arena {
	return p.arenas[i%len(p.arenas)]
}

// Reset resets every arena in the pool.
func (p *Pool) Reset() {
	for _, a := range p.arenas {
		a.Reset()
	}
}

// Len returns the number of per-worker arenas in the pool.
func (p *Pool) Len() int {
	return len(p.arenas)
}
