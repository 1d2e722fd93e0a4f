package keep

import (
	"iter"

	"github.com/TheBitDrifter/bark"
)

// WorldAccess is the capability-scoped handle a system body receives: it
// can only fetch components the system's declared Term actually grants,
// enforced at fetch time by checkAccess (spec §4.3/§4.5, grounded on the
// teacher's cursor.go iteration state machine).
type WorldAccess struct {
	world   *World
	granted AccessSet
}

func newWorldAccess(w *World, granted AccessSet) *WorldAccess {
	return &WorldAccess{world: w, granted: granted}
}

// Reborrow returns a WorldAccess scoped to a subset of this one's granted
// access, for handing a narrower capability to a helper function.
func (wa *WorldAccess) Reborrow(terms ...Term) *WorldAccess {
	sub := NewAccessSet(terms...)
	for c := range sub.writes {
		if !wa.granted.writes[c] {
			panic(bark.AddTrace(AccessNotGrantedError{Component: c, Kind: AccessWrite}))
		}
	}
	for c := range sub.reads {
		if !wa.granted.reads[c] && !wa.granted.writes[c] {
			panic(bark.AddTrace(AccessNotGrantedError{Component: c, Kind: AccessRead}))
		}
	}
	return &WorldAccess{world: wa.world, granted: sub}
}

func (wa *WorldAccess) checkAccess(id ComponentId, kind Access) {
	switch kind {
	case AccessWrite:
		if wa.granted.writes[id] {
			return
		}
	case AccessRead:
		if wa.granted.reads[id] || wa.granted.writes[id] {
			return
		}
	}
	panic(bark.AddTrace(AccessNotGrantedError{Component: id, Kind: kind}))
}

// matchingArchetypes returns every archetype in the world satisfying t.
func (wa *WorldAccess) matchingArchetypes(t Term) []*Archetype {
	var out []*Archetype
	for _, a := range wa.world.Archetypes() {
		if t.matches(a.Signature()) {
			out = append(out, a)
		}
	}
	return out
}

// Get fetches component T off entity e, subject to the calling system
// having declared read (or write) access to T.
func Get[T any](wa *WorldAccess, e Entity) (*T, bool) {
	id := componentIdOf[T]()
	wa.checkAccess(id, AccessRead)
	loc, ok := wa.world.directory.locate(e)
	if !ok {
		return nil, false
	}
	ptr, ok := loc.archetype.ptrAt(loc.row, id)
	if !ok {
		return nil, false
	}
	return ptr.Interface().(*T), true
}

// Query1 iterates every entity matching t, yielding a pointer to its T
// column slot. t must declare (at least) a read of T.
func Query1[T any](wa *WorldAccess, t Term) iter.Seq[*T] {
	id := componentIdOf[T]()
	wa.checkAccess(id, accessKindFor(t, id))
	return func(yield func(*T) bool) {
		for _, a := range wa.matchingArchetypes(t) {
			for ci, c := range a.chunks {
				for row := 0; row < c.len(); row++ {
					ptr, ok := a.ptrAt(rowLocation{chunkIndex: ci, row: row}, id)
					if !ok {
						continue
					}
					if !yield(ptr.Interface().(*T)) {
						return
					}
				}
			}
		}
	}
}

// Query2 iterates every entity matching t, yielding pointers to its A and
// B column slots.
func Query2[A, B any](wa *WorldAccess, t Term) iter.Seq2[*A, *B] {
	idA := componentIdOf[A]()
	idB := componentIdOf[B]()
	wa.checkAccess(idA, accessKindFor(t, idA))
	wa.checkAccess(idB, accessKindFor(t, idB))
	return func(yield func(*A, *B) bool) {
		for _, a := range wa.matchingArchetypes(t) {
			for ci, c := range a.chunks {
				for row := 0; row < c.len(); row++ {
					loc := rowLocation{chunkIndex: ci, row: row}
					pa, okA := a.ptrAt(loc, idA)
					pb, okB := a.ptrAt(loc, idB)
					if !okA || !okB {
						continue
					}
					if !yield(pa.Interface().(*A), pb.Interface().(*B)) {
						return
					}
				}
			}
		}
	}
}

// Entities iterates the entity handles matching t, without fetching any
// component data.
func (wa *WorldAccess) Entities(t Term) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, a := range wa.matchingArchetypes(t) {
			for _, c := range a.chunks {
				for _, e := range c.entities {
					if !yield(e) {
						return
					}
				}
			}
		}
	}
}

// Take is Reborrow under the spec's take(accessor) vocabulary: Go has no
// move semantics, so there is nothing to actually transfer ownership of,
// but the name is kept for callers porting code against spec §4.5's
// "take narrows, and the narrowed handle is what iterates" phrasing.
func (wa *WorldAccess) Take(terms ...Term) *WorldAccess {
	return wa.Reborrow(terms...)
}

// TakeQuery1 narrows wa to t's access and iterates it with Query1, the
// spec §4.5 take_query(view) composition for single-component views.
func TakeQuery1[T any](wa *WorldAccess, t Term) iter.Seq[*T] {
	return Query1[T](wa.Take(t), t)
}

// TakeQuery2 is TakeQuery1 for two-component views.
func TakeQuery2[A, B any](wa *WorldAccess, t Term) iter.Seq2[*A, *B] {
	return Query2[A, B](wa.Take(t), t)
}

// ArchetypesIter iterates every archetype in the world, unfiltered
// (spec §4.5 archetypes_iter).
func (wa *WorldAccess) ArchetypesIter() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, a := range wa.world.Archetypes() {
			if !yield(a) {
				return
			}
		}
	}
}

// Chunk is a read-only view onto one archetype chunk, surfaced instead of
// the unexported chunk type so ChunksIter has something public to yield.
type Chunk struct {
	archetype *Archetype
	index     int
}

// Len reports how many rows this chunk holds.
func (c Chunk) Len() int { return c.archetype.chunks[c.index].len() }

// Entities returns the entity handles stored in this chunk, in row order.
func (c Chunk) Entities() []Entity {
	ents := c.archetype.chunks[c.index].entities
	out := make([]Entity, len(ents))
	copy(out, ents)
	return out
}

// ChunksIter iterates every chunk of every archetype matching t (spec
// §4.5 chunks_iter), the coarser-grained counterpart to Query1/Query2 for
// callers that want to process storage chunk-at-a-time.
func (wa *WorldAccess) ChunksIter(t Term) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for _, a := range wa.matchingArchetypes(t) {
			for ci := range a.chunks {
				if !yield(Chunk{archetype: a, index: ci}) {
					return
				}
			}
		}
	}
}

// accessKindFor reports whether t declares a write of id (falling back to
// read); used so Query1/Query2 enforce whichever kind the caller's Term
// actually asked for.
func accessKindFor(t Term, id ComponentId) Access {
	for _, ca := range t.accesses() {
		if ca.Component == id && ca.Kind == AccessWrite {
			return AccessWrite
		}
	}
	return AccessRead
}
