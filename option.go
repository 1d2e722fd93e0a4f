package keep

import "iter"

// Option holds a per-row fetch result for an optional component access:
// Some wraps the value, None reports absence. This is the "option
// iterator" view shape for TryRead/TryWrite and for Or-composed terms,
// where an archetype match only guarantees that at least one side of the
// disjunction is present (spec §4.4, grounded on the original's
// try_fetch returning Option<T> per row).
type Option[T any] struct {
	value *T
	some  bool
}

// Some wraps a present value.
func Some[T any](v *T) Option[T] { return Option[T]{value: v, some: true} }

// None reports an absent value.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the wrapped pointer and whether it was present.
func (o Option[T]) Get() (*T, bool) { return o.value, o.some }

// IsSome reports whether the component was present on this row.
func (o Option[T]) IsSome() bool { return o.some }

// optionalFor reports whether t declares component id as optional, either
// directly (TryRead/TryWrite) or structurally (via Or, where no single
// child's presence is guaranteed).
func optionalFor(t Term, id ComponentId) bool {
	for _, ca := range t.accesses() {
		if ca.Component == id {
			return ca.Optional
		}
	}
	return false
}

// optionAt fetches component T at loc, returning None when the archetype
// simply does not carry T (the optional case) rather than excluding the
// row entirely.
func optionAt[T any](a *Archetype, loc rowLocation, id ComponentId) Option[T] {
	ptr, ok := a.ptrAt(loc, id)
	if !ok {
		return None[T]()
	}
	return Some(ptr.Interface().(*T))
}

// QueryOpt1 iterates every entity matching t, yielding a per-row Option[T]
// rather than skipping rows whose archetype lacks T. Use this over Query1
// when t declares T via TryRead/TryWrite, or via Or, so absence is
// observable instead of silently dropping the row.
func QueryOpt1[T any](wa *WorldAccess, t Term) iter.Seq[Option[T]] {
	id := componentIdOf[T]()
	wa.checkAccess(id, accessKindFor(t, id))
	optional := optionalFor(t, id)
	return func(yield func(Option[T]) bool) {
		for _, a := range wa.matchingArchetypes(t) {
			if !optional && !a.Has(id) {
				continue
			}
			for ci, c := range a.chunks {
				for row := 0; row < c.len(); row++ {
					loc := rowLocation{chunkIndex: ci, row: row}
					if !yield(optionAt[T](a, loc, id)) {
						return
					}
				}
			}
		}
	}
}

// QueryOpt2 iterates every entity matching t, yielding per-row Option[A]
// and Option[B]. An archetype is included as soon as it carries at least
// one of A, B under an Or-composed t; rows from an archetype missing one
// side yield None for that side.
func QueryOpt2[A, B any](wa *WorldAccess, t Term) iter.Seq2[Option[A], Option[B]] {
	idA := componentIdOf[A]()
	idB := componentIdOf[B]()
	wa.checkAccess(idA, accessKindFor(t, idA))
	wa.checkAccess(idB, accessKindFor(t, idB))
	optA := optionalFor(t, idA)
	optB := optionalFor(t, idB)
	return func(yield func(Option[A], Option[B]) bool) {
		for _, a := range wa.matchingArchetypes(t) {
			if !optA && !a.Has(idA) {
				continue
			}
			if !optB && !a.Has(idB) {
				continue
			}
			for ci, c := range a.chunks {
				for row := 0; row < c.len(); row++ {
					loc := rowLocation{chunkIndex: ci, row: row}
					if !yield(optionAt[A](a, loc, idA), optionAt[B](a, loc, idB)) {
						return
					}
				}
			}
		}
	}
}
