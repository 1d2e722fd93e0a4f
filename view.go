package keep

import "github.com/TheBitDrifter/mask"

// readTerm declares a required, read-only borrow of component T.
type readTerm[T any] struct{ id ComponentId }

// Read declares a required read-only borrow of T: archetypes lacking T
// are excluded from the match.
func Read[T any]() Term {
	return readTerm[T]{id: componentIdOf[T]()}
}

func (t readTerm[T]) accesses() []ComponentAccess {
	return []ComponentAccess{{Component: t.id, Kind: AccessRead}}
}

func (t readTerm[T]) matches(sig mask.Mask256) bool {
	return sig.ContainsAll(bitMaskOf(t.id))
}

// writeTerm declares a required, mutable borrow of component T.
type writeTerm[T any] struct{ id ComponentId }

// Write declares a required mutable borrow of T.
func Write[T any]() Term {
	return writeTerm[T]{id: componentIdOf[T]()}
}

func (t writeTerm[T]) accesses() []ComponentAccess {
	return []ComponentAccess{{Component: t.id, Kind: AccessWrite}}
}

func (t writeTerm[T]) matches(sig mask.Mask256) bool {
	return sig.ContainsAll(bitMaskOf(t.id))
}

// tryReadTerm declares an optional read-only borrow: archetypes lacking T
// still match, with the component reported absent at fetch time.
type tryReadTerm[T any] struct{ id ComponentId }

// TryRead declares an optional read-only borrow of T.
func TryRead[T any]() Term {
	return tryReadTerm[T]{id: componentIdOf[T]()}
}

func (t tryReadTerm[T]) accesses() []ComponentAccess {
	return []ComponentAccess{{Component: t.id, Kind: AccessRead, Optional: true}}
}

func (t tryReadTerm[T]) matches(mask.Mask256) bool { return true }

// tryWriteTerm declares an optional mutable borrow.
type tryWriteTerm[T any] struct{ id ComponentId }

// TryWrite declares an optional mutable borrow of T.
func TryWrite[T any]() Term {
	return tryWriteTerm[T]{id: componentIdOf[T]()}
}

func (t tryWriteTerm[T]) accesses() []ComponentAccess {
	return []ComponentAccess{{Component: t.id, Kind: AccessWrite, Optional: true}}
}

func (t tryWriteTerm[T]) matches(mask.Mask256) bool { return true }

func bitMaskOf(id ComponentId) mask.Mask256 {
	var m mask.Mask256
	m.Mark(bitIndexOf(id))
	return m
}
