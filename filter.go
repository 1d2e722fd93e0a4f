package keep

import "github.com/TheBitDrifter/mask"

// withTerm restricts a match to archetypes that carry T, without borrowing
// it (spec "structural filter, no access").
type withTerm struct{ id ComponentId }

// With requires the archetype to carry T, declaring no access to it.
func With[T any]() Term {
	return withTerm{id: componentIdOf[T]()}
}

func (t withTerm) accesses() []ComponentAccess { return nil }

func (t withTerm) matches(sig mask.Mask256) bool {
	return sig.ContainsAll(bitMaskOf(t.id))
}

// withoutTerm restricts a match to archetypes that do not carry T.
type withoutTerm struct{ id ComponentId }

// Without excludes archetypes that carry T.
func Without[T any]() Term {
	return withoutTerm{id: componentIdOf[T]()}
}

func (t withoutTerm) accesses() []ComponentAccess { return nil }

func (t withoutTerm) matches(sig mask.Mask256) bool {
	return !sig.ContainsAny(bitMaskOf(t.id))
}
