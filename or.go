package keep

import "github.com/TheBitDrifter/mask"

// orTerm matches an archetype when any child term matches, while still
// declaring the union of every child's access: a system that might touch
// any alternative must hold the access for all of them up front (spec
// "disjunction of terms", grounded on the original's or.rs).
type orTerm struct {
	children []Term
}

// Or combines terms so a match requires at least one of them to match.
func Or(terms ...Term) Term {
	return orTerm{children: terms}
}

// accesses unions every child's declared access, forcing Optional on each:
// an Or match only guarantees that *some* child matched, so no single
// child's component is guaranteed present on a given row even when that
// child itself declared a required (non-optional) access.
func (t orTerm) accesses() []ComponentAccess {
	var out []ComponentAccess
	for _, c := range t.children {
		for _, ca := range c.accesses() {
			ca.Optional = true
			out = append(out, ca)
		}
	}
	return out
}

func (t orTerm) matches(sig mask.Mask256) bool {
	for _, c := range t.children {
		if c.matches(sig) {
			return true
		}
	}
	return false
}
