package keep

import "github.com/TheBitDrifter/mask"

// andTerm matches an archetype only when every child term matches, and
// declares the union of every child's access (spec "conjunction of
// terms", grounded on the original's and.rs).
type andTerm struct {
	children []Term
}

// And combines terms so a match requires every one of them to match, and
// the combined access set is their union.
func And(terms ...Term) Term {
	return andTerm{children: terms}
}

func (t andTerm) accesses() []ComponentAccess {
	var out []ComponentAccess
	for _, c := range t.children {
		out = append(out, c.accesses()...)
	}
	return out
}

func (t andTerm) matches(sig mask.Mask256) bool {
	for _, c := range t.children {
		if !c.matches(sig) {
			return false
		}
	}
	return true
}
