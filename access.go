package keep

import "github.com/TheBitDrifter/mask"

// Access is the borrow kind a Term declares for one component.
type Access int

const (
	AccessRead Access = iota
	AccessWrite
)

// ComponentAccess is one declared borrow: a component id, whether it is
// read or written, and whether the term tolerates the component being
// absent (Try variants).
type ComponentAccess struct {
	Component ComponentId
	Kind      Access
	Optional  bool
}

// Term is the shared algebra behind both views (Read/Write/TryRead/
// TryWrite, which declare access) and filters (With/Without, which
// declare none). And and Or compose Terms of either kind. The original
// keeps views and filters as separate traits; this package unifies them
// under one interface.
type Term interface {
	// accesses lists every component this term borrows. Filters return nil.
	accesses() []ComponentAccess

	// matches reports whether an archetype with this signature satisfies
	// the term's structural requirement (ignoring accessibility/locking).
	matches(sig mask.Mask256) bool
}

// accessesOf flattens a term's own accesses. Helper for the scheduler and
// for composite terms.
func accessesOf(t Term) []ComponentAccess {
	return t.accesses()
}

// AccessSet is the deduplicated read/write footprint the scheduler
// compares across systems to detect conflicts (spec §4.6).
type AccessSet struct {
	reads  map[ComponentId]bool
	writes map[ComponentId]bool
}

// NewAccessSet flattens one or more terms into a single AccessSet.
func NewAccessSet(terms ...Term) AccessSet {
	as := AccessSet{reads: map[ComponentId]bool{}, writes: map[ComponentId]bool{}}
	for _, t := range terms {
		for _, ca := range t.accesses() {
			switch ca.Kind {
			case AccessRead:
				as.reads[ca.Component] = true
			case AccessWrite:
				as.writes[ca.Component] = true
			}
		}
	}
	return as
}

// ConflictsWith reports whether the two access sets touch a common
// component with at least one side writing it (spec invariant: two
// systems conflict iff their access sets intersect on a write).
func (as AccessSet) ConflictsWith(other AccessSet) bool {
	for c := range as.writes {
		if other.reads[c] || other.writes[c] {
			return true
		}
	}
	for c := range other.writes {
		if as.reads[c] || as.writes[c] {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the set declares no access at all.
func (as AccessSet) IsEmpty() bool {
	return len(as.reads) == 0 && len(as.writes) == 0
}
