package keep

import (
	"reflect"

	"github.com/TheBitDrifter/bark"
)

// Bundle is a fixed-arity set of component values to insert atomically.
// Go has no variadic generics, so instead of the original's tuple macro
// (impl_set_for_tuple! up to 8), each arity gets its own Spawn function
// below; Bundle itself only needs to expose what spawnBundle needs to
// route and write the values.
type Bundle interface {
	componentInfos() []ComponentInfo
	values() []any
}

func spawnBundle(w *World, b Bundle) (Entity, error) {
	infos := b.componentInfos()
	vals := b.values()
	return spawnDynamic(w, infos, func(u *UninitComponents) error {
		for i, info := range infos {
			if err := u.Write(info.ID, vals[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// UninitComponents is the row a SpawnDynamic initializer writes into. A
// fixed-arity bundle (bundle1..bundle5) always supplies a value for every
// slot it declares, so it can never under-initialize; UninitComponents
// exists for callers that build a component set dynamically and may
// legitimately skip a slot, making the §4.2 "verify every slot was
// initialized before committing" contract reachable.
type UninitComponents struct {
	archetype *Archetype
	loc       rowLocation
	written   map[ComponentId]bool
}

// Write stores value in component id's slot for this row. id must be one
// of the archetype's declared components.
func (u *UninitComponents) Write(id ComponentId, value any) error {
	ptr, ok := u.archetype.ptrAt(u.loc, id)
	if !ok {
		return bark.AddTrace(ComponentNotFoundError{Component: id})
	}
	ptr.Elem().Set(reflect.ValueOf(value))
	u.written[id] = true
	return nil
}

// WriteComponent is the generic form of Write, deriving id from T.
func WriteComponent[T any](u *UninitComponents, value T) error {
	return u.Write(componentIdOf[T](), value)
}

// spawnDynamic reserves a row in the archetype matching infos and runs
// init against it. If init returns an error, or leaves any declared
// component unwritten, the row is discarded (and its entity slot freed)
// before the entity or its partial state becomes observable, so a failed
// spawn never leaks a zero-valued component into storage.
func spawnDynamic(w *World, infos []ComponentInfo, init func(*UninitComponents) error) (Entity, error) {
	if w.locked() {
		return Entity{}, bark.AddTrace(LockedWorldError{})
	}
	archetype := w.archetypeFor(infos)
	entity := w.directory.reserve()
	loc := archetype.append(entity)

	u := &UninitComponents{archetype: archetype, loc: loc, written: make(map[ComponentId]bool, len(infos))}
	if err := init(u); err != nil {
		archetype.swapRemove(loc)
		w.directory.free(entity)
		return Entity{}, err
	}
	for _, info := range infos {
		if !u.written[info.ID] {
			archetype.swapRemove(loc)
			w.directory.free(entity)
			return Entity{}, bark.AddTrace(IncompleteBundleError{Missing: info.ID})
		}
	}

	w.directory.setLocation(entity, entityLocation{archetype: archetype, row: loc})
	w.track(archetype, entity)
	return entity, nil
}

// SpawnDynamic inserts a new entity whose component set is built at
// runtime rather than fixed at compile time. init must write every
// component in infos via UninitComponents.Write/WriteComponent; leaving
// any slot unwritten, or returning an error, aborts the spawn.
func SpawnDynamic(w *World, infos []ComponentInfo, init func(*UninitComponents) error) (Entity, error) {
	return spawnDynamic(w, infos, init)
}

type bundle1[A any] struct{ a A }

func (b bundle1[A]) componentInfos() []ComponentInfo {
	return []ComponentInfo{componentInfoOf[A]()}
}
func (b bundle1[A]) values() []any { return []any{b.a} }

type bundle2[A, B any] struct {
	a A
	b B
}

func (b bundle2[A, B]) componentInfos() []ComponentInfo {
	return []ComponentInfo{componentInfoOf[A](), componentInfoOf[B]()}
}
func (b bundle2[A, B]) values() []any { return []any{b.a, b.b} }

type bundle3[A, B, C any] struct {
	a A
	b B
	c C
}

func (b bundle3[A, B, C]) componentInfos() []ComponentInfo {
	return []ComponentInfo{componentInfoOf[A](), componentInfoOf[B](), componentInfoOf[C]()}
}
func (b bundle3[A, B, C]) values() []any { return []any{b.a, b.b, b.c} }

type bundle4[A, B, C, D any] struct {
	a A
	b B
	c C
	d D
}

func (b bundle4[A, B, C, D]) componentInfos() []ComponentInfo {
	return []ComponentInfo{componentInfoOf[A](), componentInfoOf[B](), componentInfoOf[C](), componentInfoOf[D]()}
}
func (b bundle4[A, B, C, D]) values() []any { return []any{b.a, b.b, b.c, b.d} }

type bundle5[A, B, C, D, E any] struct {
	a A
	b B
	c C
	d D
	e E
}

func (b bundle5[A, B, C, D, E]) componentInfos() []ComponentInfo {
	return []ComponentInfo{
		componentInfoOf[A](), componentInfoOf[B](), componentInfoOf[C](),
		componentInfoOf[D](), componentInfoOf[E](),
	}
}
func (b bundle5[A, B, C, D, E]) values() []any { return []any{b.a, b.b, b.c, b.d, b.e} }

// Spawn1 inserts a new entity with a single component.
func Spawn1[A any](w *World, a A) (Entity, error) {
	return spawnBundle(w, bundle1[A]{a: a})
}

// Spawn2 inserts a new entity with two components.
func Spawn2[A, B any](w *World, a A, b B) (Entity, error) {
	return spawnBundle(w, bundle2[A, B]{a: a, b: b})
}

// Spawn3 inserts a new entity with three components.
func Spawn3[A, B, C any](w *World, a A, b B, c C) (Entity, error) {
	return spawnBundle(w, bundle3[A, B, C]{a: a, b: b, c: c})
}

// Spawn4 inserts a new entity with four components.
func Spawn4[A, B, C, D any](w *World, a A, b B, c C, d D) (Entity, error) {
	return spawnBundle(w, bundle4[A, B, C, D]{a: a, b: b, c: c, d: d})
}

// Spawn5 inserts a new entity with five components.
func Spawn5[A, B, C, D, E any](w *World, a A, b B, c C, d D, e E) (Entity, error) {
	return spawnBundle(w, bundle5[A, B, C, D, E]{a: a, b: b, c: c, d: d, e: e})
}
