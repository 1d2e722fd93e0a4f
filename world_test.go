package keep

import (
	"errors"
	"testing"
)

type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }
type Health struct{ HP int }

func TestSpawnAssignsArchetypeBySignature(t *testing.T) {
	w := NewWorld()

	e1, err := Spawn2(w, Position{X: 1}, Velocity{X: 2})
	if err != nil {
		t.Fatalf("Spawn2: %v", err)
	}
	e2, err := Spawn2(w, Position{X: 3}, Velocity{X: 4})
	if err != nil {
		t.Fatalf("Spawn2: %v", err)
	}
	e3, err := Spawn1(w, Position{X: 5})
	if err != nil {
		t.Fatalf("Spawn1: %v", err)
	}

	loc1, _ := w.directory.locate(e1)
	loc2, _ := w.directory.locate(e2)
	loc3, _ := w.directory.locate(e3)

	if loc1.archetype != loc2.archetype {
		t.Errorf("entities with identical signatures landed in different archetypes")
	}
	if loc1.archetype == loc3.archetype {
		t.Errorf("entities with different signatures landed in the same archetype")
	}
}

func TestSpawnWritesComponentValues(t *testing.T) {
	w := NewWorld()
	e, err := Spawn2(w, Position{X: 1, Y: 2}, Velocity{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("Spawn2: %v", err)
	}

	pos, err := GetComponent[Position](w, e)
	if err != nil {
		t.Fatalf("expected Position on entity: %v", err)
	}
	if pos.X != 1 || pos.Y != 2 {
		t.Errorf("Position = %+v, want {1 2}", pos)
	}

	vel, err := GetComponent[Velocity](w, e)
	if err != nil {
		t.Fatalf("expected Velocity on entity: %v", err)
	}
	if vel.X != 3 || vel.Y != 4 {
		t.Errorf("Velocity = %+v, want {3 4}", vel)
	}
}

func TestDespawnIsDeferredUntilMaintain(t *testing.T) {
	w := NewWorld()
	e, _ := Spawn1(w, Position{X: 1})

	if err := w.Despawn(e); err != nil {
		t.Fatalf("Despawn: %v", err)
	}
	if !w.Alive(e) {
		t.Fatalf("entity should remain alive until Maintain runs")
	}

	if err := w.Maintain(); err != nil {
		t.Fatalf("Maintain: %v", err)
	}
	if w.Alive(e) {
		t.Errorf("entity should be dead after Maintain")
	}
}

func TestDespawnRecyclesSlotWithNewGeneration(t *testing.T) {
	w := NewWorld()
	e1, _ := Spawn1(w, Position{})
	if err := w.Despawn(e1); err != nil {
		t.Fatalf("Despawn: %v", err)
	}
	if err := w.Maintain(); err != nil {
		t.Fatalf("Maintain: %v", err)
	}

	e2, _ := Spawn1(w, Position{})
	if e2.index != e1.index {
		t.Fatalf("expected slot reuse: e1.index=%d e2.index=%d", e1.index, e2.index)
	}
	if e2.generation == e1.generation {
		t.Errorf("recycled slot should bump generation: got %d twice", e1.generation)
	}
	if w.Alive(e1) {
		t.Errorf("stale handle e1 should not report alive after recycling")
	}
}

func TestSwapRemoveRelocatesLastEntity(t *testing.T) {
	w := NewWorld()
	e1, _ := Spawn1(w, Position{X: 1})
	e2, _ := Spawn1(w, Position{X: 2})
	e3, _ := Spawn1(w, Position{X: 3})

	if err := w.Despawn(e1); err != nil {
		t.Fatalf("Despawn: %v", err)
	}
	if err := w.Maintain(); err != nil {
		t.Fatalf("Maintain: %v", err)
	}

	for _, e := range []Entity{e2, e3} {
		if !w.Alive(e) {
			t.Fatalf("entity %v should still be alive", e)
		}
	}
	pos2, _ := GetComponent[Position](w, e2)
	pos3, _ := GetComponent[Position](w, e3)
	if pos2.X != 2 || pos3.X != 3 {
		t.Errorf("component values corrupted after swap-remove: pos2=%+v pos3=%+v", pos2, pos3)
	}
}

func TestDespawnUnknownEntityReturnsNoSuchEntity(t *testing.T) {
	w := NewWorld()
	e, _ := Spawn1(w, Position{X: 1})
	if err := w.Despawn(e); err != nil {
		t.Fatalf("Despawn: %v", err)
	}
	if err := w.Maintain(); err != nil {
		t.Fatalf("Maintain: %v", err)
	}

	err := w.Despawn(e)
	if err == nil {
		t.Fatalf("expected NoSuchEntityError for a despawned handle")
	}
	var nse NoSuchEntityError
	if !errors.As(err, &nse) {
		t.Errorf("expected NoSuchEntityError, got %T: %v", err, err)
	}
}

func TestGetComponentUnknownEntityReturnsNoSuchEntity(t *testing.T) {
	w := NewWorld()
	e, _ := Spawn1(w, Position{X: 1})
	if err := w.Despawn(e); err != nil {
		t.Fatalf("Despawn: %v", err)
	}
	if err := w.Maintain(); err != nil {
		t.Fatalf("Maintain: %v", err)
	}

	_, err := GetComponent[Position](w, e)
	var nse NoSuchEntityError
	if !errors.As(err, &nse) {
		t.Errorf("expected NoSuchEntityError, got %T: %v", err, err)
	}
}

func TestGetComponentMissingComponentReturnsComponentNotFound(t *testing.T) {
	w := NewWorld()
	e, _ := Spawn1(w, Position{X: 1})

	_, err := GetComponent[Velocity](w, e)
	var cnf ComponentNotFoundError
	if !errors.As(err, &cnf) {
		t.Errorf("expected ComponentNotFoundError, got %T: %v", err, err)
	}
}

func TestMaintainWhileLockedReturnsError(t *testing.T) {
	w := NewWorld()
	w.lockForRead()
	defer w.unlockForRead()

	if err := w.Maintain(); err == nil {
		t.Fatalf("expected LockedWorldError while world is locked")
	}
}
