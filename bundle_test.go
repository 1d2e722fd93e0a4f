package keep

import (
	"errors"
	"testing"
)

func TestSpawnDynamicWritesDeclaredComponents(t *testing.T) {
	w := NewWorld()
	infos := []ComponentInfo{componentInfoOf[Position](), componentInfoOf[Velocity]()}

	e, err := SpawnDynamic(w, infos, func(u *UninitComponents) error {
		if err := WriteComponent(u, Position{X: 1, Y: 2}); err != nil {
			return err
		}
		return WriteComponent(u, Velocity{X: 3, Y: 4})
	})
	if err != nil {
		t.Fatalf("SpawnDynamic: %v", err)
	}

	pos, err := GetComponent[Position](w, e)
	if err != nil || pos.X != 1 || pos.Y != 2 {
		t.Errorf("Position = %+v, err=%v, want {1 2}", pos, err)
	}
	vel, err := GetComponent[Velocity](w, e)
	if err != nil || vel.X != 3 || vel.Y != 4 {
		t.Errorf("Velocity = %+v, err=%v, want {3 4}", vel, err)
	}
}

func TestSpawnDynamicIncompleteInitDropsEntity(t *testing.T) {
	w := NewWorld()
	infos := []ComponentInfo{componentInfoOf[Position](), componentInfoOf[Velocity]()}

	_, err := SpawnDynamic(w, infos, func(u *UninitComponents) error {
		return WriteComponent(u, Position{X: 1})
	})
	var ibe IncompleteBundleError
	if !errors.As(err, &ibe) {
		t.Fatalf("expected IncompleteBundleError, got %T: %v", err, err)
	}

	a := w.archetypeFor(infos)
	if a.Len() != 0 {
		t.Errorf("archetype should hold no rows after incomplete init, got %d", a.Len())
	}

	e2, err := SpawnDynamic(w, infos, func(u *UninitComponents) error {
		if err := WriteComponent(u, Position{X: 9}); err != nil {
			return err
		}
		return WriteComponent(u, Velocity{X: 9})
	})
	if err != nil {
		t.Fatalf("SpawnDynamic after failed spawn: %v", err)
	}
	if !w.Alive(e2) {
		t.Errorf("entity from the retry spawn should be alive")
	}
	if a.Len() != 1 {
		t.Errorf("archetype should hold exactly the retry's row, got %d", a.Len())
	}
}

func TestSpawnDynamicInitErrorDropsEntity(t *testing.T) {
	w := NewWorld()
	infos := []ComponentInfo{componentInfoOf[Position]()}
	sentinel := errors.New("boom")

	_, err := SpawnDynamic(w, infos, func(u *UninitComponents) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	a := w.archetypeFor(infos)
	if a.Len() != 0 {
		t.Errorf("archetype should hold no rows after init error, got %d", a.Len())
	}
}
