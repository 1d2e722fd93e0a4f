/*
Package keep provides an archetype-based Entity-Component-System (ECS) core
with a conflict-aware parallel scheduler.

Keep stores heterogeneous entity data in columnar chunks grouped by exact
component signature (the archetype), exposes those stores to user-supplied
systems through views that declare component access intent, and executes
systems on a worker pool such that no two systems holding conflicting access
to the same archetype run simultaneously, while preserving a deterministic
order for conflicting pairs.

Core Concepts:

  - Entity: an opaque handle (index, generation) into the world's directory.
  - Component: a data attribute attached to an entity.
  - Archetype: the exact set of component types an entity carries.
  - View: a description of what a system reads/writes, combining filter,
    access intent, and iteration shape.
  - Schedule: an ordered list of (accessor, closure) pairs that runs
    sequentially or on a worker pool without two conflicting systems ever
    running concurrently.

Basic Usage:

	world := keep.Factory.NewWorld()

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	entity, err := keep.Spawn2(world, Position{}, Velocity{X: 1, Y: 0})

	schedule := keep.Factory.NewSchedule()
	schedule.AddSystem(keep.Write[Velocity](), func(access *keep.WorldAccess) {
		for vel := range keep.Query1[Velocity](access, keep.Write[Velocity]()) {
			vel.X *= 0.9
		}
	})

	arena := keep.Factory.NewArena()
	schedule.Execute(world, arena)

Keep is a library, not a process; it has no CLI or wire format.
*/
package keep
