package keep

import "github.com/TheBitDrifter/keep/internal/arena"

// factory implements the single construction entry point for keep's core
// types, matching the teacher's factory.go package-level singleton
// pattern.
type factory struct{}

// Factory is the global factory instance for creating worlds, schedules,
// and arenas.
var Factory factory

// NewWorld creates a new, empty World.
func (f factory) NewWorld() *World {
	return NewWorld()
}

// NewSchedule creates a new, empty Schedule.
func (f factory) NewSchedule() *Schedule {
	return NewSchedule()
}

// NewArena creates a scratch Arena for a single sequential Schedule.Execute.
func (f factory) NewArena() *arena.Arena {
	return arena.New()
}

// NewArenaPool creates a Pool of per-worker arenas sized for
// Schedule.ExecuteParallel.
func (f factory) NewArenaPool(workers int) *arena.Pool {
	return arena.NewPool(workers)
}

// FactoryNewComponent returns T's ComponentInfo, registering it in the
// process-wide component registry if this is the first time T has been
// seen.
func FactoryNewComponent[T any]() ComponentInfo {
	return componentInfoOf[T]()
}
