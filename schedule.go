package keep

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/TheBitDrifter/keep/internal/arena"
	"golang.org/x/sync/errgroup"
)

// System is one scheduled unit of work: a Term declaring its component
// access plus the closure that runs under a WorldAccess scoped to that
// access.
type System struct {
	label  string
	term   Term
	access AccessSet
	run    func(*WorldAccess)
}

// Schedule holds an ordered set of systems; ExecuteParallel derives a
// conflict graph from their declared access on each call (spec §4.6,
// grounded on the original's schedule.rs wait/signal node graph).
type Schedule struct {
	systems []*System
	pool    *arena.Pool
}

// NewSchedule returns an empty Schedule. Prefer Factory.NewSchedule.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// AddSystem appends a system declaring term's access, running fn whenever
// the schedule executes.
func (s *Schedule) AddSystem(term Term, fn func(*WorldAccess)) *Schedule {
	return s.AddNamedSystem(fmt.Sprintf("system#%d", len(s.systems)), term, fn)
}

// AddNamedSystem is AddSystem with an explicit label, surfaced in panic
// traces raised while running it.
func (s *Schedule) AddNamedSystem(label string, term Term, fn func(*WorldAccess)) *Schedule {
	s.systems = append(s.systems, &System{
		label:  label,
		term:   term,
		access: NewAccessSet(term),
		run:    fn,
	})
	return s
}

// scheduleNode is one system's position in the conflict graph.
type scheduleNode struct {
	system  *System
	waits   atomic.Int32
	signals []int
}

// buildGraph derives wait counts and signal edges: node i waits on every
// earlier node j whose declared access conflicts with i's, which is
// sufficient (declaration order breaks ties) to serialize any two
// systems that could race on a shared component.
func (s *Schedule) buildGraph() []*scheduleNode {
	nodes := make([]*scheduleNode, len(s.systems))
	for i, sys := range s.systems {
		nodes[i] = &scheduleNode{system: sys}
	}
	for i := range s.systems {
		deps := 0
		for j := 0; j < i; j++ {
			if s.systems[i].access.ConflictsWith(s.systems[j].access) {
				nodes[j].signals = append(nodes[j].signals, i)
				deps++
			}
		}
		nodes[i].waits.Store(int32(deps) + 1)
	}
	return nodes
}

// Execute runs every system sequentially, in declaration order, under a
// single world read-lock held for the whole schedule.
func (s *Schedule) Execute(w *World, a *arena.Arena) error {
	w.lockForRead()
	defer w.unlockForRead()
	defer a.Reset()

	for _, sys := range s.systems {
		if err := runSystem(sys, w); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteParallel runs every system whose dependencies (per buildGraph)
// are satisfied concurrently, via a fixed pool of worker goroutines sized
// by the pool argument's Len. A panic inside any system is recovered
// and returned as an error from the group, aborting remaining unstarted
// work.
//
// Readiness propagation is decoupled from goroutine dispatch: completed
// nodes push their newly-ready successors onto a channel sized to hold
// every node at once, and a fixed set of long-lived workers drain it.
// An earlier version spawned a goroutine per newly-ready node from
// inside a running worker via errgroup's SetLimit, which could deadlock
// once a conflict chain ran deeper than the pool size (every worker
// blocked in g.Go waiting for a slot that only frees when one of them
// returns). Pushing to a channel never blocks on a free worker slot.
func (s *Schedule) ExecuteParallel(ctx context.Context, w *World, pool *arena.Pool) error {
	w.lockForRead()
	defer w.unlockForRead()
	defer pool.Reset()

	nodes := s.buildGraph()
	if len(nodes) == 0 {
		return nil
	}

	workers := pool.Len()
	if workers < 1 {
		workers = 1
	}
	if workers > len(nodes) {
		workers = len(nodes)
	}

	g, ctx := errgroup.WithContext(ctx)
	ready := make(chan int, len(nodes))
	var remaining atomic.Int32
	remaining.Store(int32(len(nodes)))

	// The "+1" baked into buildGraph's wait counts accounts for this
	// initial self-signal: a node with no conflicting predecessors
	// reaches zero here and is seeded straight onto the ready queue.
	for i, node := range nodes {
		if node.waits.Add(-1) == 0 {
			ready <- i
		}
	}

	for k := 0; k < workers; k++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case i, ok := <-ready:
					if !ok {
						return nil
					}
					node := nodes[i]
					if err := runSystem(node.system, w); err != nil {
						return err
					}
					for _, next := range node.signals {
						if nodes[next].waits.Add(-1) == 0 {
							ready <- next
						}
					}
					if remaining.Add(-1) == 0 {
						close(ready)
					}
				}
			}
		})
	}

	return g.Wait()
}

func runSystem(sys *System, w *World) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("system %q panicked: %v", sys.label, r)
		}
	}()
	wa := newWorldAccess(w, sys.access)
	sys.run(wa)
	return nil
}
