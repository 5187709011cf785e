package fileops

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/HackerOS-Linux-System/ngt/vfs"
)

// Dispatcher serialises mutations whose location sets overlap. Operations
// on disjoint locations run concurrently.
type Dispatcher struct {
	mu      sync.Mutex
	active  map[uuid.UUID][]vfs.Location
	changed chan struct{}
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		active:  make(map[uuid.UUID][]vfs.Location),
		changed: make(chan struct{}),
	}
}

// Acquire blocks until no running operation overlaps locs, then registers
// a new operation. The returned release func must be called exactly once.
func (d *Dispatcher) Acquire(ctx context.Context, locs ...vfs.Location) (uuid.UUID, func(), error) {
	id := uuid.New()
	for {
		d.mu.Lock()
		if !d.conflicts(locs) {
			d.active[id] = locs
			d.mu.Unlock()
			return id, func() { d.release(id) }, nil
		}
		wait := d.changed
		d.mu.Unlock()

		select {
		case <-ctx.Done():
			return uuid.Nil, nil, ctx.Err()
		case <-wait:
		}
	}
}

func (d *Dispatcher) conflicts(locs []vfs.Location) bool {
	for _, held := range d.active {
		for _, h := range held {
			for _, l := range locs {
				if h.Overlaps(l) {
					return true
				}
			}
		}
	}
	return false
}

func (d *Dispatcher) release(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.active, id)
	close(d.changed)
	d.changed = make(chan struct{})
}

// Running reports how many operations currently hold locations.
func (d *Dispatcher) Running() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active)
}
