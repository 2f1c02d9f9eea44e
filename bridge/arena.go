package bridge

import (
	"errors"
	"sync"
)

// ErrArenaFull is returned by Arena.Alloc once the id space is exhausted.
var ErrArenaFull = errors.New("bridge: arena id space exhausted")

// Arena is an in-memory Runtime. Ids start at 1 so the zero Handle never
// refers to a live value.
type Arena struct {
	mu      sync.RWMutex
	next    uint64
	objects map[uint64]any
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{
		objects: make(map[uint64]any),
	}
}

// Alloc implements Runtime.
func (a *Arena) Alloc(v any) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.next == ^uint64(0) {
		return 0, ErrArenaFull
	}

	a.next++
	a.objects[a.next] = v

	return a.next, nil
}

// Load implements Runtime.
func (a *Arena) Load(id uint64) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	v, ok := a.objects[id]

	return v, ok
}

// Release implements Runtime.
func (a *Arena) Release(id uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.objects, id)
}

// Len returns the number of live values.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.objects)
}
