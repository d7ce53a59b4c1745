package state

import (
	"maps"
	"slices"
	"sync"
)

// observers holds the callbacks registered on a container
type observers[S any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(S)
}

// subscribe registers fn and returns a function that removes it
func (o *observers[S]) subscribe(fn func(S)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fns == nil {
		o.fns = make(map[int]func(S))
	}
	id := o.next
	o.next++
	o.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.fns, id)
			o.mu.Unlock()
		})
	}
}

// notify delivers snap to every observer in registration order.
// Callers must not hold the container lock.
func (o *observers[S]) notify(snap S) {
	o.mu.Lock()
	ids := slices.Sorted(maps.Keys(o.fns))
	fns := make([]func(S), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, o.fns[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
