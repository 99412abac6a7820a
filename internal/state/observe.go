package state

import "sync"

// Listener is notified after a state container changed. Listeners run synchronously on the
// goroutine that performed the mutation, after the container's lock has been released, so
// they may read the container but must not block.
type Listener func()

// Observers is a registry of listeners. The zero value is ready to use.
type Observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]Listener
}

// Subscribe registers fn and returns a function that removes it.
func (o *Observers) Subscribe(fn Listener) (cancel func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fns == nil {
		o.fns = make(map[int]Listener)
	}
	id := o.next
	o.next++
	o.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.fns, id)
		})
	}
}

// Notify calls every registered listener in registration order.
func (o *Observers) Notify() {
	o.mu.Lock()
	fns := make([]Listener, 0, len(o.fns))
	for i := 0; i < o.next; i++ {
		if fn, ok := o.fns[i]; ok {
			fns = append(fns, fn)
		}
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
