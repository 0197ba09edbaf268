package events

import (
	"slices"
	"sync"
)

// Callback receives every published event. Callbacks run synchronously on
// the publishing goroutine, so a subscriber observes events in exactly the
// order they were published.
type Callback func(Event)

type subscriber struct {
	id int
	cb Callback
}

// Bus is a process-wide fan-out of Events. The zero value is not usable;
// construct with NewBus. Safe for concurrent use. Subscribers are invoked
// on a snapshot of the list, so subscribing or unsubscribing from inside a
// callback is allowed.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers cb and returns a function that removes it.
func (b *Bus) Subscribe(cb Callback) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(slices.Clone(b.subs), subscriber{id: id, cb: cb})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		i := slices.IndexFunc(b.subs, func(s subscriber) bool { return s.id == id })
		if i < 0 {
			return
		}
		b.subs = slices.Delete(slices.Clone(b.subs), i, i+1)
	}
}

// Publish delivers e to every subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, s := range subs {
		s.cb(e)
	}
}
