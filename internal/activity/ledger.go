// Package activity implements the shared ledger of in-flight and finished
// operations. Every user-facing operation opens an entry here, and the UI
// renders spinners and error toasts from the broadcast transitions.
package activity

import (
	"sync"

	"github.com/google/uuid"

	"github.com/socialx/socialx-go/internal/common"
	"github.com/socialx/socialx-go/internal/events"
)

// Status is the lifecycle state of a ledger entry.
type Status string

const (
	StatusPending Status = "pending"
	StatusFailed  Status = "failed"
	StatusDone    Status = "done"
)

// Entry is one tracked operation. Once Status leaves StatusPending the
// entry is immutable.
type Entry struct {
	ID     uuid.UUID
	Kind   events.Kind
	Status Status
	Error  string
}

type entry struct {
	Entry
	ended bool
}

// Ledger tracks operations by id. Entries are keyed by a fresh UUID per
// operation instance, so concurrent operations of the same kind never
// collide. Constructed once at application start and injected everywhere.
type Ledger struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
	bus     *events.Bus
}

func NewLedger(bus *events.Bus) *Ledger {
	return &Ledger{
		entries: make(map[uuid.UUID]*entry),
		bus:     bus,
	}
}

// Begin inserts a pending entry and broadcasts the transition. Returns
// common.ErrActivityExists when id is already tracked; callers must
// generate a fresh id per operation instance.
func (l *Ledger) Begin(kind events.Kind, id uuid.UUID) error {
	l.mu.Lock()
	if _, ok := l.entries[id]; ok {
		l.mu.Unlock()
		return common.ErrActivityExists
	}
	l.entries[id] = &entry{Entry: Entry{ID: id, Kind: kind, Status: StatusPending}}
	l.mu.Unlock()

	l.bus.Publish(events.ActivityBegin(kind, id))
	return nil
}

// Fail marks the entry failed and records the message. The entry must
// still be pending; terminal entries reject further transitions with
// common.ErrActivityFinished. Fail does not close the entry — callers
// must still call End.
func (l *Ledger) Fail(kind events.Kind, id uuid.UUID, msg string) error {
	l.mu.Lock()
	e, ok := l.entries[id]
	if !ok {
		l.mu.Unlock()
		return common.ErrNotFound
	}
	if e.Status != StatusPending {
		l.mu.Unlock()
		return common.ErrActivityFinished
	}
	e.Status = StatusFailed
	e.Error = msg
	l.mu.Unlock()

	l.bus.Publish(events.ActivityFail(kind, id, msg))
	return nil
}

// End closes the entry: a pending entry becomes done, a failed entry keeps
// its status. The end transition is broadcast exactly once; repeated calls
// are no-ops. Every Begin must be paired with exactly one End regardless
// of the success or failure path.
func (l *Ledger) End(id uuid.UUID) {
	l.mu.Lock()
	e, ok := l.entries[id]
	if !ok || e.ended {
		l.mu.Unlock()
		return
	}
	e.ended = true
	if e.Status == StatusPending {
		e.Status = StatusDone
	}
	l.mu.Unlock()

	l.bus.Publish(events.ActivityEnd(id))
}

// Get returns a copy of the entry for id.
func (l *Ledger) Get(id uuid.UUID) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[id]
	if !ok {
		return Entry{}, false
	}
	return e.Entry, true
}

// Snapshot returns copies of all tracked entries.
func (l *Ledger) Snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.Entry)
	}
	return out
}
