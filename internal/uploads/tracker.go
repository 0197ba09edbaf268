// Package uploads tracks file-transfer state: one status record per local
// path, overwritten whole on every transition, driven by the three-phase
// upload protocol in Run.
package uploads

import (
	"context"
	"sync"
)

// Status is the upload record for one local file. Records move through
// progress 0→100; the terminal success state is done=true with a
// non-empty hash. A later upload for the same path supersedes the record
// rather than deleting it.
type Status struct {
	Path     string
	UploadID string
	Progress int
	Aborting bool
	Done     bool
	Hash     string
}

// Tracker holds upload records keyed by local path. All writes replace
// the whole record so readers never observe a partially written status.
type Tracker struct {
	mu      sync.Mutex
	byPath  map[string]Status
	cancels map[string]context.CancelFunc
}

func NewTracker() *Tracker {
	return &Tracker{
		byPath:  make(map[string]Status),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Set replaces the record for s.Path.
func (t *Tracker) Set(s Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byPath[s.Path] = s
}

// Get returns a copy of the record for path.
func (t *Tracker) Get(path string) (Status, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.byPath[path]
	return s, ok
}

// Abort cancels the in-flight transfer for path, if any, and marks the
// record aborting. The record reaches its terminal aborted state once the
// transfer unwinds (done stays false, no hash is recorded).
func (t *Tracker) Abort(path string) {
	t.mu.Lock()
	s, ok := t.byPath[path]
	if ok {
		s.Aborting = true
		t.byPath[path] = s
	}
	cancel := t.cancels[path]
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (t *Tracker) track(path string, cancel context.CancelFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancels[path] = cancel
}

func (t *Tracker) untrack(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.cancels, path)
}

func (t *Tracker) aborting(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.byPath[path].Aborting
}
