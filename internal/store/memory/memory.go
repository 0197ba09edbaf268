// Package memory provides an in-process graph store used by tests and by
// the offline demo mode of the CLI.
package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/socialx/socialx-go/internal/common"
	"github.com/socialx/socialx-go/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps records in a flat map keyed by path.
type Store struct {
	mu   sync.RWMutex
	data map[store.Path]json.RawMessage
}

func New() *Store {
	return &Store{data: make(map[store.Path]json.RawMessage)}
}

func (s *Store) Get(ctx context.Context, path store.Path) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[path]
	if !ok {
		return nil, common.ErrNotFound
	}
	return v, nil
}

func (s *Store) Put(ctx context.Context, path store.Path, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[path] = raw
	return nil
}

func (s *Store) Map(ctx context.Context, path store.Path) (map[string]json.RawMessage, error) {
	prefix := string(path) + store.Separator
	out := make(map[string]json.RawMessage)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for p, v := range s.data {
		rest, ok := strings.CutPrefix(string(p), prefix)
		if !ok || rest == "" {
			continue
		}
		// direct children only
		if strings.Contains(rest, store.Separator) {
			continue
		}
		out[store.Unescape(rest)] = v
	}
	return out, nil
}

func (s *Store) Close() error { return nil }
