// Package relay implements the graph store capability over a websocket
// connection to a relay peer. Requests and replies are JSON frames
// correlated by id; a single reader goroutine dispatches replies to
// waiting callers.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/socialx/socialx-go/internal/common"
	"github.com/socialx/socialx-go/internal/logging"
	"github.com/socialx/socialx-go/internal/store"
)

const (
	opGet      = "get"
	opPut      = "put"
	opMap      = "map"
	opAck      = "ack"
	opValue    = "value"
	opChildren = "children"

	errNotFound = "not found"
)

// frame is the wire format exchanged with the relay.
type frame struct {
	ID       uint64                     `json:"id"`
	Op       string                     `json:"op"`
	Path     string                     `json:"path,omitempty"`
	Value    json.RawMessage            `json:"value,omitempty"`
	Children map[string]json.RawMessage `json:"children,omitempty"`
	Err      string                     `json:"err,omitempty"`
}

var _ store.Store = (*Store)(nil)

// Store is a websocket-backed store.Store. Safe for concurrent use.
type Store struct {
	conn *websocket.Conn
	log  logging.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[uint64]chan frame

	nextID atomic.Uint64

	closed    chan struct{}
	closeOnce sync.Once
}

// Dial connects to the relay at url (ws:// or wss://) and starts the
// reader goroutine.
func Dial(ctx context.Context, url string, log logging.Logger) (*Store, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("relay dial: %w", err)
	}
	s := &Store{
		conn:    conn,
		log:     log,
		pending: make(map[uint64]chan frame),
		closed:  make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

func (s *Store) readLoop() {
	for {
		var f frame
		if err := s.conn.ReadJSON(&f); err != nil {
			s.log.Warn(context.Background(), "relay read loop terminated", "error", err)
			s.shutdown()
			return
		}
		s.mu.Lock()
		ch, ok := s.pending[f.ID]
		if ok {
			delete(s.pending, f.ID)
		}
		s.mu.Unlock()
		if ok {
			ch <- f
		}
	}
}

func (s *Store) shutdown() {
	s.closeOnce.Do(func() {
		close(s.closed)
		_ = s.conn.Close()
	})
}

// request sends f and waits for the correlated reply.
func (s *Store) request(ctx context.Context, f frame) (frame, error) {
	f.ID = s.nextID.Add(1)

	ch := make(chan frame, 1)
	s.mu.Lock()
	s.pending[f.ID] = ch
	s.mu.Unlock()

	s.writeMu.Lock()
	err := s.conn.WriteJSON(f)
	s.writeMu.Unlock()
	if err != nil {
		s.mu.Lock()
		delete(s.pending, f.ID)
		s.mu.Unlock()
		return frame{}, fmt.Errorf("relay write: %w", err)
	}

	select {
	case reply := <-ch:
		if reply.Err == errNotFound {
			return frame{}, common.ErrNotFound
		}
		if reply.Err != "" {
			return frame{}, fmt.Errorf("relay: %s", reply.Err)
		}
		return reply, nil
	case <-ctx.Done():
		s.mu.Lock()
		delete(s.pending, f.ID)
		s.mu.Unlock()
		return frame{}, ctx.Err()
	case <-s.closed:
		return frame{}, common.ErrRelayClosed
	}
}

func (s *Store) Get(ctx context.Context, path store.Path) (json.RawMessage, error) {
	reply, err := s.request(ctx, frame{Op: opGet, Path: path.String()})
	if err != nil {
		return nil, err
	}
	if reply.Op != opValue {
		return nil, fmt.Errorf("relay: unexpected reply %q", reply.Op)
	}
	return reply.Value, nil
}

func (s *Store) Put(ctx context.Context, path store.Path, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	reply, err := s.request(ctx, frame{Op: opPut, Path: path.String(), Value: raw})
	if err != nil {
		return err
	}
	if reply.Op != opAck {
		return fmt.Errorf("relay: unexpected reply %q", reply.Op)
	}
	return nil
}

func (s *Store) Map(ctx context.Context, path store.Path) (map[string]json.RawMessage, error) {
	reply, err := s.request(ctx, frame{Op: opMap, Path: path.String()})
	if err != nil {
		return nil, err
	}
	if reply.Op != opChildren {
		return nil, fmt.Errorf("relay: unexpected reply %q", reply.Op)
	}
	out := make(map[string]json.RawMessage, len(reply.Children))
	for k, v := range reply.Children {
		out[store.Unescape(k)] = v
	}
	return out, nil
}

func (s *Store) Close() error {
	s.shutdown()
	return nil
}
