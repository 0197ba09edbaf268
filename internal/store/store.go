package store

import (
	"context"
	"encoding/json"
)

// Store is the graph-store client capability. Values are plain structured
// records; the store enforces no schema. Implementations must return
// common.ErrNotFound from Get when no record exists at the path.
type Store interface {
	// Get reads the record at path.
	Get(ctx context.Context, path Path) (json.RawMessage, error)

	// Put writes value at path, replacing any existing record.
	Put(ctx context.Context, path Path, value any) error

	// Map enumerates the children one level below path, keyed by their
	// unescaped segment. A path with no children yields an empty map.
	Map(ctx context.Context, path Path) (map[string]json.RawMessage, error)

	// Close releases the underlying connection, if any.
	Close() error
}
