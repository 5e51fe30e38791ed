package store

import (
	"context"
	"errors"
)

// ErrNotFound reports a missing record, as opposed to a store that could
// not be reached. Callers rely on the distinction: entitlement checks fail
// closed on availability errors but treat a missing record as "not paid".
var ErrNotFound = errors.New("store: record not found")

// RecordStore is the key-value record service shared by all users. Records
// are addressed by (table, partitionKey, rowKey); writes are last-writer-wins
// with no locking.
type RecordStore interface {
	Get(ctx context.Context, table, partitionKey, rowKey string) ([]byte, error)
	Upsert(ctx context.Context, table, partitionKey, rowKey string, record []byte) error
	// List returns all records in a partition whose row key starts with
	// rowPrefix, keyed by row key.
	List(ctx context.Context, table, partitionKey, rowPrefix string) (map[string][]byte, error)
}
