package store

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is an in-process RecordStore. It backs anonymous sessions
// (progress kept only for the lifetime of the page session that created it)
// and test setups. Create one per session and pass it by reference; it is
// deliberately not a package-level singleton.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, table, partitionKey, rowKey string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[recordKey(table, partitionKey, rowKey)]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, table, partitionKey, rowKey string, record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(record))
	copy(stored, record)
	s.records[recordKey(table, partitionKey, rowKey)] = stored
	return nil
}

func (s *MemoryStore) List(ctx context.Context, table, partitionKey, rowPrefix string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keyPrefix := recordKey(table, partitionKey, "")
	result := make(map[string][]byte)
	for key, record := range s.records {
		if !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		rowKey := strings.TrimPrefix(key, keyPrefix)
		if !strings.HasPrefix(rowKey, rowPrefix) {
			continue
		}
		result[rowKey] = record
	}
	return result, nil
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
