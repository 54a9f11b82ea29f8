package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used in tests and single-node
// deployments. Records are kept serialized so the implementation exercises
// the same encode/decode path as the redis store. Expired entries are
// dropped lazily on access.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// Save writes the record under the token with the given TTL.
func (s *MemoryStore) Save(ctx context.Context, token string, rec Record, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}

	s.mu.Lock()
	s.entries[token] = memoryEntry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()

	return nil
}

// Load reads the record stored under the token.
func (s *MemoryStore) Load(ctx context.Context, token string) (Record, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok {
		return Record{}, false, nil
	}

	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return Record{}, false, nil
	}

	var rec Record
	if err := json.Unmarshal(entry.data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("failed to decode session record: %w", err)
	}

	return rec, true, nil
}

// Delete removes the record stored under the token.
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()

	return nil
}
