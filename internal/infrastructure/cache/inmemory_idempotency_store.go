// Package cache holds the idempotency stores that deduplicate resubmitted
// requests and redelivered events.
package cache

import (
	"context"
	"time"

	"github.com/paperfi/backend/internal/domain/shared"
	gocache "github.com/patrickmn/go-cache"
)

// defaultCleanupInterval is how often expired keys are swept
const defaultCleanupInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps keys in a process-local go-cache. It does
// not share state between instances.
type InMemoryIdempotencyStore struct {
	items *gocache.Cache
}

// NewInMemoryIdempotencyStore creates an empty store whose keys default to ttl
func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	if ttl <= 0 {
		ttl = shared.DefaultIdempotencyConfig().TTL
	}
	return &InMemoryIdempotencyStore{items: gocache.New(ttl, defaultCleanupInterval)}
}

// MarkProcessed claims key. go-cache's Add fails when an unexpired item
// exists, which makes the check-and-set atomic.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	if err := s.items.Add(key, struct{}{}, ttl); err != nil {
		return false, nil
	}
	return true, nil
}

// IsProcessed reports whether key is held and unexpired
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	_, found := s.items.Get(key)
	return found, nil
}

// Release drops key
func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.items.Delete(key)
	return nil
}

// Close flushes every key
func (s *InMemoryIdempotencyStore) Close() error {
	s.items.Flush()
	return nil
}

// Size returns the number of held keys, expired ones included until swept
func (s *InMemoryIdempotencyStore) Size() int {
	return s.items.ItemCount()
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
