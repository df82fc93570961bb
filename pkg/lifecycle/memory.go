package lifecycle

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/hexennacht/restbind/internal/constants"
)

const memoryShards = 16

// MemoryStore is a sharded in-memory Store with lazy expiry and a bounded
// entry count.
type MemoryStore struct {
	shards  []*memoryShard
	maxSize int
}

type memoryShard struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore creates a memory store holding at most maxSize entries.
// A maxSize of 0 applies the default bound.
func NewMemoryStore(maxSize int) *MemoryStore {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	shards := make([]*memoryShard, memoryShards)
	for i := range shards {
		shards[i] = &memoryShard{entries: make(map[string]*Entry)}
	}

	return &MemoryStore{shards: shards, maxSize: maxSize}
}

func (s *MemoryStore) shard(key string) *memoryShard {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))

	return s.shards[hash.Sum32()%memoryShards]
}

// Get retrieves an entry. Expired entries are removed and reported as
// expired.
func (s *MemoryStore) Get(ctx context.Context, key string) (*Entry, error) {
	shard := s.shard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry, ok := shard.entries[key]
	if !ok {
		return nil, ErrEntryNotFound
	}

	if entry.Expired() {
		delete(shard.entries, key)

		return nil, ErrEntryExpired
	}

	return entry, nil
}

// Set stores an entry, evicting the entry closest to expiry when the shard
// is at capacity.
func (s *MemoryStore) Set(ctx context.Context, key string, entry *Entry) error {
	shard := s.shard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if _, exists := shard.entries[key]; !exists && len(shard.entries) >= s.maxSize/memoryShards+1 {
		shard.evictOne()
	}

	shard.entries[key] = entry

	return nil
}

// evictOne removes an expired entry if one exists, otherwise the entry
// closest to expiry. Caller holds the shard lock.
func (shard *memoryShard) evictOne() {
	var (
		victim   string
		earliest time.Time
	)

	for key, entry := range shard.entries {
		if entry.Expired() {
			delete(shard.entries, key)

			return
		}

		if victim == "" || entry.ExpiresAt.Before(earliest) {
			victim = key
			earliest = entry.ExpiresAt
		}
	}

	if victim != "" {
		delete(shard.entries, victim)
	}
}

// Delete removes an entry.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	shard := s.shard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	delete(shard.entries, key)

	return nil
}

// Clear removes all entries.
func (s *MemoryStore) Clear(ctx context.Context) error {
	for _, shard := range s.shards {
		shard.mu.Lock()
		shard.entries = make(map[string]*Entry)
		shard.mu.Unlock()
	}

	return nil
}

// Has checks whether a live entry exists for key.
func (s *MemoryStore) Has(ctx context.Context, key string) bool {
	shard := s.shard(key)

	shard.mu.RLock()
	defer shard.mu.RUnlock()

	entry, ok := shard.entries[key]

	return ok && !entry.Expired()
}
