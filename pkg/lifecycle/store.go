package lifecycle

import (
	"context"
	"errors"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrEntryNotFound     = errors.New("key not found in store")
	ErrEntryExpired      = errors.New("entry expired")
	ErrStoreDisabled     = errors.New("store disabled")
	ErrKeyNotFoundInTier = errors.New("key not found in any store tier")
)

// Entry is one stored query result. Data is the JSON encoding of the fetched
// value so entries survive byte-oriented backends; decoded values read back
// through a store lose their concrete Go types.
type Entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	StaleAt   time.Time `json:"stale_at"`
	ETag      string    `json:"etag,omitempty"`
}

// Stale reports whether the entry is past its stale time.
func (e *Entry) Stale() bool {
	return time.Now().After(e.StaleAt)
}

// Expired reports whether the entry is past its lifetime.
func (e *Entry) Expired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Store is a cache backend: a keyed entry store with expiry. Implementations
// must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}
