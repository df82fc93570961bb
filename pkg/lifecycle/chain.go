package lifecycle

import "context"

// NoopStore is a Store that never holds anything, disabling caching while
// keeping deduplication.
type NoopStore struct{}

// NewNoopStore creates a new no-op store.
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

// Get always misses.
func (NoopStore) Get(ctx context.Context, key string) (*Entry, error) {
	return nil, ErrStoreDisabled
}

// Set does nothing.
func (NoopStore) Set(ctx context.Context, key string, entry *Entry) error { return nil }

// Delete does nothing.
func (NoopStore) Delete(ctx context.Context, key string) error { return nil }

// Clear does nothing.
func (NoopStore) Clear(ctx context.Context) error { return nil }

// Has always reports false.
func (NoopStore) Has(ctx context.Context, key string) bool { return false }

// StoreChain layers stores as tiers (L1, L2, ...): reads fall through and
// backfill earlier tiers, writes go to every tier.
type StoreChain struct {
	tiers []Store
}

// NewStoreChain creates a chain over the given tiers, first tier checked
// first.
func NewStoreChain(tiers ...Store) *StoreChain {
	return &StoreChain{tiers: tiers}
}

// Get returns the first hit, backfilling earlier tiers.
func (c *StoreChain) Get(ctx context.Context, key string) (*Entry, error) {
	for i, tier := range c.tiers {
		entry, err := tier.Get(ctx, key)
		if err != nil {
			continue
		}

		for j := 0; j < i; j++ {
			_ = c.tiers[j].Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, ErrKeyNotFoundInTier
}

// Set stores the entry in every tier, returning the last error.
func (c *StoreChain) Set(ctx context.Context, key string, entry *Entry) error {
	var lastErr error

	for _, tier := range c.tiers {
		if err := tier.Set(ctx, key, entry); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// Delete removes the entry from every tier, returning the last error.
func (c *StoreChain) Delete(ctx context.Context, key string) error {
	var lastErr error

	for _, tier := range c.tiers {
		if err := tier.Delete(ctx, key); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// Clear clears every tier, returning the last error.
func (c *StoreChain) Clear(ctx context.Context) error {
	var lastErr error

	for _, tier := range c.tiers {
		if err := tier.Clear(ctx); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// Has checks whether any tier holds a live entry for key.
func (c *StoreChain) Has(ctx context.Context, key string) bool {
	for _, tier := range c.tiers {
		if tier.Has(ctx, key) {
			return true
		}
	}

	return false
}
