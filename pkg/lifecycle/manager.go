package lifecycle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Manager is the default in-process Engine: keyed entries with TTL and
// stale tracking backed by a Store, in-flight deduplication of equal keys,
// and optional retry of failed fetches.
type Manager struct {
	store    Store
	flights  *flightGroup
	defaults EntryOptions
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithStore sets the backing store. Defaults to a bounded memory store.
func WithStore(store Store) ManagerOption {
	return func(m *Manager) { m.store = store }
}

// WithDefaults sets the engine-wide entry option defaults.
func WithDefaults(defaults EntryOptions) ManagerOption {
	return func(m *Manager) { m.defaults = defaults }
}

// NewManager creates a manager with an in-memory store and default entry
// options unless overridden.
func NewManager(opts ...ManagerOption) *Manager {
	manager := &Manager{
		store:    NewMemoryStore(0),
		flights:  newFlightGroup(),
		defaults: DefaultEntryOptions(),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// Query resolves one keyed read through the entry lifecycle:
//
//   - a fresh stored entry is served without fetching (StateSuccess,
//     FromCache);
//   - otherwise the fetch runs, coalesced with concurrent fetches for the
//     same key and retried per the options;
//   - a failed refetch with stale data on hand serves the stale value
//     (StateStale) alongside the error;
//   - a failed fetch with nothing stored yields StateError.
//
// Fetch outcomes live on the handle; the error return is reserved for
// waiting being cut short by context cancellation.
func (m *Manager) Query(ctx context.Context, key string, fetch FetchFunc, opts ...Option) (*QueryHandle, error) {
	options := m.defaults
	for _, opt := range opts {
		opt(&options)
	}

	var staleEntry *Entry

	if !options.ForceFresh {
		entry, err := m.store.Get(ctx, key)
		if err == nil {
			value, decodeErr := decodeEntry(entry)

			switch {
			case decodeErr != nil:
				// Undecodable entry: refetch.
			case !entry.Stale():
				return &QueryHandle{state: StateSuccess, data: value, fromCache: true}, nil
			default:
				staleEntry = entry
			}
		}
	}

	value, shared, err := m.flights.do(ctx, key, func() (any, error) {
		return m.fetchWithRetry(ctx, fetch, options)
	})

	if err != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("waiting for fetch: %w", err)
	}

	if err != nil {
		if staleEntry != nil {
			if staleValue, decodeErr := decodeEntry(staleEntry); decodeErr == nil {
				return &QueryHandle{state: StateStale, data: staleValue, err: err, fromCache: true, shared: shared}, nil
			}
		}

		return &QueryHandle{state: StateError, err: err, shared: shared}, nil
	}

	if !shared {
		m.storeValue(ctx, key, value, options)
	}

	return &QueryHandle{state: StateSuccess, data: value, shared: shared}, nil
}

// Mutation registers an execute function and returns its imperative handle.
// Options are accepted for pass-through symmetry with Query; mutations are
// never cached, deduplicated, or retried by the engine.
func (m *Manager) Mutation(execute ExecuteFunc, opts ...Option) *MutationHandle {
	return &MutationHandle{execute: execute}
}

// Invalidate drops the stored entry for a key.
func (m *Manager) Invalidate(ctx context.Context, key string) error {
	if err := m.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidating %q: %w", key, err)
	}

	return nil
}

// Clear drops every stored entry.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}

	return nil
}

func (m *Manager) fetchWithRetry(ctx context.Context, fetch FetchFunc, options EntryOptions) (any, error) {
	var lastErr error

	for attempt := 0; attempt <= options.RetryMax; attempt++ {
		if attempt > 0 && options.RetryWait > 0 {
			select {
			case <-time.After(options.RetryWait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		value, err := fetch(ctx)
		if err == nil {
			return value, nil
		}

		lastErr = err
	}

	return nil, lastErr
}

func (m *Manager) storeValue(ctx context.Context, key string, value any, options EntryOptions) {
	encoded, err := json.Marshal(value)
	if err != nil {
		// Unencodable values stay fetch-only.
		return
	}

	now := time.Now()

	_ = m.store.Set(ctx, key, &Entry{
		Data:      encoded,
		ExpiresAt: now.Add(options.TTL),
		StaleAt:   now.Add(options.StaleTime),
	})
}

func decodeEntry(entry *Entry) (any, error) {
	var value any

	if err := json.Unmarshal(entry.Data, &value); err != nil {
		return nil, fmt.Errorf("decoding cached entry: %w", err)
	}

	return value, nil
}
