package lifecycle

import (
	"context"
	"time"

	"github.com/hexennacht/restbind/internal/constants"
)

// State enumerates the lifecycle states of a managed entry.
type State int

const (
	// StatePending means a fetch or execution is in flight.
	StatePending State = iota

	// StateSuccess means the most recent fetch or execution succeeded.
	StateSuccess

	// StateError means the most recent fetch or execution failed.
	StateError

	// StateStale means cached data is being served past its stale time.
	StateStale
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// FetchFunc loads fresh data for a query entry.
type FetchFunc func(ctx context.Context) (any, error)

// ExecuteFunc performs one mutation. The input is whatever the registrant
// hands to MutationHandle.Trigger; the engine never inspects it.
type ExecuteFunc func(ctx context.Context, input any) (any, error)

// Engine is the caching and deduplication boundary query and mutation
// operations bind to. The engine owns entry identity, staleness, retry, and
// in-flight coalescing; registrants only supply conforming functions.
type Engine interface {
	Query(ctx context.Context, key string, fetch FetchFunc, opts ...Option) (*QueryHandle, error)
	Mutation(execute ExecuteFunc, opts ...Option) *MutationHandle
}

// EntryOptions adjust per-call lifecycle behavior.
type EntryOptions struct {
	// TTL is how long a successful result stays in the store.
	TTL time.Duration

	// StaleTime is how long a cached result is served without refetching.
	// Must not exceed TTL.
	StaleTime time.Duration

	// RetryMax is the number of additional fetch attempts after a failure.
	RetryMax int

	// RetryWait is the pause between fetch attempts.
	RetryWait time.Duration

	// ForceFresh skips the store read and always fetches.
	ForceFresh bool
}

// Option mutates EntryOptions.
type Option func(*EntryOptions)

// WithTTL sets the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(o *EntryOptions) { o.TTL = ttl }
}

// WithStaleTime sets how long a cached result is served without refetching.
func WithStaleTime(staleTime time.Duration) Option {
	return func(o *EntryOptions) { o.StaleTime = staleTime }
}

// WithRetry sets the fetch retry policy.
func WithRetry(retryMax int, retryWait time.Duration) Option {
	return func(o *EntryOptions) {
		o.RetryMax = retryMax
		o.RetryWait = retryWait
	}
}

// WithForceFresh skips the store read and always fetches.
func WithForceFresh() Option {
	return func(o *EntryOptions) { o.ForceFresh = true }
}

// DefaultEntryOptions returns the engine-wide defaults.
func DefaultEntryOptions() EntryOptions {
	return EntryOptions{
		TTL:       constants.DefaultTTL,
		StaleTime: constants.DefaultStaleTime,
	}
}
