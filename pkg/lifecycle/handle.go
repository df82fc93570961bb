package lifecycle

import (
	"context"
	"sync"
)

// QueryHandle is the immutable outcome of one Query registration: the
// lifecycle state plus data or error. Handles do not update after return;
// call Query again with the same key to observe newer state.
type QueryHandle struct {
	state     State
	data      any
	err       error
	fromCache bool
	shared    bool
}

// State returns the lifecycle state.
func (h *QueryHandle) State() State { return h.state }

// Data returns the query data. For stale handles this is the last cached
// value.
func (h *QueryHandle) Data() any { return h.data }

// Err returns the fetch error, if any.
func (h *QueryHandle) Err() error { return h.err }

// FromCache reports whether the data was served from the store without
// fetching.
func (h *QueryHandle) FromCache() bool { return h.fromCache }

// Shared reports whether the result was coalesced from a concurrent fetch
// with an equal key.
func (h *QueryHandle) Shared() bool { return h.shared }

// MutationHandle triggers one execution per call and records the latest
// outcome. Mutations are never deduplicated or cached.
type MutationHandle struct {
	execute ExecuteFunc

	mu    sync.Mutex
	state State
	data  any
	err   error
}

// Trigger performs exactly one execution with the given input.
func (h *MutationHandle) Trigger(ctx context.Context, input any) (any, error) {
	h.mu.Lock()
	h.state = StatePending
	h.mu.Unlock()

	value, err := h.execute(ctx, input)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err != nil {
		h.state = StateError
		h.err = err

		return nil, err
	}

	h.state = StateSuccess
	h.data = value
	h.err = nil

	return value, nil
}

// State returns the lifecycle state of the most recent execution.
func (h *MutationHandle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.state
}

// Data returns the value of the most recent successful execution.
func (h *MutationHandle) Data() any {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.data
}

// Err returns the error of the most recent failed execution.
func (h *MutationHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}
