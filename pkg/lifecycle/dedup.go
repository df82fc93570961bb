package lifecycle

import (
	"context"
	"sync"
)

// flight is one in-flight fetch shared between callers.
type flight struct {
	done  chan struct{}
	value any
	err   error
}

// flightGroup coalesces concurrent fetches for equal keys: the first caller
// owns the fetch, later callers wait on its result.
type flightGroup struct {
	mu       sync.Mutex
	inflight map[string]*flight
}

func newFlightGroup() *flightGroup {
	return &flightGroup{inflight: make(map[string]*flight)}
}

// do runs fn for key, or waits for an already-running fn with the same key.
// shared reports whether the caller joined another caller's fetch.
func (g *flightGroup) do(ctx context.Context, key string, fn func() (any, error)) (value any, shared bool, err error) {
	g.mu.Lock()

	if existing, ok := g.inflight[key]; ok {
		g.mu.Unlock()

		select {
		case <-existing.done:
			return existing.value, true, existing.err
		case <-ctx.Done():
			return nil, true, ctx.Err()
		}
	}

	current := &flight{done: make(chan struct{})}
	g.inflight[key] = current
	g.mu.Unlock()

	current.value, current.err = fn()
	close(current.done)

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return current.value, false, current.err
}
