package restbind

import (
	"context"

	"github.com/hexennacht/restbind/pkg/lifecycle"
)

// QueryFunc performs one direct query-style invocation: a single transport
// call classified against the route's response declaration, with no caching
// side effects.
type QueryFunc func(ctx context.Context, call CallArgs) (any, error)

// CachedQueryFunc registers a keyed fetch with the caching engine and
// returns the engine's query handle. The key is opaque to the core; entry
// identity and deduplication are entirely the engine's concern. Options are
// passed through unmodified.
type CachedQueryFunc func(ctx context.Context, key string, call CallArgs, opts ...lifecycle.Option) (*lifecycle.QueryHandle, error)

// makeQuery wraps the invoker in the direct read calling convention. A
// non-success status surfaces as an error so the caller's failure path is
// triggered uniformly.
func makeQuery(route Route, args ConnectionArgs) QueryFunc {
	return func(ctx context.Context, call CallArgs) (any, error) {
		result, err := invoke(ctx, route, args, call, styleQuery)
		if err != nil {
			return nil, err
		}

		outcome := Classify(result, route)
		if !outcome.Success {
			return nil, outcome.Err
		}

		return outcome.Payload, nil
	}
}

// makeCachedQuery wraps the direct query in the caching engine's fetch slot.
func makeCachedQuery(route Route, args ConnectionArgs) CachedQueryFunc {
	fetch := makeQuery(route, args)

	return func(ctx context.Context, key string, call CallArgs, opts ...lifecycle.Option) (*lifecycle.QueryHandle, error) {
		if args.Engine == nil {
			return nil, ErrEngineRequired
		}

		return args.Engine.Query(ctx, key, func(ctx context.Context) (any, error) {
			return fetch(ctx, call)
		}, opts...)
	}
}
