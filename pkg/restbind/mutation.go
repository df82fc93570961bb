package restbind

import (
	"context"

	"github.com/hexennacht/restbind/pkg/lifecycle"
)

// MutationFunc performs one direct write-style invocation per call: no
// deduplication, no caching. On a success status only the result's Data
// field is returned; a non-success status returns the raw *Result so the
// caller decides what failure means.
type MutationFunc func(ctx context.Context, call CallArgs) (any, error)

// CachedMutationFunc registers an execute function with the caching engine
// and returns an imperative handle. Options are passed through unmodified.
type CachedMutationFunc func(opts ...lifecycle.Option) (*CachedMutationHandle, error)

// CachedMutationHandle exposes the engine's mutation lifecycle with typed
// call arguments. Execute performs exactly one invocation per call.
type CachedMutationHandle struct {
	handle *lifecycle.MutationHandle
}

// Execute triggers one invocation with the given call arguments.
func (h *CachedMutationHandle) Execute(ctx context.Context, call CallArgs) (any, error) {
	return h.handle.Trigger(ctx, call)
}

// State returns the lifecycle state of the most recent execution.
func (h *CachedMutationHandle) State() lifecycle.State {
	return h.handle.State()
}

// Data returns the value of the most recent successful execution.
func (h *CachedMutationHandle) Data() any {
	return h.handle.Data()
}

// Err returns the error of the most recent failed execution.
func (h *CachedMutationHandle) Err() error {
	return h.handle.Err()
}

// makeMutation wraps the invoker in the direct write calling convention.
func makeMutation(route Route, args ConnectionArgs) MutationFunc {
	return func(ctx context.Context, call CallArgs) (any, error) {
		result, err := invoke(ctx, route, args, call, styleMutation)
		if err != nil {
			return nil, err
		}

		outcome := Classify(result, route)
		if outcome.Success {
			return result.Data, nil
		}

		// Mutation failure semantics belong to the consumer: hand back the
		// raw transport result instead of re-classifying it.
		return result, nil
	}
}

// makeCachedMutation wraps the direct mutation in the engine's execute slot.
func makeCachedMutation(route Route, args ConnectionArgs) CachedMutationFunc {
	execute := makeMutation(route, args)

	return func(opts ...lifecycle.Option) (*CachedMutationHandle, error) {
		if args.Engine == nil {
			return nil, ErrEngineRequired
		}

		handle := args.Engine.Mutation(func(ctx context.Context, input any) (any, error) {
			call, ok := input.(CallArgs)
			if !ok {
				return nil, ErrInvalidMutationInput
			}

			return execute(ctx, call)
		}, opts...)

		return &CachedMutationHandle{handle: handle}, nil
	}
}
