package lifecycle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightGroup_SingleCaller(t *testing.T) {
	t.Parallel()

	group := newFlightGroup()

	value, shared, err := group.do(context.Background(), "key", func() (any, error) {
		return "result", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "result", value)
	assert.False(t, shared)
}

func TestFlightGroup_CoalescesConcurrentCallers(t *testing.T) {
	t.Parallel()

	group := newFlightGroup()

	var (
		calls   atomic.Int32
		started = make(chan struct{})
		release = make(chan struct{})
	)

	go func() {
		_, _, _ = group.do(context.Background(), "key", func() (any, error) {
			calls.Add(1)
			close(started)
			<-release

			return "owned", nil
		})
	}()

	<-started

	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			value, shared, err := group.do(context.Background(), "key", func() (any, error) {
				calls.Add(1)

				return "late", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "owned", value)
			assert.True(t, shared)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestFlightGroup_PropagatesOwnerError(t *testing.T) {
	t.Parallel()

	group := newFlightGroup()
	errOwner := errors.New("owner failed")

	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _, _ = group.do(context.Background(), "key", func() (any, error) {
			close(started)
			<-release

			return nil, errOwner
		})
	}()

	<-started

	done := make(chan struct{})

	go func() {
		defer close(done)

		_, shared, err := group.do(context.Background(), "key", func() (any, error) {
			return "unused", nil
		})
		assert.True(t, shared)
		assert.ErrorIs(t, err, errOwner)
	}()

	time.Sleep(10 * time.Millisecond)
	close(release)
	<-done
}

func TestFlightGroup_WaiterCancellation(t *testing.T) {
	t.Parallel()

	group := newFlightGroup()

	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _, _ = group.do(context.Background(), "key", func() (any, error) {
			close(started)
			<-release

			return "slow", nil
		})
	}()

	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, shared, err := group.do(ctx, "key", func() (any, error) {
		return "unused", nil
	})
	assert.True(t, shared)
	require.ErrorIs(t, err, context.Canceled)

	close(release)
}

func TestFlightGroup_KeyReusableAfterCompletion(t *testing.T) {
	t.Parallel()

	group := newFlightGroup()

	var calls atomic.Int32

	for i := 0; i < 2; i++ {
		_, shared, err := group.do(context.Background(), "key", func() (any, error) {
			calls.Add(1)

			return nil, nil
		})
		require.NoError(t, err)
		assert.False(t, shared)
	}

	assert.Equal(t, int32(2), calls.Load())
}
