package async_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langsync/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns computed result", func(t *testing.T) {
		t.Parallel()
		future := async.Async(context.Background(), 42, func(_ context.Context, n int) (string, error) {
			time.Sleep(10 * time.Millisecond)
			return fmt.Sprintf("Number: %d", n), nil
		})

		res, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, "Number: 42", res)
		assert.True(t, future.IsComplete())
	})

	t.Run("propagates callback error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		future := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			return 0, boom
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("pre-cancelled context skips callback", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		future := async.Async(ctx, 1, func(context.Context, int) (int, error) {
			called = true
			return 1, nil
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestFuture_Cancel(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	future := async.Async(context.Background(), "fr", func(ctx context.Context, lang string) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	})

	<-started
	future.Cancel()

	_, err := future.Await()
	assert.ErrorIs(t, err, context.Canceled)

	// repeated cancel is a no-op
	future.Cancel()
}

func TestFuture_AwaitWithTimeout(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), 1, func(ctx context.Context, _ int) (int, error) {
		select {
		case <-time.After(time.Second):
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	defer future.Cancel()

	_, err := future.AwaitWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)
	assert.False(t, future.IsComplete())
}

func TestFuture_AwaitContext(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	future := async.Async(context.Background(), 1, func(context.Context, int) (int, error) {
		<-block
		return 7, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := future.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(block)
	res, err := future.AwaitContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, res)
}

func TestResolved(t *testing.T) {
	t.Parallel()

	future := async.Resolved("en", nil)
	assert.True(t, future.IsComplete())

	select {
	case <-future.Done():
	default:
		t.Fatal("resolved future must be done")
	}

	res, err := future.Await()
	require.NoError(t, err)
	assert.Equal(t, "en", res)

	// cancel on a resolved future has nothing to cancel
	future.Cancel()
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("collects results in order", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		futures := make([]*async.Future[int], 0, 3)
		for i := range 3 {
			futures = append(futures, async.Async(ctx, i, func(_ context.Context, n int) (int, error) {
				time.Sleep(time.Duration(3-n) * 5 * time.Millisecond)
				return n * 10, nil
			}))
		}

		res, err := async.WaitAll(futures...)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 10, 20}, res)
	})

	t.Run("returns first error after all complete", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		errA := errors.New("a")
		errB := errors.New("b")

		slow := async.Async(ctx, 0, func(context.Context, int) (int, error) {
			time.Sleep(20 * time.Millisecond)
			return 0, errA
		})
		fast := async.Async(ctx, 0, func(context.Context, int) (int, error) {
			return 0, errB
		})

		_, err := async.WaitAll(slow, fast)
		assert.ErrorIs(t, err, errA)
		assert.True(t, slow.IsComplete())
		assert.True(t, fast.IsComplete())
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		res, err := async.WaitAll[string]()
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}
