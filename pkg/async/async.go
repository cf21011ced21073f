package async

import (
	"context"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation.
// A Future started with Async can be cancelled; cancellation is cooperative
// and only reaches the computation through its context.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
	cancel context.CancelFunc
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to be done, whichever happens first.
// Returning early because of ctx does not cancel the computation.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// If the timeout occurs before completion, returns ErrTimeout.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed once the future completes.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Cancel cancels the context passed to the computation.
// It is safe to call on completed futures and more than once.
func (f *Future[U]) Cancel() {
	if f.cancel != nil {
		f.cancel()
	}
}

func (f *Future[U]) complete(res U, err error) {
	f.once.Do(func() {
		f.result = res
		f.err = err
		close(f.done)
	})
}

// Async executes a function asynchronously and returns a Future.
// The function receives a context derived from ctx which is cancelled when
// the future is cancelled or the function returns.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	ctx, cancel := context.WithCancel(ctx)
	f := &Future[U]{done: make(chan struct{}), cancel: cancel}

	go func() {
		defer cancel()

		// Early exit prevents goroutine work when context is pre-canceled
		if err := ctx.Err(); err != nil {
			var zero U
			f.complete(zero, err)
			return
		}

		res, err := fn(ctx, param)
		f.complete(res, err)
	}()

	return f
}

// Resolved returns an already completed future.
// Useful when a caller expects a Future but the work turned out to be a no-op.
func Resolved[U any](res U, err error) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}
	f.complete(res, err)
	return f
}

// WaitAll waits for all futures to complete and returns their results.
// The returned error is the first non-nil error in futures order; all futures
// are still awaited so no goroutine outlives the call.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	var firstErr error
	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}
