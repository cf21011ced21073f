// Package async provides small generic helpers for running computations
// asynchronously and waiting for their completion.
//
// The package is centred around Future, the eventual result of an operation
// started with Async. The caller can wait with Await, AwaitContext or
// AwaitWithTimeout, poll with IsComplete, select on Done, or Cancel the
// computation. Cancellation is delivered through the context handed to the
// computation, so long-running work should watch ctx.Done().
//
// # Usage
//
//	future := async.Async(ctx, "fr", func(ctx context.Context, lang string) (string, error) {
//	    return loadBundle(ctx, lang)
//	})
//
//	// start a newer request and drop the old one
//	future.Cancel()
//
//	res, err := future.Await()
//
// WaitAll collects the results of several futures, returning the first error
// in argument order after every future has completed.
//
// # Error Handling
//
// Futures complete with the error returned by the callback, the context error
// when cancelled before starting, or ErrTimeout from AwaitWithTimeout.
package async
