package sql

import (
	"context"
)

// Future is the deferred result of a function started by Async. It resolves
// exactly once, either with a value or with an error.
//
//	f := sql.Async(ctx, client.Use("users").Where("age", ">", 18).Get)
//	// ...
//	rows, err := f.Await(ctx)
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Async runs fn on a new goroutine and returns its Future.
func Async[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		v, err := fn(ctx)
		if err != nil {
			f.err = err
			return
		}
		f.value = v
	}()
	return f
}

// Done is closed when the future is resolved.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await waits for the future or for ctx to be done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then calls cb with the result once the future is resolved. cb runs on
// its own goroutine.
func (f *Future[T]) Then(cb func(T, error)) {
	go func() {
		<-f.done
		cb(f.value, f.err)
	}()
}

// Callback runs fn asynchronously and passes its result to cb.
func Callback[T any](ctx context.Context, fn func(context.Context) (T, error), cb func(T, error)) {
	Async(ctx, fn).Then(cb)
}
