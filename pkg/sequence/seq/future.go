package seq

import (
	"context"
	"errors"
	"sync"
)

// Future is a value that may not be available yet.
type Future[T any] interface {
	// Await blocks until the value is available or ctx is done.
	Await(ctx context.Context) (T, error)
}

type settled[T any] struct {
	value T
	err   error
}

func (f settled[T]) Await(_ context.Context) (T, error) {
	return f.value, f.err
}

// Resolved returns a future that is already available.
func Resolved[T any](value T) Future[T] {
	return settled[T]{value: value}
}

// Rejected returns a future that fails with err.
func Rejected[T any](err error) Future[T] {
	return settled[T]{err: err}
}

// deferred computes its value on the first Await that is not ended by its
// own caller's cancellation.
type deferred[T any] struct {
	mu       sync.Mutex
	done     bool
	fn       func(context.Context) (T, error)
	value    T
	err      error
	panicked any
}

// Deferred returns a future computed by fn on first Await, using that
// caller's context. Later Awaits return the same result, and a panic in fn
// is re-raised in every Await. A result that is the caller's own context
// error is not kept: the next Await runs fn again.
func Deferred[T any](fn func(context.Context) (T, error)) Future[T] {
	return &deferred[T]{fn: fn}
}

func (f *deferred[T]) Await(ctx context.Context) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.done {
		value, err := f.run(ctx)
		if f.panicked == nil && err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return value, err
		}
		f.value, f.err, f.done = value, err, true
	}
	if f.panicked != nil {
		panic(f.panicked)
	}
	return f.value, f.err
}

func (f *deferred[T]) run(ctx context.Context) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			f.panicked = r
		}
	}()
	return f.fn(ctx)
}

// promise is settled by a background goroutine.
type promise[T any] struct {
	done     chan struct{}
	value    T
	err      error
	panicked any
}

// Go runs fn on a new goroutine and returns a future for its result.
// A panic in fn is re-raised in every Await.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) Future[T] {
	p := &promise[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil {
				p.panicked = r
			}
		}()
		p.value, p.err = fn(ctx)
	}()
	return p
}

func (p *promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		if p.panicked != nil {
			panic(p.panicked)
		}
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
