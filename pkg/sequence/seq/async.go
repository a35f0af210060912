package seq

import (
	"context"
	"fmt"

	lfcontext "github.com/vnykmshr/lazyflow/pkg/common/context"
	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
)

// AsyncSource supplies a batch of pending values. index is the number of
// elements the traversal has produced so far.
type AsyncSource[T any] func(ctx context.Context, index int) ([]Future[T], error)

// FromAsyncSource creates a sequence of count pending values drawn from
// source. Each traversal owns its buffer: source is called only when the
// buffer is empty, and buffered values are handed out one at a time until
// count values have been produced. An empty batch ends the traversal early.
func FromAsyncSource[T any](source AsyncSource[T], count int) (*Sequence[Future[T]], error) {
	if source == nil {
		return nil, lferrors.NewValidationError(module, "source", nil, "cannot be nil")
	}
	return derive(func() Cursor[Future[T]] {
		return &asyncSourceCursor[T]{source: source, count: count}
	}), nil
}

// Lift wraps every element of s in an already resolved future.
func Lift[T any](s *Sequence[T]) *Sequence[Future[T]] {
	return Map(s, Resolved[T])
}

// ForEachAsync walks s on a background goroutine, waiting for callback to
// return before pulling the next element, so callbacks never overlap and run
// in traversal order. The returned future settles when the walk ends; it
// carries the first callback error unchanged.
func (s *Sequence[T]) ForEachAsync(ctx context.Context, callback func(context.Context, T) error) Future[struct{}] {
	return Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.ForEach(ctx, func(value T) error {
			return callback(ctx, value)
		})
	})
}

// TakeAsync pulls up to n pending values from s on a background goroutine
// and awaits each one, in order, before pulling the next.
func TakeAsync[T any](ctx context.Context, s *Sequence[Future[T]], n int) Future[[]T] {
	return Go(ctx, func(ctx context.Context) ([]T, error) {
		result := make([]T, 0, min(max(n, 0), 1024))
		if n <= 0 {
			return result, nil
		}

		cur := s.Cursor()
		defer func() { _ = cur.Close() }()

		for len(result) < n {
			if err := lfcontext.Check(ctx); err != nil {
				return nil, err
			}
			pending, ok, err := cur.Next(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			if pending == nil {
				return nil, lferrors.NewOperationError(module, "TakeAsync", lferrors.ErrTypeMismatch).
					WithContext(fmt.Sprintf("element %d is a nil future", len(result)))
			}
			value, err := pending.Await(ctx)
			if err != nil {
				return nil, err
			}
			result = append(result, value)
		}

		return result, nil
	})
}

// asyncSourceCursor owns the refill buffer and produced-count of one traversal.
type asyncSourceCursor[T any] struct {
	source AsyncSource[T]
	count  int
	index  int
	buffer []Future[T]
	done   bool
}

func (c *asyncSourceCursor[T]) Next(ctx context.Context) (Future[T], bool, error) {
	if c.done || c.index >= c.count {
		return nil, false, nil
	}

	if len(c.buffer) == 0 {
		batch, err := c.source(ctx, c.index)
		if err != nil {
			return nil, false, err
		}
		if len(batch) == 0 {
			c.done = true
			return nil, false, nil
		}
		c.buffer = batch
	}

	value := c.buffer[0]
	c.buffer = c.buffer[1:]
	c.index++
	return value, true, nil
}

func (c *asyncSourceCursor[T]) Close() error {
	c.done = true
	c.buffer = nil
	return nil
}
