package seq

import (
	"context"
	"iter"

	lfcontext "github.com/vnykmshr/lazyflow/pkg/common/context"
	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
	"github.com/vnykmshr/lazyflow/pkg/metrics"
)

const module = "seq"

// Cursor is the position of one traversal over a sequence.
// A cursor is owned by the traversal that created it and must not be
// advanced from more than one goroutine at a time.
type Cursor[T any] interface {
	// Next returns the next element and true, or the zero value and false once
	// the traversal is exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases the cursor and any upstream cursors it owns.
	Close() error
}

// Producer creates a fresh, independent cursor on every call.
type Producer[T any] func() Cursor[T]

// Sequence is a restartable, lazily evaluated series of values.
//
// A Sequence stores only a Producer. Combinators return new sequences whose
// producers wrap the upstream producer, and every terminal operation obtains
// a new cursor, so traversing the same Sequence twice runs the whole chain
// from the source twice and shares no iteration state.
type Sequence[T any] struct {
	produce Producer[T]
}

// New creates a Sequence from a producer. A nil producer is rejected with a
// validation error wrapping errors.ErrInvalidArgument.
func New[T any](produce Producer[T]) (*Sequence[T], error) {
	if produce == nil {
		return nil, lferrors.NewValidationError(module, "producer", nil, "cannot be nil").
			WithHint("pass a function that returns a fresh Cursor")
	}
	return derive(produce), nil
}

func derive[T any](produce Producer[T]) *Sequence[T] {
	return &Sequence[T]{produce: produce}
}

// Cursor starts a new traversal. The caller owns the cursor and must close it.
func (s *Sequence[T]) Cursor() Cursor[T] {
	cur := s.produce()
	if cur == nil {
		return &errCursor[T]{err: lferrors.NewOperationError(module, "Cursor", lferrors.ErrInvalidArgument).
			WithContext("producer returned a nil cursor")}
	}
	return cur
}

// Map returns a sequence of the results of applying mapper to each element.
// Use the package-level Map to change the element type.
func (s *Sequence[T]) Map(mapper func(T) T) *Sequence[T] {
	return Map(s, mapper)
}

// Filter returns a sequence of the elements that satisfy predicate.
// On an infinite sequence where no further element matches, a bounded
// terminal operation never returns unless its context is canceled.
func (s *Sequence[T]) Filter(predicate func(T) bool) *Sequence[T] {
	return derive(func() Cursor[T] {
		return &filterCursor[T]{src: s.Cursor(), predicate: predicate}
	})
}

// Skip returns a sequence without its first n elements.
func (s *Sequence[T]) Skip(n int) *Sequence[T] {
	if n <= 0 {
		return s
	}
	return derive(func() Cursor[T] {
		return &skipCursor[T]{src: s.Cursor(), count: n}
	})
}

// Limit returns a sequence truncated to at most maxSize elements.
func (s *Sequence[T]) Limit(maxSize int) *Sequence[T] {
	return derive(func() Cursor[T] {
		return &limitCursor[T]{src: s.Cursor(), remaining: maxSize}
	})
}

// Peek returns a sequence that calls action on each element as it is pulled.
func (s *Sequence[T]) Peek(action func(T)) *Sequence[T] {
	return derive(func() Cursor[T] {
		return &peekCursor[T]{src: s.Cursor(), action: action}
	})
}

// Instrument returns a sequence whose traversals are recorded in registry
// under name. A nil registry records nothing.
func (s *Sequence[T]) Instrument(registry *metrics.Registry, name string) *Sequence[T] {
	return derive(func() Cursor[T] {
		return &instrumentedCursor[T]{src: s.Cursor(), traversal: registry.StartTraversal(name)}
	})
}

// Take pulls up to n elements from a fresh traversal. It returns fewer when
// the sequence is exhausted first. For n <= 0 it returns an empty slice
// without starting a traversal.
func (s *Sequence[T]) Take(ctx context.Context, n int) ([]T, error) {
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
		value, ok, err := cur.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		result = append(result, value)
	}

	return result, nil
}

// ToSlice collects every element. It only returns for finite sequences.
func (s *Sequence[T]) ToSlice(ctx context.Context) ([]T, error) {
	result := make([]T, 0)
	err := drain(ctx, s, func(value T) error {
		result = append(result, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the number of elements.
func (s *Sequence[T]) Count(ctx context.Context) (int, error) {
	count := 0
	err := drain(ctx, s, func(T) error {
		count++
		return nil
	})
	return count, err
}

// First returns the first element, if present.
func (s *Sequence[T]) First(ctx context.Context) (T, bool, error) {
	var zero T

	cur := s.Cursor()
	defer func() { _ = cur.Close() }()

	if err := lfcontext.Check(ctx); err != nil {
		return zero, false, err
	}
	return cur.Next(ctx)
}

// ForEach calls action for each element in order. The first error returned
// by action stops the traversal and is returned unchanged.
func (s *Sequence[T]) ForEach(ctx context.Context, action func(T) error) error {
	return drain(ctx, s, action)
}

// All returns a range-over-func view of one traversal. Each range statement
// starts a new traversal. A non-nil error is yielded at most once and ends
// the iteration.
func (s *Sequence[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		cur := s.Cursor()
		defer func() { _ = cur.Close() }()

		for {
			if err := lfcontext.Check(ctx); err != nil {
				yield(zero, err)
				return
			}
			value, ok, err := cur.Next(ctx)
			if err != nil {
				yield(zero, err)
				return
			}
			if !ok || !yield(value, nil) {
				return
			}
		}
	}
}

// drain runs one complete traversal, handing every element to fn.
func drain[T any](ctx context.Context, s *Sequence[T], fn func(T) error) error {
	cur := s.Cursor()
	defer func() { _ = cur.Close() }()

	for {
		if err := lfcontext.Check(ctx); err != nil {
			return err
		}
		value, ok, err := cur.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(value); err != nil {
			return err
		}
	}
}
