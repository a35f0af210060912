package seq

import (
	"context"
	"iter"

	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
)

// Number is the set of element types FromProgression accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// FromProgression creates the infinite sequence start, start+step, start+2*step, ...
// A zero step repeats start forever; a negative step descends forever.
func FromProgression[N Number](start, step N) *Sequence[N] {
	return derive(func() Cursor[N] {
		return &progressionCursor[N]{next: start, step: step}
	})
}

// Naturals creates the infinite sequence 0, 1, 2, ...
func Naturals() *Sequence[int] {
	return FromProgression(0, 1)
}

// FromCollection creates a finite sequence over items. Each traversal reads
// items from the beginning; the slice is not copied.
func FromCollection[T any](items []T) *Sequence[T] {
	return derive(func() Cursor[T] {
		return &sliceCursor[T]{items: items}
	})
}

// FromSlice is an alias for FromCollection.
func FromSlice[T any](items []T) *Sequence[T] {
	return FromCollection(items)
}

// Of creates a finite sequence of the given values.
func Of[T any](values ...T) *Sequence[T] {
	return FromCollection(values)
}

// FromSeq adapts a range-over-func iterator. Every traversal ranges seq
// again, so seq itself must be restartable.
func FromSeq[T any](seq iter.Seq[T]) *Sequence[T] {
	return derive(func() Cursor[T] {
		return &pullCursor[T]{seq: seq}
	})
}

// Unfold creates a sequence from a seed and a step function. step returns
// the element for the current state, the next state, and false to stop.
func Unfold[S, T any](seed S, step func(S) (T, S, bool)) *Sequence[T] {
	return derive(func() Cursor[T] {
		return &unfoldCursor[S, T]{state: seed, step: step}
	})
}

// Empty creates an empty sequence.
func Empty[T any]() *Sequence[T] {
	return derive(func() Cursor[T] {
		return &sliceCursor[T]{}
	})
}

// progressionCursor yields an arithmetic recurrence with no end.
type progressionCursor[N Number] struct {
	next N
	step N
}

func (c *progressionCursor[N]) Next(_ context.Context) (N, bool, error) {
	value := c.next
	c.next += c.step
	return value, true, nil
}

func (c *progressionCursor[N]) Close() error {
	return nil
}

// sliceCursor yields the elements of a slice in order.
type sliceCursor[T any] struct {
	items []T
	index int
}

func (c *sliceCursor[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if c.index >= len(c.items) {
		return zero, false, nil
	}
	value := c.items[c.index]
	c.index++
	return value, true, nil
}

func (c *sliceCursor[T]) Close() error {
	c.index = len(c.items)
	return nil
}

// pullCursor drives an iter.Seq with iter.Pull, started on the first Next.
type pullCursor[T any] struct {
	seq    iter.Seq[T]
	next   func() (T, bool)
	stop   func()
	closed bool
}

func (c *pullCursor[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if c.closed {
		return zero, false, lferrors.ErrClosed
	}
	if c.next == nil {
		c.next, c.stop = iter.Pull(c.seq)
	}
	value, ok := c.next()
	return value, ok, nil
}

func (c *pullCursor[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.stop != nil {
		c.stop()
	}
	return nil
}

// unfoldCursor applies step to its own copy of the state.
type unfoldCursor[S, T any] struct {
	state S
	step  func(S) (T, S, bool)
	done  bool
}

func (c *unfoldCursor[S, T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if c.done {
		return zero, false, nil
	}
	value, next, ok := c.step(c.state)
	if !ok {
		c.done = true
		return zero, false, nil
	}
	c.state = next
	return value, true, nil
}

func (c *unfoldCursor[S, T]) Close() error {
	c.done = true
	return nil
}

// errCursor fails every Next with the same error.
type errCursor[T any] struct {
	err error
}

func (c *errCursor[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, c.err
}

func (c *errCursor[T]) Close() error {
	return nil
}
