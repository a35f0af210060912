package seq

import (
	"context"
	"errors"
	"fmt"

	lfcontext "github.com/vnykmshr/lazyflow/pkg/common/context"
	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
	"github.com/vnykmshr/lazyflow/pkg/common/validation"
	"github.com/vnykmshr/lazyflow/pkg/metrics"
)

// Map returns a sequence of mapper applied to each element of s.
func Map[T, U any](s *Sequence[T], mapper func(T) U) *Sequence[U] {
	return derive(func() Cursor[U] {
		return &mapCursor[T, U]{src: s.Cursor(), mapper: mapper}
	})
}

// Expansion is the result of a FlatMap callback: either a finite collection
// (Items, Slice) or another sequence (Nested). It cannot be implemented
// outside this package.
type Expansion[T any] interface {
	expand() (Cursor[T], error)
}

type itemsExpansion[T any] []T

func (e itemsExpansion[T]) expand() (Cursor[T], error) {
	return &sliceCursor[T]{items: e}, nil
}

type nestedExpansion[T any] struct {
	seq *Sequence[T]
}

func (e nestedExpansion[T]) expand() (Cursor[T], error) {
	if e.seq == nil || e.seq.produce == nil {
		return nil, lferrors.ErrTypeMismatch
	}
	return e.seq.Cursor(), nil
}

// Items expands to the given values.
func Items[T any](values ...T) Expansion[T] {
	return itemsExpansion[T](values)
}

// Slice expands to the elements of values.
func Slice[T any](values []T) Expansion[T] {
	return itemsExpansion[T](values)
}

// Nested expands to a full traversal of s.
func Nested[T any](s *Sequence[T]) Expansion[T] {
	return nestedExpansion[T]{seq: s}
}

// FlatMap replaces each element of s with the elements of mapper's expansion.
// A nil expansion, or Nested(nil), fails the traversal with an error wrapping
// errors.ErrTypeMismatch.
func FlatMap[T, U any](s *Sequence[T], mapper func(T) Expansion[U]) *Sequence[U] {
	return derive(func() Cursor[U] {
		return &flatMapCursor[T, U]{src: s.Cursor(), mapper: mapper}
	})
}

// Distinct returns a sequence that yields each value at most once, in
// first-occurrence order. The set of seen values lives for one traversal.
func Distinct[T comparable](s *Sequence[T]) *Sequence[T] {
	return DistinctBy(s, func(v T) T { return v })
}

// DistinctBy is Distinct with equality decided by key.
func DistinctBy[T any, K comparable](s *Sequence[T], key func(T) K) *Sequence[T] {
	return derive(func() Cursor[T] {
		return &distinctCursor[T, K]{src: s.Cursor(), key: key, seen: make(map[K]struct{})}
	})
}

// Chunk groups consecutive elements into blocks of size. A trailing partial
// block is yielded last. A size below 1 fails the first traversal with a
// validation error.
func Chunk[T any](s *Sequence[T], size int) *Sequence[[]T] {
	return derive(func() Cursor[[]T] {
		return &chunkCursor[T]{src: s.Cursor(), size: size}
	})
}

// Zip advances a and b in lock step and yields combiner(x, y) for each pair.
// It stops as soon as either side is exhausted.
func Zip[A, B, R any](a *Sequence[A], b *Sequence[B], combiner func(A, B) R) *Sequence[R] {
	return derive(func() Cursor[R] {
		return &zipCursor[A, B, R]{left: a.Cursor(), right: b.Cursor(), combiner: combiner}
	})
}

// mapCursor transforms elements using a mapper function.
type mapCursor[T, U any] struct {
	src    Cursor[T]
	mapper func(T) U
}

func (c *mapCursor[T, U]) Next(ctx context.Context) (U, bool, error) {
	var zero U
	value, ok, err := c.src.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	return c.mapper(value), true, nil
}

func (c *mapCursor[T, U]) Close() error {
	return c.src.Close()
}

// filterCursor filters elements based on a predicate.
type filterCursor[T any] struct {
	src       Cursor[T]
	predicate func(T) bool
}

func (c *filterCursor[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		value, ok, err := c.src.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		if c.predicate(value) {
			return value, true, nil
		}
		if err := lfcontext.Check(ctx); err != nil {
			return zero, false, err
		}
	}
}

func (c *filterCursor[T]) Close() error {
	return c.src.Close()
}

// flatMapCursor drains one expansion before pulling the next source element.
type flatMapCursor[T, U any] struct {
	src    Cursor[T]
	mapper func(T) Expansion[U]
	inner  Cursor[U]
	index  int
}

func (c *flatMapCursor[T, U]) Next(ctx context.Context) (U, bool, error) {
	var zero U
	for {
		if c.inner != nil {
			value, ok, err := c.inner.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if ok {
				return value, true, nil
			}
			_ = c.inner.Close()
			c.inner = nil
		}

		value, ok, err := c.src.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}

		expansion := c.mapper(value)
		position := c.index
		c.index++
		if expansion == nil {
			return zero, false, c.mismatch(position)
		}
		inner, err := expansion.expand()
		if err != nil {
			return zero, false, c.mismatch(position)
		}
		c.inner = inner
	}
}

func (c *flatMapCursor[T, U]) mismatch(position int) error {
	return lferrors.NewOperationError(module, "FlatMap", lferrors.ErrTypeMismatch).
		WithContext(fmt.Sprintf("element %d expanded to neither a collection nor a sequence", position))
}

func (c *flatMapCursor[T, U]) Close() error {
	var innerErr error
	if c.inner != nil {
		innerErr = c.inner.Close()
		c.inner = nil
	}
	return errors.Join(innerErr, c.src.Close())
}

// distinctCursor removes duplicate elements.
type distinctCursor[T any, K comparable] struct {
	src  Cursor[T]
	key  func(T) K
	seen map[K]struct{}
}

func (c *distinctCursor[T, K]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		value, ok, err := c.src.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		k := c.key(value)
		if _, dup := c.seen[k]; !dup {
			c.seen[k] = struct{}{}
			return value, true, nil
		}
		if err := lfcontext.Check(ctx); err != nil {
			return zero, false, err
		}
	}
}

func (c *distinctCursor[T, K]) Close() error {
	c.seen = nil
	return c.src.Close()
}

// skipCursor discards the first count elements on its first pull.
type skipCursor[T any] struct {
	src     Cursor[T]
	count   int
	skipped bool
}

func (c *skipCursor[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if !c.skipped {
		c.skipped = true
		for i := 0; i < c.count; i++ {
			_, ok, err := c.src.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
		}
	}
	return c.src.Next(ctx)
}

func (c *skipCursor[T]) Close() error {
	return c.src.Close()
}

// limitCursor stops pulling upstream after remaining elements.
type limitCursor[T any] struct {
	src       Cursor[T]
	remaining int
}

func (c *limitCursor[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if c.remaining <= 0 {
		return zero, false, nil
	}
	value, ok, err := c.src.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	c.remaining--
	return value, true, nil
}

func (c *limitCursor[T]) Close() error {
	return c.src.Close()
}

// peekCursor performs an action on each element without modifying it.
type peekCursor[T any] struct {
	src    Cursor[T]
	action func(T)
}

func (c *peekCursor[T]) Next(ctx context.Context) (T, bool, error) {
	value, ok, err := c.src.Next(ctx)
	if err == nil && ok {
		c.action(value)
	}
	return value, ok, err
}

func (c *peekCursor[T]) Close() error {
	return c.src.Close()
}

// chunkCursor buffers size elements per block.
type chunkCursor[T any] struct {
	src  Cursor[T]
	size int
	done bool
}

func (c *chunkCursor[T]) Next(ctx context.Context) ([]T, bool, error) {
	if err := validation.ValidatePositive(module, "chunk size", c.size); err != nil {
		return nil, false, err
	}
	if c.done {
		return nil, false, nil
	}

	block := make([]T, 0, min(c.size, 1024))
	for len(block) < c.size {
		value, ok, err := c.src.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			c.done = true
			break
		}
		block = append(block, value)
	}

	if len(block) == 0 {
		return nil, false, nil
	}
	return block, true, nil
}

func (c *chunkCursor[T]) Close() error {
	c.done = true
	return c.src.Close()
}

// zipCursor pulls one element from each side per step.
type zipCursor[A, B, R any] struct {
	left     Cursor[A]
	right    Cursor[B]
	combiner func(A, B) R
}

func (c *zipCursor[A, B, R]) Next(ctx context.Context) (R, bool, error) {
	var zero R
	a, ok, err := c.left.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	b, ok, err := c.right.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	return c.combiner(a, b), true, nil
}

func (c *zipCursor[A, B, R]) Close() error {
	return errors.Join(c.left.Close(), c.right.Close())
}

// instrumentedCursor reports its lifetime to a metrics traversal.
type instrumentedCursor[T any] struct {
	src       Cursor[T]
	traversal *metrics.Traversal
}

func (c *instrumentedCursor[T]) Next(ctx context.Context) (T, bool, error) {
	value, ok, err := c.src.Next(ctx)
	switch {
	case err != nil:
		c.traversal.Fail()
	case ok:
		c.traversal.Element()
	}
	return value, ok, err
}

func (c *instrumentedCursor[T]) Close() error {
	c.traversal.Finish()
	return c.src.Close()
}
