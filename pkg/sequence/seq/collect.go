package seq

import (
	"context"
	"iter"
)

// Reduce folds the elements of s from left to right, starting from initial.
// It only returns for finite sequences.
func Reduce[T, A any](ctx context.Context, s *Sequence[T], initial A, reducer func(A, T) A) (A, error) {
	acc := initial
	err := drain(ctx, s, func(value T) error {
		acc = reducer(acc, value)
		return nil
	})
	if err != nil {
		return initial, err
	}
	return acc, nil
}

// Groups maps keys to buckets of elements. Keys keep the order in which they
// were first seen; each bucket keeps traversal order.
type Groups[K comparable, T any] struct {
	keys    []K
	buckets map[K][]T
}

func newGroups[K comparable, T any]() *Groups[K, T] {
	return &Groups[K, T]{buckets: make(map[K][]T)}
}

func (g *Groups[K, T]) add(key K, value T) {
	bucket, ok := g.buckets[key]
	if !ok {
		g.keys = append(g.keys, key)
	}
	g.buckets[key] = append(bucket, value)
}

// Len returns the number of distinct keys.
func (g *Groups[K, T]) Len() int {
	return len(g.keys)
}

// Keys returns the keys in first-seen order.
func (g *Groups[K, T]) Keys() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the bucket for key.
func (g *Groups[K, T]) Get(key K) ([]T, bool) {
	bucket, ok := g.buckets[key]
	return bucket, ok
}

// All iterates over key and bucket pairs in first-seen key order.
func (g *Groups[K, T]) All() iter.Seq2[K, []T] {
	return func(yield func(K, []T) bool) {
		for _, key := range g.keys {
			if !yield(key, g.buckets[key]) {
				return
			}
		}
	}
}

// Map returns the groups as a plain map, losing key order.
func (g *Groups[K, T]) Map() map[K][]T {
	out := make(map[K][]T, len(g.buckets))
	for key, bucket := range g.buckets {
		out[key] = bucket
	}
	return out
}

// GroupBy traverses s once and partitions its elements by keyFn.
// It only returns for finite sequences.
func GroupBy[T any, K comparable](ctx context.Context, s *Sequence[T], keyFn func(T) K) (*Groups[K, T], error) {
	groups := newGroups[K, T]()
	err := drain(ctx, s, func(value T) error {
		groups.add(keyFn(value), value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}
