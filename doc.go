/*
Package lazyflow provides restartable lazy sequences for Go.

A sequence wraps a producer: a function that hands out a fresh cursor for
every traversal. Combinators build new sequences without pulling anything;
terminal operations drive exactly one traversal and close its cursor when
they return.

Core (pkg/sequence/seq):
  - sources: FromProgression, Naturals, FromCollection, FromSeq, Unfold
  - combinators: Map, Filter, FlatMap, Distinct, Skip, Limit, Chunk, Zip, Peek
  - terminals: Take, ToSlice, Count, First, Reduce, GroupBy, ForEach, All
  - async: Future, FromAsyncSource, TakeAsync, ForEachAsync

Sources (pkg/sequence):
  - schedule: cron expressions as infinite sequences of activation times
  - redislist: Redis lists read lazily in LRANGE batches

Observability (pkg/metrics):
  - Prometheus counters, gauges and histograms per instrumented sequence

Example usage:

	import "github.com/vnykmshr/lazyflow/pkg/sequence/seq"

	squares := seq.Naturals().Map(func(n int) int { return n * n })
	first5, _ := squares.Take(ctx, 5) // [0 1 4 9 16]

	evens := squares.Filter(func(n int) bool { return n%2 == 0 })
	pairs := seq.Zip(squares, evens, func(a, b int) [2]int { return [2]int{a, b} })
*/
package lazyflow
