package benchmark

import (
	"context"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/lazyflow/pkg/metrics"
	"github.com/vnykmshr/lazyflow/pkg/sequence/seq"
)

var sizes = []int{100, 1000, 10000}

func ints(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return data
}

func label(n int) string {
	if n >= 1000 {
		return strconv.Itoa(n/1000) + "k"
	}
	return strconv.Itoa(n)
}

// BenchmarkTakeProgression measures pulling a prefix of an infinite sequence.
func BenchmarkTakeProgression(b *testing.B) {
	ctx := context.Background()
	for _, n := range sizes {
		b.Run(label(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = seq.Naturals().Take(ctx, n)
			}
		})
	}
}

// BenchmarkPipeline measures a filter/map/take chain over an infinite source.
func BenchmarkPipeline(b *testing.B) {
	ctx := context.Background()
	pipeline := seq.FromProgression(1, 1).
		Filter(func(n int) bool { return n%3 == 0 }).
		Map(func(n int) int { return n * n })

	for _, n := range sizes {
		b.Run(label(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = pipeline.Take(ctx, n)
			}
		})
	}
}

// BenchmarkFlatMap compares collection and nested expansions.
func BenchmarkFlatMap(b *testing.B) {
	ctx := context.Background()
	data := ints(1000)

	b.Run("Items", func(b *testing.B) {
		s := seq.FlatMap(seq.FromCollection(data), func(n int) seq.Expansion[int] {
			return seq.Items(n, -n)
		})
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = s.Count(ctx)
		}
	})

	b.Run("Nested", func(b *testing.B) {
		s := seq.FlatMap(seq.FromCollection(data), func(n int) seq.Expansion[int] {
			return seq.Nested(seq.FromProgression(n, 1).Limit(2))
		})
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = s.Count(ctx)
		}
	})
}

// BenchmarkDistinct measures distinct with half the values duplicated.
func BenchmarkDistinct(b *testing.B) {
	ctx := context.Background()
	data := make([]int, 1000)
	for i := range data {
		data[i] = i % 500
	}
	s := seq.Distinct(seq.FromCollection(data))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.ToSlice(ctx)
	}
}

// BenchmarkChunk measures block allocation for several sizes.
func BenchmarkChunk(b *testing.B) {
	ctx := context.Background()
	data := ints(10000)

	for _, size := range []int{1, 16, 256} {
		s := seq.Chunk(seq.FromCollection(data), size)
		b.Run(label(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = s.Count(ctx)
			}
		})
	}
}

// BenchmarkZip measures lock-step traversal of two sources.
func BenchmarkZip(b *testing.B) {
	ctx := context.Background()
	s := seq.Zip(seq.Naturals(), seq.FromCollection(ints(1000)), func(x, y int) int { return x + y })

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.ToSlice(ctx)
	}
}

// BenchmarkSkipLimit measures positional combinators.
func BenchmarkSkipLimit(b *testing.B) {
	ctx := context.Background()
	data := ints(10000)

	b.Run("Skip1000", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = seq.FromCollection(data).Skip(1000).Count(ctx)
		}
	})

	b.Run("Skip1000_Take100", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = seq.FromCollection(data).Skip(1000).Take(ctx, 100)
		}
	})
}

// BenchmarkTerminals compares the folding terminals on the same input.
func BenchmarkTerminals(b *testing.B) {
	ctx := context.Background()
	s := seq.FromCollection(ints(1000))

	b.Run("Reduce", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = seq.Reduce(ctx, s, 0, func(acc, n int) int { return acc + n })
		}
	})

	b.Run("GroupBy", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = seq.GroupBy(ctx, s, func(n int) int { return n % 10 })
		}
	})

	b.Run("ForEach", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = s.ForEach(ctx, func(int) error { return nil })
		}
	})

	b.Run("All", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			for _, err := range s.All(ctx) {
				if err != nil {
					b.Fatal(err)
				}
			}
		}
	})
}

// BenchmarkFromSeq measures the iter.Pull adapter against a plain slice source.
func BenchmarkFromSeq(b *testing.B) {
	ctx := context.Background()
	data := ints(1000)
	rangeOver := func(yield func(int) bool) {
		for _, v := range data {
			if !yield(v) {
				return
			}
		}
	}

	b.Run("Slice", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = seq.FromCollection(data).Count(ctx)
		}
	})

	b.Run("Pull", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = seq.FromSeq(rangeOver).Count(ctx)
		}
	})
}

// BenchmarkInstrument measures the cost of Prometheus instrumentation per element.
func BenchmarkInstrument(b *testing.B) {
	ctx := context.Background()
	registry := metrics.NewRegistry(prometheus.NewRegistry())
	data := ints(1000)

	b.Run("Plain", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = seq.FromCollection(data).Count(ctx)
		}
	})

	b.Run("Instrumented", func(b *testing.B) {
		s := seq.FromCollection(data).Instrument(registry, "bench")
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = s.Count(ctx)
		}
	})
}
