package seq

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vnykmshr/lazyflow/internal/testutil"
	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
)

func TestForEachAsyncIsSequential(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	rec := testutil.NewRecorder[int]()
	s := FromCollection([]int{1, 2, 3, 4, 5})
	callback := func(ctx context.Context, v int) error {
		leave := rec.Enter(v)
		defer leave()
		// Later elements sleep less; overlap would reorder them.
		time.Sleep(time.Duration(6-v) * time.Millisecond)
		return nil
	}

	for run := 0; run < 2; run++ {
		rec.Reset()
		_, err := s.ForEachAsync(ctx, callback).Await(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, rec.Calls(), []int{1, 2, 3, 4, 5})
		testutil.AssertEqual(t, rec.MaxInFlight(), 1)
	}
}

func TestForEachAsyncWaitsBeforeNextPull(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	var events []string
	s := Of("a", "b").Peek(func(v string) { events = append(events, "pull "+v) })

	_, err := s.ForEachAsync(ctx, func(_ context.Context, v string) error {
		events = append(events, "start "+v)
		time.Sleep(time.Millisecond)
		events = append(events, "end "+v)
		return nil
	}).Await(ctx)
	testutil.AssertNoError(t, err)

	testutil.AssertSliceEqual(t, events, []string{"pull a", "start a", "end a", "pull b", "start b", "end b"})
}

func TestForEachAsyncStopsOnCallbackError(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	failure := errors.New("write failed")
	var seen []int
	_, err := Naturals().ForEachAsync(ctx, func(_ context.Context, v int) error {
		seen = append(seen, v)
		if v == 3 {
			return failure
		}
		return nil
	}).Await(ctx)

	if err != failure {
		t.Fatalf("err = %v, want %v", err, failure)
	}
	testutil.AssertSliceEqual(t, seen, []int{0, 1, 2, 3})
}

func TestForEachAsyncHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := Naturals().ForEachAsync(ctx, func(_ context.Context, v int) error {
		if v == 10 {
			cancel()
		}
		return nil
	})

	_, err := done.Await(context.Background())
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestForEachAsyncPanicPropagatesToAwait(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	done := Of(1).ForEachAsync(ctx, func(context.Context, int) error {
		panic("callback exploded")
	})

	defer func() {
		if r := recover(); r != "callback exploded" {
			t.Fatalf("recovered %v, want callback panic", r)
		}
	}()
	_, _ = done.Await(ctx)
	t.Fatal("expected panic")
}

func TestTakeAsync(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	got, err := TakeAsync(ctx, Lift(Naturals()), 4).Await(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{0, 1, 2, 3})

	short, err := TakeAsync(ctx, Lift(Of(7, 8)), 5).Await(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, short, []int{7, 8})

	none, err := TakeAsync(ctx, Lift(Naturals()), 0).Await(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(none), 0)
}

func TestTakeAsyncPreservesOrder(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	// Futures finishing in reverse order must still be collected in sequence order.
	futures := make([]Future[int], 0, 3)
	for _, v := range []int{1, 2, 3} {
		futures = append(futures, Go(ctx, func(context.Context) (int, error) {
			time.Sleep(time.Duration(4-v) * 2 * time.Millisecond)
			return v * 100, nil
		}))
	}
	pending := FromCollection(futures)

	got, err := TakeAsync(ctx, pending, 3).Await(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{100, 200, 300})
}

func TestTakeAsyncRejectedFuture(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	notFound := errors.New("not found")
	pending := FromCollection([]Future[string]{Resolved("a"), Rejected[string](notFound), Resolved("c")})

	_, err := TakeAsync(ctx, pending, 3).Await(ctx)
	if err != notFound {
		t.Fatalf("err = %v, want %v", err, notFound)
	}
}

func TestTakeAsyncNilFuture(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	pending := FromCollection([]Future[int]{Resolved(1), nil})
	_, err := TakeAsync(ctx, pending, 2).Await(ctx)
	testutil.AssertErrorIs(t, err, lferrors.ErrTypeMismatch)
}

// pageSource serves fixed-size pages and records each call's index.
type pageSource struct {
	pageSize int
	calls    []int
}

func (p *pageSource) fetch(_ context.Context, index int) ([]Future[string], error) {
	p.calls = append(p.calls, index)
	page := make([]Future[string], p.pageSize)
	for i := range page {
		page[i] = Resolved(fmt.Sprintf("item-%d", index+i))
	}
	return page, nil
}

func TestFromAsyncSource(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	source := &pageSource{pageSize: 3}
	pending, err := FromAsyncSource(source.fetch, 7)
	testutil.AssertNoError(t, err)

	got, err := TakeAsync(ctx, pending, 10).Await(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []string{"item-0", "item-1", "item-2", "item-3", "item-4", "item-5", "item-6"})
	testutil.AssertSliceEqual(t, source.calls, []int{0, 3, 6})
}

func TestFromAsyncSourceRefillsOnlyWhenEmpty(t *testing.T) {
	source := &pageSource{pageSize: 4}
	pending, err := FromAsyncSource(source.fetch, 100)
	testutil.AssertNoError(t, err)

	ctx := context.Background()
	cur := pending.Cursor()
	defer func() { _ = cur.Close() }()

	for i := 0; i < 5; i++ {
		f, ok, err := cur.Next(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, ok, true)
		v, err := f.Await(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, v, fmt.Sprintf("item-%d", i))

		wantCalls := i/4 + 1
		testutil.AssertEqual(t, len(source.calls), wantCalls)
	}
	testutil.AssertSliceEqual(t, source.calls, []int{0, 4})
}

func TestFromAsyncSourceTraversalsOwnTheirBuffer(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	source := &pageSource{pageSize: 2}
	pending, err := FromAsyncSource(source.fetch, 3)
	testutil.AssertNoError(t, err)

	first, err := TakeAsync(ctx, pending, 3).Await(ctx)
	testutil.AssertNoError(t, err)
	second, err := TakeAsync(ctx, pending, 3).Await(ctx)
	testutil.AssertNoError(t, err)

	testutil.AssertSliceEqual(t, first, second)
	testutil.AssertSliceEqual(t, source.calls, []int{0, 2, 0, 2})
}

func TestFromAsyncSourceEdgeCases(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	t.Run("nil source", func(t *testing.T) {
		_, err := FromAsyncSource[int](nil, 3)
		testutil.AssertErrorIs(t, err, lferrors.ErrInvalidArgument)
	})

	t.Run("zero count never calls source", func(t *testing.T) {
		source := &pageSource{pageSize: 2}
		pending, err := FromAsyncSource(source.fetch, 0)
		testutil.AssertNoError(t, err)

		got, err := TakeAsync(ctx, pending, 5).Await(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(got), 0)
		testutil.AssertEqual(t, len(source.calls), 0)
	})

	t.Run("empty batch ends traversal", func(t *testing.T) {
		pending, err := FromAsyncSource(func(_ context.Context, index int) ([]Future[int], error) {
			if index >= 2 {
				return nil, nil
			}
			return []Future[int]{Resolved(index), Resolved(index + 1)}, nil
		}, 10)
		testutil.AssertNoError(t, err)

		got, err := TakeAsync(ctx, pending, 10).Await(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, got, []int{0, 1})
	})

	t.Run("source error aborts", func(t *testing.T) {
		unavailable := errors.New("backend unavailable")
		pending, err := FromAsyncSource(func(context.Context, int) ([]Future[int], error) {
			return nil, unavailable
		}, 10)
		testutil.AssertNoError(t, err)

		_, err = TakeAsync(ctx, pending, 1).Await(ctx)
		if err != unavailable {
			t.Fatalf("err = %v, want %v", err, unavailable)
		}
	})
}
