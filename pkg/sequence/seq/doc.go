/*
Package seq provides restartable, lazily evaluated sequences.

A Sequence holds a Producer: a function that returns a fresh Cursor each
time it is called. Combinators wrap the producer of their input and return a
new Sequence, so building a chain evaluates nothing. Terminal operations
create one cursor, drive it, and close it. Calling a terminal twice on the
same Sequence runs the chain from the source twice; no state survives
between traversals.

Core Concepts:

  - Lazy: nothing is evaluated until a terminal operation runs
  - Immutable: combinators return new sequences and never modify their input
  - Restartable: every traversal gets its own cursor chain
  - Single-owner: a cursor belongs to the traversal that created it

Creating Sequences:

	naturals := seq.Naturals()                     // 0, 1, 2, ...
	evens := seq.FromProgression(0, 2)             // 0, 2, 4, ...
	countdown := seq.FromProgression(10, -1)       // 10, 9, 8, ...
	words := seq.FromCollection([]string{"a", "b"}) // finite

	custom, err := seq.New(func() seq.Cursor[int] { return newCursor() })

New rejects a nil producer with an error wrapping errors.ErrInvalidArgument.

Combinators:

Methods cover the operations that keep the element type; package functions
cover the ones that change it:

	s.Filter(func(x int) bool { return x%2 == 0 })
	s.Map(func(x int) int { return x * x })
	s.Skip(5)
	s.Limit(10)
	s.Peek(func(x int) { log.Printf("saw %d", x) })

	seq.Map(s, strconv.Itoa)
	seq.FlatMap(s, func(x int) seq.Expansion[int] { return seq.Items(x, x) })
	seq.Distinct(s)
	seq.DistinctBy(users, func(u User) string { return u.ID })
	seq.Chunk(s, 3)
	seq.Zip(a, b, func(x, y int) string { return fmt.Sprint(x, y) })

A FlatMap callback returns an Expansion: Items or Slice for a finite
collection, Nested for another sequence. Returning nil fails the traversal
with an error wrapping errors.ErrTypeMismatch. Chunk with a size below 1 fails
the traversal with an error wrapping errors.ErrInvalidArgument.

Terminal Operations:

	first3, err := s.Take(ctx, 3)
	all, err := s.ToSlice(ctx)
	sum, err := seq.Reduce(ctx, s, 0, func(acc, x int) int { return acc + x })
	groups, err := seq.GroupBy(ctx, s, func(x int) string { ... })
	err := s.ForEach(ctx, func(x int) error { ... })

	for v, err := range s.All(ctx) { ... }

ToSlice, Count, Reduce, GroupBy and ForEach read the whole sequence and only
return for finite sequences (or when ctx is canceled).

Asynchronous Operations:

ForEachAsync and TakeAsync run their traversal on one background goroutine
and return a Future. Elements are handled strictly one after another:

	done := s.ForEachAsync(ctx, func(ctx context.Context, x int) error {
		return store.Save(ctx, x)
	})
	_, err := done.Await(ctx)

	pending, _ := seq.FromAsyncSource(fetchPage, 100)
	values, err := seq.TakeAsync(ctx, pending, 10).Await(ctx)

FromAsyncSource refills a per-traversal buffer from its source only when the
buffer is empty, so batch boundaries of the source are preserved even when
elements are requested one at a time.

Error Handling:

Errors returned by user callbacks (ForEach, ForEachAsync, async sources,
futures) end the traversal and are returned unchanged. Panics in callbacks
propagate to the caller of the terminal operation; cursors are still closed.
*/
package seq
