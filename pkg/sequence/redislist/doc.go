/*
Package redislist exposes a Redis list as a lazy, restartable sequence of
pending values.

The sequence is built on seq.FromAsyncSource. Every traversal keeps its own
read position and buffer; when the buffer runs dry one LRANGE fetches the next
BatchSize elements. No Redis command is issued until a terminal operation
pulls the first element.

# Basic Usage

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	events, err := redislist.Open(ctx, redislist.Config{
		Client:    rdb,
		Key:       "events",
		BatchSize: 100,
	})
	if err != nil {
		log.Fatal(err)
	}

	first10, err := seq.TakeAsync(ctx, events, 10).Await(ctx)

# Element Count

The number of elements a traversal produces is fixed when the sequence is
opened: Config.Count when positive, otherwise LLEN of the key at Open time.
Elements pushed afterwards are not visited; a list that shrinks ends the
traversal early on the first empty LRANGE.

# Typed Elements

OpenJSON decodes every element into T. Decoding is deferred until the future
is awaited, so skipped or filtered elements are never unmarshalled:

	type Event struct {
		ID   string `json:"id"`
		Kind string `json:"kind"`
	}

	typed, err := redislist.OpenJSON[Event](ctx, config)

# Errors

Configuration problems are reported as a ValidationError from Open. Redis
failures surface as an OperationError naming the failing command, both at
Open (LLEN) and during traversal (LRANGE).
*/
package redislist
