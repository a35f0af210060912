package redislist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	lfcontext "github.com/vnykmshr/lazyflow/pkg/common/context"
	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
	"github.com/vnykmshr/lazyflow/pkg/common/validation"
	"github.com/vnykmshr/lazyflow/pkg/sequence/seq"
)

const module = "redislist"

// Client is the subset of redis.Cmdable used to read lists. Any
// redis.UniversalClient satisfies it.
type Client interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
}

// Config holds configuration for a list sequence.
type Config struct {
	// Client reads the list.
	Client Client

	// Key is the Redis key of the list.
	Key string

	// BatchSize is the number of elements fetched per LRANGE (defaults to 64).
	BatchSize int

	// Count caps the elements produced per traversal. Zero means the list
	// length at Open time.
	Count int

	// Timeout bounds every Redis command (defaults to 500ms).
	Timeout time.Duration
}

// DefaultConfig returns a default configuration. Client and Key must still be set.
func DefaultConfig() Config {
	return Config{
		BatchSize: 64,
		Timeout:   500 * time.Millisecond,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validation.ValidateNotNil(module, "client", c.Client); err != nil {
		return err
	}
	if err := validation.ValidateNotEmpty(module, "key", c.Key); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative(module, "batch_size", c.BatchSize); err != nil {
		return err
	}
	return validation.ValidateNonNegative(module, "count", c.Count)
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.BatchSize == 0 {
		c.BatchSize = defaults.BatchSize
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	return c
}

// Open creates a sequence over the list at config.Key. When config.Count is
// zero the list length is read once, here.
func Open(ctx context.Context, config Config) (*seq.Sequence[seq.Future[string]], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config = config.withDefaults()

	count := config.Count
	if count == 0 {
		n, err := length(ctx, config)
		if err != nil {
			return nil, err
		}
		count = n
	}

	return seq.FromAsyncSource(fetcher(config), count)
}

// OpenJSON is like Open but decodes every element into T when its future is
// awaited. A decode failure is kept; an Await ended by its own context can be
// retried.
func OpenJSON[T any](ctx context.Context, config Config) (*seq.Sequence[seq.Future[T]], error) {
	raw, err := Open(ctx, config)
	if err != nil {
		return nil, err
	}

	return seq.Map(raw, func(pending seq.Future[string]) seq.Future[T] {
		return seq.Deferred(func(ctx context.Context) (T, error) {
			var value T
			data, err := pending.Await(ctx)
			if err != nil {
				return value, err
			}
			if err := json.Unmarshal([]byte(data), &value); err != nil {
				return value, lferrors.NewOperationError(module, "Decode", err).
					WithContext(fmt.Sprintf("key=%s", config.Key))
			}
			return value, nil
		})
	}), nil
}

func length(ctx context.Context, config Config) (int, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	n, err := config.Client.LLen(cmdCtx, config.Key).Result()
	if err != nil {
		return 0, lferrors.NewOperationError(module, "LLen", err).
			WithContext(describe(ctx, cmdCtx, config, fmt.Sprintf("key=%s", config.Key)))
	}
	return int(n), nil
}

// describe appends the command timeout when it, rather than the caller's
// context, ended the command.
func describe(parent, cmdCtx context.Context, config Config, detail string) string {
	if lfcontext.OwnDeadline(parent, cmdCtx) {
		detail += fmt.Sprintf(" timeout=%s", config.Timeout)
	}
	return detail
}

// fetcher returns the refill function: one LRANGE per call, starting at the
// number of elements already produced.
func fetcher(config Config) seq.AsyncSource[string] {
	return func(ctx context.Context, index int) ([]seq.Future[string], error) {
		cmdCtx, cancel := context.WithTimeout(ctx, config.Timeout)
		defer cancel()

		start := int64(index)
		stop := start + int64(config.BatchSize) - 1

		values, err := config.Client.LRange(cmdCtx, config.Key, start, stop).Result()
		if err != nil {
			detail := fmt.Sprintf("key=%s start=%d stop=%d", config.Key, start, stop)
			return nil, lferrors.NewOperationError(module, "LRange", err).
				WithContext(describe(ctx, cmdCtx, config, detail))
		}

		batch := make([]seq.Future[string], len(values))
		for i, v := range values {
			batch[i] = seq.Resolved(v)
		}
		return batch, nil
	}
}
