// Package schedule turns cron expressions into lazy sequences of activation
// times.
//
// A schedule sequence is infinite unless Config.Until is set. Like every
// seq.Sequence it is restartable: each traversal starts again from
// Config.From.
//
//	times, err := schedule.New(schedule.Config{
//		Expression: "0 9 * * MON-FRI",
//		From:       time.Now(),
//	})
//	next5, err := times.Take(ctx, 5)
package schedule

import (
	"time"

	"github.com/robfig/cron/v3"

	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
	"github.com/vnykmshr/lazyflow/pkg/common/validation"
	"github.com/vnykmshr/lazyflow/pkg/sequence/seq"
)

const module = "schedule"

// Config describes a schedule sequence.
type Config struct {
	// Expression is a cron expression. Five fields by default, six (leading
	// seconds) when Seconds is true. Descriptors such as "@hourly" and
	// "@every 90s" are always accepted.
	Expression string

	// Seconds enables the leading seconds field.
	Seconds bool

	// From is the instant after which activations are produced. Zero means
	// the time of each traversal's first pull.
	From time.Time

	// Until bounds the sequence: the first activation after Until ends it.
	// Zero leaves the sequence infinite.
	Until time.Time

	// Location overrides the time zone used to evaluate the expression.
	Location *time.Location
}

// DefaultConfig returns an hourly schedule starting at traversal time.
func DefaultConfig() Config {
	return Config{
		Expression: "@hourly",
	}
}

// Validate checks the configuration and parses the expression.
func (c Config) Validate() error {
	_, err := c.parse()
	return err
}

func (c Config) parse() (cron.Schedule, error) {
	if err := validation.ValidateNotEmpty(module, "expression", c.Expression); err != nil {
		return nil, err
	}
	if !c.From.IsZero() && !c.Until.IsZero() && c.Until.Before(c.From) {
		return nil, lferrors.NewValidationError(module, "until", c.Until, "is before from").
			WithHint("leave Until zero for an unbounded schedule")
	}

	fields := cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor
	if c.Seconds {
		fields |= cron.Second
	}

	sched, err := cron.NewParser(fields).Parse(c.Expression)
	if err != nil {
		return nil, lferrors.NewValidationError(module, "expression", c.Expression, err.Error())
	}
	return sched, nil
}

// New creates the sequence of activation times described by config.
func New(config Config) (*seq.Sequence[time.Time], error) {
	sched, err := config.parse()
	if err != nil {
		return nil, err
	}

	step := func(last time.Time) (time.Time, time.Time, bool) {
		if last.IsZero() {
			last = time.Now()
		}
		if config.Location != nil {
			last = last.In(config.Location)
		}
		next := sched.Next(last)
		if next.IsZero() || (!config.Until.IsZero() && next.After(config.Until)) {
			return time.Time{}, time.Time{}, false
		}
		return next, next, true
	}

	return seq.Unfold(config.From, step), nil
}

// MustNew is like New but panics if config is invalid.
func MustNew(config Config) *seq.Sequence[time.Time] {
	s, err := New(config)
	if err != nil {
		panic(err)
	}
	return s
}
