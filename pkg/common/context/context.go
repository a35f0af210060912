package context

import (
	"context"
	"errors"
)

// IsCanceled reports whether ctx is done, for any reason. It never blocks.
func IsCanceled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// IsTimedOut reports whether ctx ended because a deadline passed.
func IsTimedOut(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}

// Check returns ctx.Err() once ctx is done and nil before. Terminal
// operations call it between pulls.
func Check(ctx context.Context) error {
	if !IsCanceled(ctx) {
		return nil
	}
	return ctx.Err()
}

// OwnDeadline reports whether child, derived from parent with a timeout, ran
// out of time while parent is still live.
func OwnDeadline(parent, child context.Context) bool {
	return IsTimedOut(child) && !IsCanceled(parent)
}
