package testutil

import (
	"sync"
)

// Recorder records callback invocations in arrival order and tracks how many
// invocations were in flight at once. Async traversal tests use it to check
// ordering and the absence of overlapping callbacks.
type Recorder[T any] struct {
	mu          sync.Mutex
	calls       []T
	inFlight    int
	maxInFlight int
}

// NewRecorder creates an empty Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

// Enter marks the start of an invocation for value v. The returned function
// marks its end and must be called exactly once.
func (r *Recorder[T]) Enter(v T) func() {
	r.mu.Lock()
	r.calls = append(r.calls, v)
	r.inFlight++
	if r.inFlight > r.maxInFlight {
		r.maxInFlight = r.inFlight
	}
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		r.inFlight--
		r.mu.Unlock()
	}
}

// Calls returns a copy of the recorded values.
func (r *Recorder[T]) Calls() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.calls))
	copy(out, r.calls)
	return out
}

// MaxInFlight returns the highest number of simultaneous invocations observed.
func (r *Recorder[T]) MaxInFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxInFlight
}

// Reset clears recorded calls and counters.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.inFlight = 0
	r.maxInFlight = 0
}
