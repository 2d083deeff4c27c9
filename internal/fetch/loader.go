// Package fetch provides the generic "call this API function and track its
// lifecycle" primitive used by views: loading/error state, auth gating,
// refetch, and suppression of stale or post-close results.
package fetch

import (
	"context"
	"sync"
)

// genericErr is shown when a failure carries no displayable message.
const genericErr = "An error occurred"

// Authenticator is the slice of the session manager the loader needs.
type Authenticator interface {
	IsAuthenticated() bool
}

// State is the observable request state of a loader.
type State[T any] struct {
	Data    *T
	Loading bool
	Err     string
}

// Loader runs an API call and tracks its lifecycle. Each Load bumps a
// generation counter; only the latest generation's result is applied, so a
// slow older response never clobbers a newer one. After Close, no result is
// applied at all.
type Loader[T any] struct {
	call        func(context.Context) (*T, error)
	auth        Authenticator
	requireAuth bool

	mu     sync.Mutex
	gen    uint64
	closed bool
	state  State[T]
	subs   map[int]func(State[T])
	nextID int
}

// NewLoader creates a loader around call. With requireAuth set, Load
// short-circuits to an empty settled state while the session does not
// authenticate; that is a deliberate no-op, not an error.
func NewLoader[T any](auth Authenticator, requireAuth bool, call func(context.Context) (*T, error)) *Loader[T] {
	return &Loader[T]{
		call:        call,
		auth:        auth,
		requireAuth: requireAuth,
		subs:        make(map[int]func(State[T])),
	}
}

// Load runs the call and returns the resulting state. Concurrent and
// overlapping calls are safe; the state reflects the newest invocation.
func (l *Loader[T]) Load(ctx context.Context) State[T] {
	l.mu.Lock()
	if l.closed {
		state := l.state
		l.mu.Unlock()
		return state
	}

	if l.requireAuth && !l.auth.IsAuthenticated() {
		l.gen++ // invalidate any in-flight call
		l.state = State[T]{}
		state := l.state
		l.notifyLocked(state)
		l.mu.Unlock()
		return state
	}

	l.gen++
	gen := l.gen
	l.state.Loading = true
	l.state.Err = ""
	state := l.state
	l.notifyLocked(state)
	l.mu.Unlock()

	data, err := l.call(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || gen != l.gen {
		// A newer invocation superseded this one, or the consumer is gone.
		return l.state
	}
	if err != nil {
		message := err.Error()
		if message == "" {
			message = genericErr
		}
		l.state = State[T]{Loading: false, Err: message}
	} else {
		l.state = State[T]{Data: data, Loading: false}
	}
	l.notifyLocked(l.state)
	return l.state
}

// Refetch repeats the same contract on demand.
func (l *Loader[T]) Refetch(ctx context.Context) State[T] {
	return l.Load(ctx)
}

// State returns the current state without triggering a call.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// OnChange registers a state observer and returns its unsubscribe function.
// Observers run on the goroutine that changed the state.
func (l *Loader[T]) OnChange(fn func(State[T])) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// Close detaches the loader from its consumer: in-flight results are
// discarded and observers are no longer called.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.subs = make(map[int]func(State[T]))
}

// notifyLocked calls observers; caller holds the lock. Observers must not
// call back into the loader.
func (l *Loader[T]) notifyLocked(state State[T]) {
	for _, fn := range l.subs {
		fn(state)
	}
}
