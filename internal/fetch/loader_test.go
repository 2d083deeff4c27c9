package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	mu            sync.Mutex
	authenticated bool
}

func (a *fakeAuth) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authenticated
}

func (a *fakeAuth) set(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.authenticated = v
}

func TestLoadSuccess(t *testing.T) {
	loader := NewLoader(&fakeAuth{}, false, func(context.Context) (*string, error) {
		v := "payload"
		return &v, nil
	})

	state := loader.Load(context.Background())
	require.NotNil(t, state.Data)
	assert.Equal(t, "payload", *state.Data)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
}

func TestLoadError(t *testing.T) {
	loader := NewLoader(&fakeAuth{}, false, func(context.Context) (*string, error) {
		return nil, errors.New("insufficient funds")
	})

	state := loader.Load(context.Background())
	assert.Nil(t, state.Data)
	assert.Equal(t, "insufficient funds", state.Err)
}

type emptyErr struct{}

func (emptyErr) Error() string { return "" }

func TestLoadEmptyErrorGetsGenericMessage(t *testing.T) {
	loader := NewLoader(&fakeAuth{}, false, func(context.Context) (*string, error) {
		return nil, emptyErr{}
	})

	state := loader.Load(context.Background())
	assert.Equal(t, "An error occurred", state.Err)
}

func TestRequireAuthGating(t *testing.T) {
	auth := &fakeAuth{}
	var calls int
	loader := NewLoader(auth, true, func(context.Context) (*string, error) {
		calls++
		v := "payload"
		return &v, nil
	})

	state := loader.Load(context.Background())
	assert.Nil(t, state.Data)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err, "an unauthenticated load settles empty, it is not an error")
	assert.Equal(t, 0, calls, "no network call while unauthenticated")

	auth.set(true)
	state = loader.Refetch(context.Background())
	require.NotNil(t, state.Data)
	assert.Equal(t, 1, calls)
}

func TestStaleResultDiscarded(t *testing.T) {
	release := make(chan struct{})
	firstStarted := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	loader := NewLoader(&fakeAuth{}, false, func(context.Context) (*string, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-release // the first call finishes after the second
			v := "stale"
			return &v, nil
		}
		v := "fresh"
		return &v, nil
	})

	done := make(chan State[string])
	go func() { done <- loader.Load(context.Background()) }()
	<-firstStarted

	state := loader.Load(context.Background())
	require.NotNil(t, state.Data)
	assert.Equal(t, "fresh", *state.Data)

	close(release)
	<-done

	// the slow first response must not clobber the newer one
	final := loader.State()
	require.NotNil(t, final.Data)
	assert.Equal(t, "fresh", *final.Data)
}

func TestCloseDiscardsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	loader := NewLoader(&fakeAuth{}, false, func(context.Context) (*string, error) {
		close(started)
		<-release
		v := "late"
		return &v, nil
	})

	var notified int
	loader.OnChange(func(State[string]) { notified++ })

	done := make(chan State[string])
	go func() { done <- loader.Load(context.Background()) }()
	<-started

	loader.Close()
	afterClose := notified
	close(release)
	<-done

	assert.Nil(t, loader.State().Data, "a result arriving after Close is dropped")
	assert.Equal(t, afterClose, notified, "observers see nothing after Close")

	// loads after Close are no-ops
	state := loader.Load(context.Background())
	assert.Nil(t, state.Data)
}

func TestOnChangeSeesLoadingThenSettled(t *testing.T) {
	loader := NewLoader(&fakeAuth{}, false, func(context.Context) (*string, error) {
		v := "payload"
		return &v, nil
	})

	var states []State[string]
	unsubscribe := loader.OnChange(func(s State[string]) { states = append(states, s) })
	defer unsubscribe()

	loader.Load(context.Background())
	require.Len(t, states, 2)
	assert.True(t, states[0].Loading)
	assert.False(t, states[1].Loading)
	require.NotNil(t, states[1].Data)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	loader := NewLoader(&fakeAuth{}, false, func(context.Context) (*string, error) {
		v := "payload"
		return &v, nil
	})

	var count int
	unsubscribe := loader.OnChange(func(State[string]) { count++ })
	loader.Load(context.Background())
	first := count
	unsubscribe()
	loader.Load(context.Background())
	assert.Equal(t, first, count)
}

func TestAuthLossInvalidatesInFlight(t *testing.T) {
	auth := &fakeAuth{authenticated: true}
	release := make(chan struct{})
	started := make(chan struct{})
	loader := NewLoader(auth, true, func(context.Context) (*string, error) {
		close(started)
		<-release
		v := "private"
		return &v, nil
	})

	done := make(chan State[string])
	go func() { done <- loader.Load(context.Background()) }()
	<-started

	// session ends while the call is in flight
	auth.set(false)
	loader.Load(context.Background())

	close(release)
	<-done

	assert.Nil(t, loader.State().Data, "data fetched for a dead session is never applied")
}
