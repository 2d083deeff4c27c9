package event

import (
	"sync"

	"github.com/kazino55/client/internal/model"
)

// Session is the payload published whenever session state changes.
// A nil User means logged out.
type Session struct {
	User *model.User
}

// Bus is an in-process publish/subscribe channel for session state changes.
// It replaces cross-component notification via platform events: the auth
// lifecycle publishes, already-mounted views subscribe.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Session)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Session))}
}

// Subscribe registers a handler and returns its unsubscribe function.
// Handlers are invoked synchronously on the publishing goroutine.
func (b *Bus) Subscribe(fn func(Session)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish delivers the session change to all current subscribers.
func (b *Bus) Publish(s Session) {
	b.mu.Lock()
	handlers := make([]func(Session), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(s)
	}
}
