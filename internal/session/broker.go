// Package session fans out identity changes to interested listeners.
package session

import (
	"sync"

	"github.com/threef-labs/threef-cli/internal/credentials"
)

type EventKind int

const (
	SignedIn EventKind = iota
	SignedOut
	TokenRefreshed
)

func (k EventKind) String() string {
	switch k {
	case SignedIn:
		return "SIGNED_IN"
	case SignedOut:
		return "SIGNED_OUT"
	case TokenRefreshed:
		return "TOKEN_REFRESHED"
	default:
		return "UNKNOWN"
	}
}

type Event struct {
	Kind   EventKind
	Tokens *credentials.SessionTokenSet
}

type Listener func(Event)

// Broker delivers events synchronously in subscription order.
type Broker struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
	order     []int
}

func NewBroker() *Broker {
	return &Broker{listeners: make(map[int]Listener)}
}

// Subscribe registers fn and returns a function that removes it. The
// returned function is safe to call more than once.
func (b *Broker) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.listeners, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	fns := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.listeners[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Len returns the number of active subscribers.
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
