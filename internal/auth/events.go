package auth

import "sync"

// Event is a credential-state change broadcast to interested collaborators.
type Event string

const (
	// EventAuthExpired fires when the catalog credential is cleared because
	// refresh failed or a token was rejected after retry.
	EventAuthExpired Event = "auth_expired"
	// EventAuthRefreshed fires when a new catalog access token was obtained.
	EventAuthRefreshed Event = "auth_refreshed"
)

// Broker is a best-effort publish/subscribe channel for [Event] values.
//
// Delivery is non-blocking: a subscriber that is not draining its channel
// misses events rather than stalling publishers.
type Broker struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// NewBroker creates an empty Broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Subscribe registers a new subscriber and returns its event channel along
// with an unsubscribe function. The channel is closed on unsubscribe.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++

	ch := make(chan Event, 8)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Publish delivers an event to every current subscriber without blocking.
func (b *Broker) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
