// Package events provides the in-process event bus that keepers publish state transitions to.
package events

import (
	"sync"

	"github.com/GianlucaGuarini/go-observable"
)

// Event is a notification about a state transition
type Event interface {
	Topic() string
}

// Publisher publishes events
type Publisher interface {
	Publish(event Event)
}

// Bus is a topic based publish/subscribe hub. Every event is triggered on the observable under its topic,
// so handlers run synchronously in subscription order.
// Events published from within a handler are queued and delivered once the current event has been handled.
// Subscriptions made or cancelled from within a handler take effect after the current event.
type Bus struct {
	observable *observable.Observable

	mu         sync.Mutex
	queue      []Event
	deferred   []func()
	publishing bool
}

var _ Publisher = &Bus{}

// NewBus returns an empty event bus
func NewBus() *Bus {
	return &Bus{observable: observable.New()}
}

// Publish delivers the event to all handlers subscribed to its topic
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	b.queue = append(b.queue, event)
	if b.publishing {
		b.mu.Unlock()
		return
	}

	b.publishing = true
	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]

		b.mu.Unlock()
		b.observable.Trigger(next.Topic(), next)
		b.mu.Lock()

		for _, change := range b.deferred {
			change()
		}
		b.deferred = nil
	}
	b.publishing = false
	b.mu.Unlock()
}

// Subscribe registers the handler for the given topic and returns a function that cancels the subscription
func (b *Bus) Subscribe(topic string, handler func(Event)) (unsubscribe func()) {
	// the observable tells callbacks apart by function pointer, so every subscription gets its own closure
	fn := func(event Event) { handler(event) }
	b.modify(func() { b.observable.On(topic, fn) })

	var once sync.Once
	return func() {
		once.Do(func() {
			b.modify(func() { b.observable.Off(topic, fn) })
		})
	}
}

// modify applies the change to the observable right away, or after the current event while one is being triggered
func (b *Bus) modify(change func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.publishing {
		b.deferred = append(b.deferred, change)
		return
	}

	change()
}
