package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uniongov/union-core/utils/events"
)

type testEvent struct {
	topic string
	value int
}

func (e testEvent) Topic() string { return e.topic }

func TestBus(t *testing.T) {
	bus := events.NewBus()

	var received []int
	unsubscribe := bus.Subscribe("a", func(e events.Event) {
		received = append(received, e.(testEvent).value)
	})

	var other []int
	bus.Subscribe("b", func(e events.Event) {
		other = append(other, e.(testEvent).value)
	})

	bus.Publish(testEvent{topic: "a", value: 1})
	bus.Publish(testEvent{topic: "b", value: 2})
	bus.Publish(testEvent{topic: "a", value: 3})

	assert.Equal(t, []int{1, 3}, received)
	assert.Equal(t, []int{2}, other)

	unsubscribe()
	unsubscribe()
	bus.Publish(testEvent{topic: "a", value: 4})

	assert.Equal(t, []int{1, 3}, received)
}

func TestBus_MultipleHandlersPerTopic(t *testing.T) {
	bus := events.NewBus()

	count := 0
	for i := 0; i < 3; i++ {
		bus.Subscribe("topic", func(events.Event) { count++ })
	}

	bus.Publish(testEvent{topic: "topic"})
	assert.Equal(t, 3, count)
}

func TestBus_NestedPublishIsQueued(t *testing.T) {
	bus := events.NewBus()

	var order []int
	bus.Subscribe("outer", func(e events.Event) {
		bus.Publish(testEvent{topic: "inner", value: 2})
		order = append(order, e.(testEvent).value)
	})
	bus.Subscribe("inner", func(e events.Event) {
		order = append(order, e.(testEvent).value)
	})

	bus.Publish(testEvent{topic: "outer", value: 1})

	assert.Equal(t, []int{1, 2}, order)
}

func TestBus_SubscribeFromHandler(t *testing.T) {
	bus := events.NewBus()

	late := 0
	bus.Subscribe("a", func(events.Event) {
		bus.Subscribe("b", func(events.Event) { late++ })
	})

	bus.Publish(testEvent{topic: "a"})
	bus.Publish(testEvent{topic: "b"})

	assert.Equal(t, 1, late)
}

func TestBus_UnsubscribeFromHandler(t *testing.T) {
	bus := events.NewBus()

	count := 0
	var unsubscribe func()
	unsubscribe = bus.Subscribe("a", func(events.Event) {
		count++
		unsubscribe()
	})

	bus.Publish(testEvent{topic: "a"})
	bus.Publish(testEvent{topic: "a"})

	assert.Equal(t, 1, count)
}

func TestBus_SameHandlerSubscribedTwice(t *testing.T) {
	bus := events.NewBus()

	count := 0
	handler := func(events.Event) { count++ }
	first := bus.Subscribe("a", handler)
	bus.Subscribe("a", handler)

	bus.Publish(testEvent{topic: "a"})
	assert.Equal(t, 2, count)

	first()
	bus.Publish(testEvent{topic: "a"})
	assert.Equal(t, 3, count)
}
