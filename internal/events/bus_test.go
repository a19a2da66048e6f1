package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishDeliversInOrderWithMonotonicSequence(t *testing.T) {
	bus := NewBus()
	var received []Event
	bus.Subscribe(SubscriberFunc(func(e Event) {
		received = append(received, e)
	}))

	bus.Publish(Event{Kind: HandStarted, TableID: "t1", HandNum: 1})
	bus.Publish(Event{Kind: StreetEntered, TableID: "t1", HandNum: 1})
	bus.Publish(Event{Kind: HandEnded, TableID: "t1", HandNum: 1})

	require.Len(t, received, 3)
	require.Equal(t, HandStarted, received[0].Kind)
	require.Equal(t, 1, received[0].Sequence)
	require.Equal(t, 2, received[1].Sequence)
	require.Equal(t, 3, received[2].Sequence)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	count := 0
	sub := SubscriberFunc(func(e Event) { count++ })
	bus.Subscribe(sub)
	bus.Publish(Event{Kind: TableReady})
	bus.Unsubscribe(sub)
	bus.Publish(Event{Kind: TableReady})
	require.Equal(t, 1, count)
}

func TestMultipleSubscribersAllReceive(t *testing.T) {
	bus := NewBus()
	var a, b int
	bus.Subscribe(SubscriberFunc(func(e Event) { a++ }))
	bus.Subscribe(SubscriberFunc(func(e Event) { b++ }))
	bus.Publish(Event{Kind: TableReady})
	require.Equal(t, 1, a)
	require.Equal(t, 1, b)
}
