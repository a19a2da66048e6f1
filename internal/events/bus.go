package events

import "reflect"

// Subscriber receives events published on a Bus, in the order they are
// published. A subscriber must not block or mutate engine state; if it
// needs to trigger new engine work it must queue that work rather than
// call back into the engine synchronously.
type Subscriber interface {
	HandleEvent(e Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(e Event)

// HandleEvent calls f.
func (f SubscriberFunc) HandleEvent(e Event) { f(e) }

// Bus publishes events to subscribers synchronously and in publish order.
// It is not safe for concurrent use by multiple publishers; a table's
// single-threaded engine task is always the only publisher.
type Bus struct {
	subscribers []Subscriber
	seq         int
}

// NewBus returns an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a subscriber. Order of registration is the order
// subscribers are notified in.
func (b *Bus) Subscribe(s Subscriber) {
	b.subscribers = append(b.subscribers, s)
}

// Unsubscribe removes a previously registered subscriber. Func-typed
// subscribers (SubscriberFunc) are matched by their code pointer, since Go
// func values are not comparable.
func (b *Bus) Unsubscribe(s Subscriber) {
	target := reflect.ValueOf(s)
	for i, existing := range b.subscribers {
		v := reflect.ValueOf(existing)
		if !v.IsValid() || !target.IsValid() || v.Type() != target.Type() {
			continue
		}
		var same bool
		if v.Kind() == reflect.Func {
			same = v.Pointer() == target.Pointer()
		} else {
			same = v.Type().Comparable() && existing == s
		}
		if same {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Publish assigns the next sequence number to e and delivers it to every
// subscriber, in registration order, before returning.
func (b *Bus) Publish(e Event) {
	b.seq++
	e.Sequence = b.seq
	for _, s := range b.subscribers {
		s.HandleEvent(e)
	}
}
