// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"context"
	"sync"
	"time"
)

// DefaultBuffer is the channel capacity used when Subscribe is called with a
// non-positive buffer.
const DefaultBuffer = 64

// Event is a single publication on the bus.
type Event struct {
	Topic   Topic
	Payload any
	At      time.Time
}

// Subscription receives the events of the topics it was created for.
//
// Events are delivered in publication order on C. A subscription that stops
// draining C applies backpressure to publishers; call Unsubscribe when done.
type Subscription struct {
	C <-chan Event

	ch     chan Event
	done   chan struct{}
	once   sync.Once
	topics []Topic
	bus    *Bus
}

// Done is closed once the subscription has been cancelled or the bus closed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Unsubscribe detaches the subscription from the bus. Pending publishers
// blocked on it are released. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
	})
	s.bus.remove(s)
}

// Bus is an in-process publish/subscribe relay with named topics.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Topic][]*Subscription
	closed bool
	now    func() time.Time
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[Topic][]*Subscription),
		now:  time.Now,
	}
}

// Subscribe registers a subscription for the given topics with a channel of
// the given capacity. Subscribing to a closed bus returns a subscription
// whose Done channel is already closed.
func (b *Bus) Subscribe(buffer int, topics ...Topic) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	ch := make(chan Event, buffer)
	sub := &Subscription{
		C:      ch,
		ch:     ch,
		done:   make(chan struct{}),
		topics: topics,
		bus:    b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		sub.once.Do(func() { close(sub.done) })
		return sub
	}

	for _, topic := range topics {
		b.subs[topic] = append(b.subs[topic], sub)
	}

	return sub
}

// SubscribeFunc runs fn for every event published on topic, in order, on a
// dedicated goroutine. The returned function cancels the subscription.
func (b *Bus) SubscribeFunc(topic Topic, fn func(Event)) (unsubscribe func()) {
	sub := b.Subscribe(DefaultBuffer, topic)

	go func() {
		for {
			select {
			case <-sub.done:
				return
			case ev := <-sub.ch:
				fn(ev)
			}
		}
	}()

	return sub.Unsubscribe
}

// Publish delivers payload to every subscriber of topic. It blocks while a
// subscriber's buffer is full, until that subscriber drains, unsubscribes,
// or ctx is done. Publishing on a closed bus is a no-op.
func (b *Bus) Publish(ctx context.Context, topic Topic, payload any) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	targets := make([]*Subscription, len(b.subs[topic]))
	copy(targets, b.subs[topic])
	b.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload, At: b.now()}

	for _, sub := range targets {
		select {
		case sub.ch <- ev:
		case <-sub.done:
		case <-ctx.Done():
			return
		}
	}
}

// SubscriberCount returns the number of subscriptions listening on topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// Close cancels every subscription. Subsequent publications are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	all := b.subs
	b.subs = make(map[Topic][]*Subscription)
	b.mu.Unlock()

	for _, subs := range all {
		for _, sub := range subs {
			sub.once.Do(func() { close(sub.done) })
		}
	}
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, topic := range sub.topics {
		list := b.subs[topic]
		for i, s := range list {
			if s == sub {
				b.subs[topic] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(b.subs[topic]) == 0 {
			delete(b.subs, topic)
		}
	}
}
