// Package pubsub provides the topic broker that fans analysis results out to
// the worker goroutines. Publishing blocks until the topic has at least one
// subscriber so the operations may come up in any order.
package pubsub

import (
	"fmt"
	"sync"
	"time"
)

const topicWaitTimeout = 3 * time.Second

type Broker struct {
	topics map[string][]*Subscriber
	sync.RWMutex
}

func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string][]*Subscriber),
	}
}

func (b *Broker) Publish(topic string, data any) error {
	deadline := time.Now().Add(topicWaitTimeout)

	for {
		var subs []*Subscriber
		var exists bool

		b.RLock()
		{
			subs, exists = b.topics[topic]
		}
		b.RUnlock()

		if exists {
			for _, sub := range subs {
				sub.Signal(data)
			}
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("topic[%s] does not exist", topic)
		}

		time.Sleep(10 * time.Millisecond)
	}
}

func (b *Broker) Subscribe(topic string, s *Subscriber) {
	b.Lock()
	defer b.Unlock()
	{
		_, exists := b.topics[topic]
		if !exists {
			b.topics[topic] = make([]*Subscriber, 0)
		}

		b.topics[topic] = append(b.topics[topic], s)
	}
}

func (b *Broker) UnSubscribe(topic string, s *Subscriber) error {
	b.Lock()
	defer b.Unlock()
	{
		subs, exists := b.topics[topic]
		if !exists {
			return fmt.Errorf("topic[%s] does not exist", topic)
		}

		b.topics[topic] = removeFromSlice(subs, s)
		s.CloseChannel()
	}

	return nil
}

// =================================================================================================================

func removeFromSlice[T comparable](s []T, d T) []T {
	for i := range s {
		if s[i] == d {
			s[i] = s[len(s)-1]
			return s[:len(s)-1]
		}
	}
	return s
}
