package pubsub_test

import (
	"testing"
	"time"

	"github.com/superfeelapi/goAvatar/foundation/pubsub"
)

func TestBrokerFanout(t *testing.T) {
	t.Parallel()

	b := pubsub.NewBroker()
	s1 := pubsub.NewSubscriber(1)
	s2 := pubsub.NewSubscriber(1)

	b.Subscribe("emotion", s1)
	b.Subscribe("emotion", s2)

	if err := b.Publish("emotion", "happy"); err != nil {
		t.Fatalf("publishing to subscribed topic: %s", err)
	}

	for i, s := range []*pubsub.Subscriber{s1, s2} {
		select {
		case got := <-s.GetChannel():
			if got != "happy" {
				t.Fatalf("subscriber[%d] received %v, want %q", i, got, "happy")
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber[%d] did not receive the payload", i)
		}
	}
}

func TestPublishWaitsForSubscriber(t *testing.T) {
	t.Parallel()

	b := pubsub.NewBroker()
	s := pubsub.NewSubscriber(1)

	go func() {
		time.Sleep(50 * time.Millisecond)
		b.Subscribe("viseme", s)
	}()

	if err := b.Publish("viseme", 42); err != nil {
		t.Fatalf("publish should wait for the late subscriber: %s", err)
	}

	select {
	case got := <-s.GetChannel():
		if got != 42 {
			t.Fatalf("received %v, want 42", got)
		}
	case <-time.After(time.Second):
		t.Fatal("payload never arrived")
	}
}

func TestUnSubscribe(t *testing.T) {
	t.Parallel()

	b := pubsub.NewBroker()
	s := pubsub.NewSubscriber(0)

	b.Subscribe("voice", s)

	if err := b.UnSubscribe("voice", s); err != nil {
		t.Fatalf("unsubscribing existing topic: %s", err)
	}

	if _, open := <-s.GetChannel(); open {
		t.Fatal("channel should be closed after UnSubscribe")
	}

	if err := b.UnSubscribe("missing", s); err == nil {
		t.Fatal("expected error for unknown topic")
	}
}
