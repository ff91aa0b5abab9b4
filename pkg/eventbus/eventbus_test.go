package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestPublishDeliversToAllListeners(t *testing.T) {
	bus := New(zap.NewNop())

	received := make(chan Event, 2)
	listener := func(_ context.Context, e Event) error {
		received <- e
		return nil
	}
	bus.Subscribe("thing.happened", listener)
	bus.Subscribe("thing.happened", listener)

	bus.Publish(context.Background(), testEvent{name: "thing.happened"})

	for i := 0; i < 2; i++ {
		select {
		case e := <-received:
			assert.Equal(t, "thing.happened", e.Name())
		case <-time.After(2 * time.Second):
			t.Fatal("listener was not invoked")
		}
	}
}

func TestPublishIgnoresUnrelatedEvents(t *testing.T) {
	bus := New(zap.NewNop())

	var calls int64
	bus.Subscribe("wanted", func(context.Context, Event) error {
		atomic.AddInt64(&calls, 1)
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "unwanted"})
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt64(&calls))
}

func TestListenerErrorDoesNotAffectPublisher(t *testing.T) {
	bus := New(zap.NewNop())

	done := make(chan struct{})
	bus.Subscribe("boom", func(context.Context, Event) error {
		close(done)
		return errors.New("listener blew up")
	})

	// Publish must not panic or block on the failing listener.
	bus.Publish(context.Background(), testEvent{name: "boom"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener was not invoked")
	}
}
