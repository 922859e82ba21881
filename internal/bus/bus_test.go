package bus_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/bus"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestBus_DeliversToSubscriber(t *testing.T) {
	b := bus.New()
	defer b.Close()

	var got atomic.Value
	b.Subscribe(func(msg bus.Message) {
		got.Store(msg)
	})

	b.Publish("hello")

	waitFor(t, func() bool {
		v, ok := got.Load().(string)
		return ok && v == "hello"
	})
}

func TestBus_CancelStopsDelivery(t *testing.T) {
	b := bus.New()
	defer b.Close()

	var count atomic.Int32
	sub := b.Subscribe(func(bus.Message) {
		count.Add(1)
	})

	b.Publish(1)
	waitFor(t, func() bool { return count.Load() == 1 })

	sub.Cancel()
	// Give the cancel op time to land on the dispatcher.
	time.Sleep(20 * time.Millisecond)

	b.Publish(2)
	time.Sleep(50 * time.Millisecond)

	if count.Load() != 1 {
		t.Errorf("expected no delivery after cancel, got %d", count.Load())
	}
}

func TestBus_SubscribeOnceIsOneShot(t *testing.T) {
	b := bus.New()
	defer b.Close()

	var count atomic.Int32
	b.SubscribeOnce(func(bus.Message) {
		count.Add(1)
	})

	b.Publish(1)
	b.Publish(2)
	b.Publish(3)

	waitFor(t, func() bool { return count.Load() >= 1 })
	time.Sleep(50 * time.Millisecond)

	if count.Load() != 1 {
		t.Errorf("once subscriber fired %d times", count.Load())
	}
}

func TestBus_SubscribeOnceDuringPublishBurst(t *testing.T) {
	b := bus.New()
	defer b.Close()

	// A one-shot handler can fire before SubscribeOnce returns when
	// messages are already queued; registration must not depend on
	// caller-side state.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				b.Publish("tick")
			}
		}
	}()

	counts := make([]atomic.Int32, 50)
	for i := range counts {
		n := &counts[i]
		b.SubscribeOnce(func(bus.Message) {
			n.Add(1)
		})
	}

	close(stop)
	wg.Wait()

	// Let any in-flight deliveries settle, then check the one-shot
	// guarantee held for every subscriber.
	b.Publish("tail")
	time.Sleep(50 * time.Millisecond)
	for i := range counts {
		if got := counts[i].Load(); got > 1 {
			t.Errorf("subscriber %d fired %d times", i, got)
		}
	}
}

func TestBus_MultipleSubscribers(t *testing.T) {
	b := bus.New()
	defer b.Close()

	var a, c atomic.Int32
	b.Subscribe(func(bus.Message) { a.Add(1) })
	b.Subscribe(func(bus.Message) { c.Add(1) })

	b.Publish("x")

	waitFor(t, func() bool { return a.Load() == 1 && c.Load() == 1 })
}

func TestBus_PublishAfterCloseDoesNotBlock(t *testing.T) {
	b := bus.New()
	b.Close()

	done := make(chan struct{})
	go func() {
		b.Publish("ignored")
		b.Subscribe(func(bus.Message) {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("operations on a closed bus must not block")
	}
}
