// Package bus provides a small in-process message bus with a single
// dispatcher goroutine. Handlers run one at a time on the dispatcher, so
// subscribers never need locking; registration and removal are explicit.
// Delivery is asynchronous, best-effort and at-most-once: a publisher never
// blocks, and messages published when the queue is full are dropped.
package bus

import "sync"

// Message is any value published on the bus.
type Message any

// Handler receives published messages on the dispatcher goroutine.
type Handler func(Message)

const queueSize = 64

// Bus fans published messages out to subscribers.
type Bus struct {
	queue chan Message
	ops   chan func()
	done  chan struct{}

	closeOnce sync.Once

	// Owned by the dispatcher goroutine; never touched elsewhere.
	nextID   int
	handlers map[int]Handler
}

// New creates a Bus and starts its dispatcher.
func New() *Bus {
	b := &Bus{
		queue:    make(chan Message, queueSize),
		ops:      make(chan func(), queueSize),
		done:     make(chan struct{}),
		handlers: map[int]Handler{},
	}
	go b.dispatch()
	return b
}

func (b *Bus) dispatch() {
	for {
		select {
		case op := <-b.ops:
			op()
		case msg := <-b.queue:
			for _, h := range b.handlers {
				h(msg)
			}
		case <-b.done:
			return
		}
	}
}

// Subscription identifies a registered handler.
type Subscription struct {
	id  int
	bus *Bus
}

// Cancel removes the handler. Safe to call more than once; messages already
// queued may still have been delivered before removal takes effect.
func (s *Subscription) Cancel() {
	s.bus.enqueueOp(func() {
		delete(s.bus.handlers, s.id)
	})
}

// Subscribe registers a handler for every published message.
func (b *Bus) Subscribe(h Handler) *Subscription {
	sub := &Subscription{bus: b}
	ready := make(chan struct{})
	b.enqueueOp(func() {
		b.nextID++
		sub.id = b.nextID
		b.handlers[sub.id] = h
		close(ready)
	})
	select {
	case <-ready:
	case <-b.done:
	}
	return sub
}

// SubscribeOnce registers a handler that is removed after its first message.
func (b *Bus) SubscribeOnce(h Handler) *Subscription {
	sub := &Subscription{bus: b}
	ready := make(chan struct{})
	b.enqueueOp(func() {
		b.nextID++
		sub.id = b.nextID
		// The handler may run before SubscribeOnce returns, so it must
		// only use state bound here on the dispatcher.
		id := sub.id
		b.handlers[id] = func(msg Message) {
			// Running on the dispatcher: direct removal, no round trip.
			delete(b.handlers, id)
			h(msg)
		}
		close(ready)
	})
	select {
	case <-ready:
	case <-b.done:
	}
	return sub
}

// Publish enqueues a message for delivery. Never blocks; drops the message
// when the queue is full.
func (b *Bus) Publish(msg Message) {
	select {
	case b.queue <- msg:
	case <-b.done:
	default:
	}
}

// Close stops the dispatcher. Pending messages are discarded.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}

func (b *Bus) enqueueOp(op func()) {
	select {
	case b.ops <- op:
	case <-b.done:
	}
}
