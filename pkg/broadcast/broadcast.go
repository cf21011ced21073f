package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T for type-safe broadcasting.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster.
// Implementations must be safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns a channel for receiving broadcast messages.
	// The channel is closed once the subscriber is closed.
	Receive(ctx context.Context) <-chan Message[T]

	// Close closes the subscriber and releases resources.
	// Close is idempotent and safe to call multiple times.
	Close() error
}

// Broadcaster sends messages to multiple subscribers.
type Broadcaster[T any] interface {
	// Subscribe creates a new subscriber that will receive all broadcast messages.
	// The context controls the lifetime of the subscription.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast sends a message to all active subscribers without blocking.
	Broadcast(ctx context.Context, msg Message[T]) error

	// Close shuts down the broadcaster and closes all subscribers.
	Close() error
}

// Overflow decides what happens when a subscriber's buffer is full.
type Overflow int

const (
	// DropOldest evicts the oldest buffered message to make room for the new one.
	// Subscribers tracking state only care about the latest value, so this is the default.
	DropOldest Overflow = iota
	// DropNewest discards the incoming message and keeps the buffer as is.
	DropNewest
	// Disconnect closes and removes the slow subscriber.
	Disconnect
)

type subscriber[T any] struct {
	ch       chan Message[T]
	closed   bool
	overflow Overflow
	mu       sync.Mutex
}

func newSubscriber[T any](bufferSize int, overflow Overflow) *subscriber[T] {
	return &subscriber[T]{
		ch:       make(chan Message[T], bufferSize),
		overflow: overflow,
	}
}

func (s *subscriber[T]) Receive(context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send reports false when the subscriber should be removed.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
	}

	switch s.overflow {
	case DropNewest:
		return true
	case Disconnect:
		return false
	}

	// DropOldest: the receiver may drain concurrently, so both steps stay non-blocking.
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- msg:
	default:
	}
	return true
}
