// Package broadcast provides type-safe in-process fan-out of messages to subscribers.
//
// MemoryBroadcaster never blocks a publisher. When a subscriber's buffer is
// full the configured Overflow policy applies: DropOldest (default) keeps the
// most recent messages, which suits subscribers that track the latest value of
// some state; DropNewest keeps what is already queued; Disconnect removes the
// slow subscriber.
//
// Basic usage:
//
//	b := broadcast.NewMemoryBroadcaster[string](8)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	_ = b.Broadcast(ctx, broadcast.Message[string]{Data: "fr"})
//
//	for msg := range sub.Receive(ctx) {
//		fmt.Println(msg.Data)
//	}
//
// Subscriptions are removed when their context is cancelled or the broadcaster is closed.
package broadcast
