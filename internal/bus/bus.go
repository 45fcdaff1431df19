// Package bus carries inbound chat events from a channel to the dispatcher.
// A single consumer drains the queue, so channel-post ingestion keeps arrival
// order without further locking.
package bus

import "context"

// EventKind enumerates the closed set of inbound event shapes.
// The dispatcher switches over this set exhaustively; unknown kinds are
// logged and dropped.
type EventKind int

const (
	// KindChannelPost is a broadcast channel post (new or edited).
	KindChannelPost EventKind = iota
	// KindCommand is a recognized explicit command (/start, /help, /ai).
	KindCommand
	// KindText is any other text message from a user.
	KindText
)

// InboundEvent is a normalized event received from the chat platform.
type InboundEvent struct {
	Kind      EventKind
	ChatID    int64
	UserID    int64  // sender, zero for channel posts
	Text      string // message or post text
	Command   string // command name without the leading slash (KindCommand)
	Args      string // argument text after the command (KindCommand)
	Timestamp int64  // unix seconds from the platform event; 0 = unknown
}

// MessageBus is a buffered inbound event queue with one producer side
// (the channel) and one consumer (the dispatcher).
type MessageBus struct {
	inbound chan InboundEvent
}

// New creates a message bus with a small buffer so the polling loop is not
// blocked by a slow AI call.
func New() *MessageBus {
	return &MessageBus{inbound: make(chan InboundEvent, 64)}
}

// PublishInbound enqueues an event, blocking if the buffer is full.
func (b *MessageBus) PublishInbound(ev InboundEvent) {
	b.inbound <- ev
}

// ConsumeInbound blocks until an event is available or ctx is cancelled.
// The second return value is false on cancellation.
func (b *MessageBus) ConsumeInbound(ctx context.Context) (InboundEvent, bool) {
	select {
	case <-ctx.Done():
		return InboundEvent{}, false
	case ev := <-b.inbound:
		return ev, true
	}
}
