// Package bot contains the dispatcher that routes inbound events to canned
// replies, the update store, or the AI fallback, plus the cooldown policy
// and the fallback gateway itself.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nextlevelbuilder/dolphbot/internal/bus"
	"github.com/nextlevelbuilder/dolphbot/internal/responses"
	"github.com/nextlevelbuilder/dolphbot/internal/updates"
)

const (
	// maxReplyRunes caps outbound reply length; longer AI output is cut to
	// truncatedReplyRunes and an ellipsis is appended.
	maxReplyRunes       = 3500
	truncatedReplyRunes = 3490

	apologyReply    = "⚠️ Error: AI response failed."
	aiDisabledReply = "⚠️ AI is not enabled (set OPENAI_API_KEY)."
	aiUsageReply    = "Ask your question after the command, like this:\n/ai What is the NFT plan?"
)

// Sender delivers outbound actions to the chat platform, fire-and-forget.
type Sender interface {
	Reply(ctx context.Context, chatID int64, text string)
	Typing(ctx context.Context, chatID int64)
}

// Dispatcher routes each inbound event by shape: channel posts into the
// update store, recognized commands to fixed handlers, other text through
// canned-reply resolution with the AI fallback behind it. Unmatched input
// is silently ignored.
type Dispatcher struct {
	table    *responses.Table
	store    *updates.Store
	gateway  *Gateway
	cooldown *Cooldown
	bus      *bus.MessageBus
	sender   Sender
	now      func() time.Time
}

// NewDispatcher wires the dispatcher. All collaborators are owned by the
// caller and scoped to the running service instance.
func NewDispatcher(table *responses.Table, store *updates.Store, gateway *Gateway, cooldown *Cooldown, msgBus *bus.MessageBus, sender Sender) *Dispatcher {
	return &Dispatcher{
		table:    table,
		store:    store,
		gateway:  gateway,
		cooldown: cooldown,
		bus:      msgBus,
		sender:   sender,
		now:      time.Now,
	}
}

// Run consumes inbound events until ctx is cancelled. Each event is fully
// handled before the next is taken, which keeps ingestion ordered and makes
// the dispatcher the single writer of the store and the cooldown table.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		ev, ok := d.bus.ConsumeInbound(ctx)
		if !ok {
			return nil
		}
		d.Dispatch(ctx, ev)
	}
}

// Dispatch routes one inbound event.
func (d *Dispatcher) Dispatch(ctx context.Context, ev bus.InboundEvent) {
	switch ev.Kind {
	case bus.KindChannelPost:
		d.store.Ingest(ev.Text, ev.Timestamp, ev.ChatID)

	case bus.KindCommand:
		d.handleCommand(ctx, ev)

	case bus.KindText:
		d.handleText(ctx, ev)

	default:
		slog.Warn("unknown inbound event kind", "kind", int(ev.Kind))
	}
}

func (d *Dispatcher) handleCommand(ctx context.Context, ev bus.InboundEvent) {
	switch ev.Command {
	case "start":
		d.sender.Reply(ctx, ev.ChatID, d.tableOr("/start", "Welcome! Type /help"))

	case "help":
		d.sender.Reply(ctx, ev.ChatID, d.tableOr("/help", "Commands list"))

	case "ai":
		d.handleAICommand(ctx, ev)

	default:
		// The channel only emits recognized commands; treat anything else
		// like plain text so behavior stays fail-quiet.
		d.handleText(ctx, ev)
	}
}

// handleAICommand serves the explicit /ai path. It is not subject to the
// cooldown: explicit requests are always honored, only the implicit
// fallback is throttled.
func (d *Dispatcher) handleAICommand(ctx context.Context, ev bus.InboundEvent) {
	if !d.gateway.Enabled() {
		d.sender.Reply(ctx, ev.ChatID, aiDisabledReply)
		return
	}

	prompt := strings.TrimSpace(ev.Args)
	if prompt == "" {
		d.sender.Reply(ctx, ev.ChatID, aiUsageReply)
		return
	}

	d.sender.Typing(ctx, ev.ChatID)
	text, err := d.gateway.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("ai generation failed", "user_id", ev.UserID, "error", err)
		d.sender.Reply(ctx, ev.ChatID, apologyReply)
		return
	}
	if text != "" {
		d.sender.Reply(ctx, ev.ChatID, truncateReply(text))
	}
}

func (d *Dispatcher) handleText(ctx context.Context, ev bus.InboundEvent) {
	if reply, ok := d.table.Reply(ev.Text); ok {
		d.sender.Reply(ctx, ev.ChatID, reply)
		return
	}

	if !d.gateway.Enabled() {
		return
	}
	if !d.cooldown.Allow(ev.UserID, d.now()) {
		slog.Debug("ai fallback throttled", "user_id", ev.UserID)
		return
	}

	d.sender.Typing(ctx, ev.ChatID)
	text, err := d.gateway.Generate(ctx, ev.Text)
	if err != nil {
		slog.Warn("ai generation failed", "user_id", ev.UserID, "error", err)
		d.sender.Reply(ctx, ev.ChatID, apologyReply)
		return
	}
	if text != "" {
		d.sender.Reply(ctx, ev.ChatID, truncateReply(text))
	}
	// Otherwise stay quiet.
}

func (d *Dispatcher) tableOr(key, fallback string) string {
	if r, ok := d.table.Get(key); ok {
		return r
	}
	return fallback
}

// truncateReply enforces the outbound length cap at the dispatch call site.
func truncateReply(s string) string {
	r := []rune(s)
	if len(r) <= maxReplyRunes {
		return s
	}
	return string(r[:truncatedReplyRunes]) + "…"
}
