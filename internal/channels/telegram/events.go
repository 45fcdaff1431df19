package telegram

import (
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"

	"github.com/nextlevelbuilder/dolphbot/internal/bus"
	"github.com/nextlevelbuilder/dolphbot/internal/channels"
)

// explicitCommands are the commands handled by fixed handlers. Any other
// slash text is forwarded as plain text so it can hit the canned-reply and
// fallback paths.
var explicitCommands = map[string]bool{
	"start": true,
	"help":  true,
	"ai":    true,
}

// handleUpdate converts one Telegram update into a bus event.
func (c *Channel) handleUpdate(update telego.Update) {
	switch {
	case update.ChannelPost != nil:
		c.publishChannelPost(update.ChannelPost)
	case update.EditedChannelPost != nil:
		c.publishChannelPost(update.EditedChannelPost)
	case update.Message != nil:
		c.handleMessage(update.Message)
	default:
		slog.Debug("telegram update skipped", "update_id", update.UpdateID)
	}
}

// publishChannelPost forwards an announcement for ingestion. Posts without
// text are dropped here; trimming happens in the store.
func (c *Channel) publishChannelPost(post *telego.Message) {
	if post.Text == "" {
		return
	}

	slog.Debug("telegram channel post received",
		"chat_id", post.Chat.ID,
		"text_preview", channels.Truncate(post.Text, 60),
	)

	c.Bus().PublishInbound(bus.InboundEvent{
		Kind:      bus.KindChannelPost,
		ChatID:    post.Chat.ID,
		Text:      post.Text,
		Timestamp: post.Date,
	})
}

func (c *Channel) handleMessage(message *telego.Message) {
	if message.Text == "" {
		return
	}
	user := message.From
	if user == nil {
		return
	}

	slog.Debug("telegram message received",
		"chat_id", message.Chat.ID,
		"user_id", user.ID,
		"username", user.Username,
		"text_preview", channels.Truncate(message.Text, 60),
	)

	ev := bus.InboundEvent{
		ChatID:    message.Chat.ID,
		UserID:    user.ID,
		Text:      message.Text,
		Timestamp: message.Date,
	}

	if name, args, ok := parseCommand(message.Text); ok && explicitCommands[name] {
		ev.Kind = bus.KindCommand
		ev.Command = name
		ev.Args = args
	} else {
		ev.Kind = bus.KindText
	}

	c.Bus().PublishInbound(ev)
}

// parseCommand splits "/cmd@Bot args" into ("cmd", "args", true).
// Returns ok=false for text that is not a command invocation.
func parseCommand(text string) (name, args string, ok bool) {
	if len(text) == 0 || text[0] != '/' {
		return "", "", false
	}

	head, rest, _ := strings.Cut(text, " ")
	head = strings.SplitN(head, "@", 2)[0] // strip @botname suffix
	head = strings.ToLower(strings.TrimPrefix(head, "/"))
	if head == "" {
		return "", "", false
	}
	return head, strings.TrimSpace(rest), true
}
