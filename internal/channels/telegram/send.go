package telegram

import (
	"context"
	"log/slog"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// Reply sends a text reply with link previews suppressed. Fire-and-forget:
// a delivery failure is logged, never surfaced to the dispatcher.
func (c *Channel) Reply(ctx context.Context, chatID int64, text string) {
	msg := tu.Message(tu.ID(chatID), text)
	msg.LinkPreviewOptions = &telego.LinkPreviewOptions{IsDisabled: true}

	if _, err := c.bot.SendMessage(ctx, msg); err != nil {
		slog.Warn("telegram send failed", "chat_id", chatID, "error", err)
	}
}

// Typing shows the typing indicator in a chat. Fire-and-forget.
func (c *Channel) Typing(ctx context.Context, chatID int64) {
	action := tu.ChatAction(tu.ID(chatID), telego.ChatActionTyping)
	if err := c.bot.SendChatAction(ctx, action); err != nil {
		slog.Debug("telegram chat action failed", "chat_id", chatID, "error", err)
	}
}
