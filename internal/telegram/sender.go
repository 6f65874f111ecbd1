package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sender delivers outbound messages through the Telegram Bot API.
// It satisfies the tasks.Sender interface used by scheduled deliveries.
type Sender struct {
	bot    *bot.Bot
	logger *slog.Logger
}

// NewSender creates a Sender backed by the given bot instance.
func NewSender(b *bot.Bot, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{
		bot:    b,
		logger: logger.With("component", "sender"),
	}
}

// SendMessage sends text to the chat. When markdown is true the message is
// sent with Markdown parse mode. The returned error carries the Telegram
// API description verbatim so callers can classify delivery failures.
func (s *Sender) SendMessage(ctx context.Context, chatID int64, text string, markdown bool) error {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markdown {
		params.ParseMode = models.ParseModeMarkdown
	}

	_, err := s.bot.SendMessage(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Message sent", "chat_id", chatID, "length", len(text))
	return nil
}
