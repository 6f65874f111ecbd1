package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// commandArgs returns the text after the command token, trimmed.
// "/search living water" -> "living water"; "/topics" -> "".
func commandArgs(text string) string {
	_, args, found := strings.Cut(text, " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(args)
}

// reply sends a Markdown-formatted reply to the chat of the update and logs
// send failures. Replies to end users never propagate errors further.
func reply(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}

// replyPlain sends a reply without a parse mode.
func replyPlain(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}

// messageAndSender guards against updates without message or sender info.
func messageAndSender(update *models.Update) (*models.Message, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}
	return update.Message, true
}
