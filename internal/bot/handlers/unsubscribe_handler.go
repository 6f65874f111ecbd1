package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewUnsubscribeHandler returns a handler for the /unsubscribe command.
func NewUnsubscribeHandler(deps HandlerDeps) bot.HandlerFunc {
	return unsubscribeHandler{deps}.Handle
}

type unsubscribeHandler struct {
	deps HandlerDeps
}

func (h unsubscribeHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "unsubscribe")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	chatID := msg.Chat.ID

	removed, err := h.deps.Store.RemoveSubscriber(ctx, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Unsubscribe failed", "error", err, "chat_id", chatID)
		replyPlain(ctx, b, log, chatID, "❌ An error occurred. Please try again later.")
		return
	}

	if !removed {
		replyPlain(ctx, b, log, chatID,
			"You are not subscribed to daily verses.\n\nUse /subscribe to start receiving them!")
		return
	}

	log.InfoContext(ctx, "Subscriber removed", "chat_id", chatID)
	replyPlain(ctx, b, log, chatID,
		"👋 You have been unsubscribed from daily verses.\n\nUse /subscribe if you change your mind!")
}
