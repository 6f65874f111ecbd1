package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStatsHandler returns a handler for the admin-only /stats command.
func NewStatsHandler(deps HandlerDeps) bot.HandlerFunc {
	return statsHandler{deps}.Handle
}

type statsHandler struct {
	deps HandlerDeps
}

func (h statsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "stats")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	subscribers, err := h.deps.Store.CountSubscribers(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Subscriber count failed", "error", err)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}

	verses, err := h.deps.Store.CountVerses(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Verse count failed", "error", err)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}

	reply(ctx, b, log, msg.Chat.ID, fmt.Sprintf(
		"📊 *Bot statistics*\n\nSubscribers: %d\nVerses in corpus: %d", subscribers, verses))
}
