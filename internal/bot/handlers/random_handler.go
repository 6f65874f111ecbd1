package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"versebot/internal/verse"
)

// NewRandomHandler returns a handler for the /random command.
func NewRandomHandler(deps HandlerDeps) bot.HandlerFunc {
	return randomHandler{deps}.Handle
}

type randomHandler struct {
	deps HandlerDeps
}

func (h randomHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "random")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	log.InfoContext(ctx, "Handling /random command", "chat_id", msg.Chat.ID)

	v, err := h.deps.Store.GetRandomVerse(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Random verse lookup failed", "error", err)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}
	if v == nil {
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ No verses available.")
		return
	}

	reply(ctx, b, log, msg.Chat.ID, "🎲 *Random verse:*\n\n"+verse.FormatReference(v))
}
