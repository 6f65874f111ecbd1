package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"versebot/internal/verse"
)

// NewVotdHandler returns a handler for the /votd command. The verse of the
// day is the same for every user on a given calendar date.
func NewVotdHandler(deps HandlerDeps) bot.HandlerFunc {
	return votdHandler{deps}.Handle
}

type votdHandler struct {
	deps HandlerDeps
}

func (h votdHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "votd")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	log.InfoContext(ctx, "Handling /votd command", "chat_id", msg.Chat.ID)

	now := time.Now()

	v, err := h.deps.Selector.SelectOfDay(ctx, now)
	if err != nil {
		log.ErrorContext(ctx, "Verse of the day selection failed", "error", err)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}
	if v == nil {
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ No verses available.")
		return
	}

	reply(ctx, b, log, msg.Chat.ID, verse.FormatOfDay(v, now))
}
