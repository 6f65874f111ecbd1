package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStatusHandler returns a handler for the /mystatus command.
func NewStatusHandler(deps HandlerDeps) bot.HandlerFunc {
	return statusHandler{deps}.Handle
}

type statusHandler struct {
	deps HandlerDeps
}

func (h statusHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "status")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	chatID := msg.Chat.ID

	tz, subscribed, err := h.deps.Store.GetSubscriberTimezone(ctx, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Status lookup failed", "error", err, "chat_id", chatID)
		replyPlain(ctx, b, log, chatID, "❌ An error occurred. Please try again later.")
		return
	}

	if !subscribed {
		replyPlain(ctx, b, log, chatID,
			"📋 Status: not subscribed\n\nUse /subscribe to start receiving daily verses.")
		return
	}

	reply(ctx, b, log, chatID, fmt.Sprintf(
		"📋 *Your subscription*\n\nStatus: subscribed ✅\nTimezone: %s\nDelivery: daily at %d:00 local time\n\nUse /timezone to change your timezone.",
		tz, h.deps.Config.Scheduler.TargetLocalHour))
}
