package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"versebot/internal/database"
)

// NewSubscribeHandler returns a handler for the /subscribe command.
func NewSubscribeHandler(deps HandlerDeps) bot.HandlerFunc {
	return subscribeHandler{deps}.Handle
}

type subscribeHandler struct {
	deps HandlerDeps
}

func (h subscribeHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "subscribe")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	chatID := msg.Chat.ID

	already, err := h.deps.Store.IsSubscribed(ctx, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Subscription check failed", "error", err, "chat_id", chatID)
		replyPlain(ctx, b, log, chatID, "❌ An error occurred. Please try again later.")
		return
	}
	if already {
		replyPlain(ctx, b, log, chatID,
			"✅ You are already subscribed to daily verses!\n\nUse /timezone to change your delivery timezone or /unsubscribe to stop.")
		return
	}

	// A timezone chosen before subscribing is held in the session and
	// applied here; otherwise the subscriber starts on UTC.
	tz, hadPending := h.deps.Sessions.TakePendingTimezone(chatID)
	if !hadPending {
		tz = database.DefaultTimezone
	}

	sub := &database.Subscriber{
		ChatID:    chatID,
		Username:  msg.From.Username,
		FirstName: msg.From.FirstName,
		Timezone:  tz,
	}
	if err := h.deps.Store.UpsertSubscriber(ctx, sub); err != nil {
		log.ErrorContext(ctx, "Subscription failed", "error", err, "chat_id", chatID)
		replyPlain(ctx, b, log, chatID, "❌ Subscription failed. Please try again later.")
		return
	}

	total, err := h.deps.Store.CountSubscribers(ctx)
	if err != nil {
		log.WarnContext(ctx, "Subscriber count failed", "error", err)
		total = 0
	}

	log.InfoContext(ctx, "New subscriber registered",
		"chat_id", chatID, "timezone", tz, "total_subscribers", total)

	text := fmt.Sprintf(
		"🎉 *Subscribed to daily verses!*\n\nYou will receive a verse every day at %d:00 (%s time).\n\nUse /timezone to pick a different timezone.\nUse /unsubscribe to stop at any time.",
		h.deps.Config.Scheduler.TargetLocalHour, tz)
	if total > 0 {
		text += fmt.Sprintf("\n\nYou are subscriber #%d 🙌", total)
	}

	reply(ctx, b, log, chatID, text)
}
