package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// timezoneCallbackPrefix tags callback data for the timezone keyboard.
const timezoneCallbackPrefix = "tz:"

// NewTimezoneHandler returns a handler for the /timezone command. It presents
// the configured timezone catalog as an inline keyboard.
func NewTimezoneHandler(deps HandlerDeps) bot.HandlerFunc {
	return timezoneHandler{deps}.Handle
}

type timezoneHandler struct {
	deps HandlerDeps
}

func (h timezoneHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "timezone")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	log.InfoContext(ctx, "Handling /timezone command", "chat_id", msg.Chat.ID)

	const perRow = 2

	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton
	for _, opt := range h.deps.Config.Timezones {
		row = append(row, models.InlineKeyboardButton{
			Text:         opt.Label,
			CallbackData: timezoneCallbackPrefix + opt.Key,
		})
		if len(row) == perRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   "🌍 Choose your timezone for daily verse delivery:",
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: rows,
		},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send timezone keyboard", "error", err, "chat_id", msg.Chat.ID)
	}
}

// NewTimezoneCallbackHandler returns a handler for timezone keyboard presses.
func NewTimezoneCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return timezoneCallbackHandler{deps}.Handle
}

type timezoneCallbackHandler struct {
	deps HandlerDeps
}

func (h timezoneCallbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "timezone_callback")

	cb := update.CallbackQuery
	if cb == nil {
		return
	}

	key := strings.TrimPrefix(cb.Data, timezoneCallbackPrefix)
	chatID := cb.From.ID
	if cb.Message.Message != nil {
		chatID = cb.Message.Message.Chat.ID
	}

	defer func() {
		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
		}); err != nil {
			log.WarnContext(ctx, "Failed to answer callback query", "error", err)
		}
	}()

	opt, ok := h.deps.Config.TimezoneByKey(key)
	if !ok {
		log.WarnContext(ctx, "Unknown timezone key in callback", "key", key, "chat_id", chatID)
		replyPlain(ctx, b, log, chatID, "❌ Unknown timezone. Please run /timezone again.")
		return
	}

	updated, err := h.deps.Store.SetSubscriberTimezone(ctx, chatID, opt.Location)
	if err != nil {
		log.ErrorContext(ctx, "Timezone update failed", "error", err, "chat_id", chatID)
		replyPlain(ctx, b, log, chatID, "❌ An error occurred. Please try again later.")
		return
	}

	if !updated {
		// Not subscribed yet: remember the choice for the next /subscribe.
		h.deps.Sessions.SetPendingTimezone(chatID, opt.Location)
		log.InfoContext(ctx, "Timezone chosen before subscribing",
			"chat_id", chatID, "timezone", opt.Location)
		replyPlain(ctx, b, log, chatID, fmt.Sprintf(
			"🌍 Timezone set to %s.\n\nYou are not subscribed yet. Use /subscribe and it will be applied.", opt.Label))
		return
	}

	log.InfoContext(ctx, "Subscriber timezone updated", "chat_id", chatID, "timezone", opt.Location)
	replyPlain(ctx, b, log, chatID, fmt.Sprintf(
		"✅ Timezone updated to %s.\n\nDaily verses will arrive at %d:00 your local time.",
		opt.Label, h.deps.Config.Scheduler.TargetLocalHour))
}
