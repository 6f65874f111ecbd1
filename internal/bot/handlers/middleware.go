// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminOnly creates a middleware that checks if the message sender is the configured admin user.
// If not, it sends a "Not Authorized" message and stops processing by returning early.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			msg, ok := messageAndSender(update)
			if !ok {
				next(ctx, b, update)
				return
			}

			if msg.From.ID != deps.Config.Telegram.AdminUserID {
				log := deps.Logger.With("middleware", "AdminOnly")
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", msg.From.ID, "chat_id", msg.Chat.ID)
				replyPlain(ctx, b, log, msg.Chat.ID, "🚫 You are not authorized to use this command.")
				return
			}

			next(ctx, b, update)
		}
	}
}
