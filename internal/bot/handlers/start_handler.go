package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const startCommands = `*📚 Commands:*

*Search:*
/search <word> - Search for verses
/topic <topic> - Search by topic
/topics - List all topics

*Get Verses:*
/verse John 3:16 - Get specific verse
/chapter Psalm 23 - Get full chapter
/book Romans - Browse a book
/books - List all 66 books

*Daily:*
/votd - Verse of the Day
/random - Random verse
/subscribe - Get the daily verse each morning
/timezone - Choose your timezone
/unsubscribe - Stop daily verses

/help - Show all commands`

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler processes the /start command using injected dependencies.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	msg, ok := messageAndSender(update)
	if !ok {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	log.InfoContext(ctx, "Handling /start command", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)

	subscribed, err := h.deps.Store.IsSubscribed(ctx, msg.Chat.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to check subscription status", "error", err, "chat_id", msg.Chat.ID)
	}

	status := "❌ Not subscribed yet"
	if subscribed {
		status = "✅ Subscribed to daily verses"
	}

	welcome := fmt.Sprintf("🙏 *Welcome to Bible Bot!*\n\n%s\n\n%s", status, startCommands)
	reply(ctx, b, log, msg.Chat.ID, welcome)
}
