package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const helpText = `📖 *Bible Bot Help*

*🔍 Search Commands:*
/search <word> - Search all verses
/topic <topic> - Search by topic
/topics - See all topics

*📍 Get Specific Verses:*
/verse John 3:16
/verse Genesis 1:1
/verse Psalm 23:1

*📄 Get Chapters:*
/chapter John 3
/chapter Psalm 23

*📚 Browse:*
/book Romans
/books - List all 66 books

*🌅 Daily Verses:*
/votd - Verse of the Day
/random - Random verse
/subscribe - Auto daily verse each morning
/timezone - Choose your delivery timezone
/unsubscribe - Stop daily verses
/mystatus - Check subscription

You can also just type any word and I'll search for it.`

// NewHelpHandler returns a handler for the /help command.
func NewHelpHandler(deps HandlerDeps) bot.HandlerFunc {
	return helpHandler{deps}.Handle
}

// helpHandler processes the /help command using injected dependencies.
type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "help")

	msg, ok := messageAndSender(update)
	if !ok {
		log.WarnContext(ctx, "Help handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	log.InfoContext(ctx, "Handling /help command", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)

	help := helpText
	if len(h.deps.Config.Timezones) > 0 {
		var labels []string
		for _, tz := range h.deps.Config.Timezones {
			labels = append(labels, tz.Label)
		}
		help += "\n\n*🌍 Timezones available:*\n" + strings.Join(labels, ", ")
	}

	reply(ctx, b, log, msg.Chat.ID, help)
}
