package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"versebot/internal/verse"
)

const searchLimit = 5

// NewSearchHandler returns a handler for the /search command.
func NewSearchHandler(deps HandlerDeps) bot.HandlerFunc {
	return searchHandler{deps}.Handle
}

type searchHandler struct {
	deps HandlerDeps
}

func (h searchHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "search")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	keyword := commandArgs(msg.Text)
	if keyword == "" {
		replyPlain(ctx, b, log, msg.Chat.ID, "Please provide a word to search.\n\nExample: /search love")
		return
	}

	log.InfoContext(ctx, "Handling /search command", "chat_id", msg.Chat.ID, "keyword", keyword)

	results, err := h.deps.Store.SearchVerses(ctx, keyword, searchLimit)
	if err != nil {
		log.ErrorContext(ctx, "Verse search failed", "error", err, "keyword", keyword)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}
	if len(results) == 0 {
		replyPlain(ctx, b, log, msg.Chat.ID, fmt.Sprintf("❌ No verses found for '%s'", keyword))
		return
	}

	heading := fmt.Sprintf("🔍 *Found %d verse(s) for '%s':*", len(results), keyword)
	reply(ctx, b, log, msg.Chat.ID, verse.FormatList(heading, results))
}
