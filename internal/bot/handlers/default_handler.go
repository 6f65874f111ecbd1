package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"versebot/internal/verse"
)

// NewDefaultHandler returns the fallback handler for plain-text messages.
// Any non-command text is treated as a keyword search.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	return defaultHandler{deps}.Handle
}

type defaultHandler struct {
	deps HandlerDeps
}

func (h defaultHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "default")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	keyword := strings.TrimSpace(msg.Text)
	if keyword == "" || strings.HasPrefix(keyword, "/") {
		return
	}

	log.InfoContext(ctx, "Handling plain-text search", "chat_id", msg.Chat.ID, "keyword", keyword)

	verses, err := h.deps.Store.SearchVerses(ctx, keyword, searchLimit)
	if err != nil {
		log.ErrorContext(ctx, "Plain-text search failed", "error", err, "keyword", keyword)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}
	if len(verses) == 0 {
		replyPlain(ctx, b, log, msg.Chat.ID, fmt.Sprintf(
			"❌ No verses found for '%s'.\n\nTry /search, /topic or /help for more options.", keyword))
		return
	}

	header := fmt.Sprintf("🔍 *Found %d verse(s) for '%s':*", len(verses), keyword)
	reply(ctx, b, log, msg.Chat.ID, verse.FormatList(header, verses))
}
