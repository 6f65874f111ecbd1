package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"versebot/internal/verse"
)

const bookLimit = 10

// NewBookHandler returns a handler for the /book command.
func NewBookHandler(deps HandlerDeps) bot.HandlerFunc {
	return bookHandler{deps}.Handle
}

type bookHandler struct {
	deps HandlerDeps
}

func (h bookHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "book")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	bookName := commandArgs(msg.Text)
	if bookName == "" {
		replyPlain(ctx, b, log, msg.Chat.ID,
			"Please provide a book name.\n\nExamples:\n/book John\n/book Genesis\n/book Psalms")
		return
	}

	log.InfoContext(ctx, "Handling /book command", "chat_id", msg.Chat.ID, "book", bookName)

	verses, err := h.deps.Store.SearchByBook(ctx, bookName, bookLimit)
	if err != nil {
		log.ErrorContext(ctx, "Book search failed", "error", err, "book", bookName)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}
	if len(verses) == 0 {
		replyPlain(ctx, b, log, msg.Chat.ID,
			fmt.Sprintf("❌ No verses found for book: %s\n\nUse /books to see available books.", bookName))
		return
	}

	header := fmt.Sprintf("📚 *First %d verse(s) from %s:*", len(verses), bookName)
	reply(ctx, b, log, msg.Chat.ID, verse.FormatList(header, verses))
}
