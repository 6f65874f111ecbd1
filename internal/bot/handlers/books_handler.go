package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"versebot/internal/verse"
)

// NewBooksHandler returns a handler for the /books command.
func NewBooksHandler(deps HandlerDeps) bot.HandlerFunc {
	return booksHandler{deps}.Handle
}

type booksHandler struct {
	deps HandlerDeps
}

func (h booksHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "books")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	log.InfoContext(ctx, "Handling /books command", "chat_id", msg.Chat.ID)

	books, err := h.deps.Store.ListBooks(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Book listing failed", "error", err)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}
	if len(books) == 0 {
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ No books available.")
		return
	}

	reply(ctx, b, log, msg.Chat.ID, verse.FormatBooks(books))
}
