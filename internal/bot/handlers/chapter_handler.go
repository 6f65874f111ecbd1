package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"versebot/internal/verse"
)

// NewChapterHandler returns a handler for the /chapter command.
func NewChapterHandler(deps HandlerDeps) bot.HandlerFunc {
	return chapterHandler{deps}.Handle
}

type chapterHandler struct {
	deps HandlerDeps
}

func (h chapterHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "chapter")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	args := commandArgs(msg.Text)
	if args == "" {
		replyPlain(ctx, b, log, msg.Chat.ID,
			"Please provide book and chapter.\n\nExamples:\n/chapter John 3\n/chapter Psalm 23")
		return
	}

	bookName, chapter, ok := parseChapterRef(args)
	if !ok {
		replyPlain(ctx, b, log, msg.Chat.ID,
			"Please use format: /chapter Book Chapter\n\nExample: /chapter John 3")
		return
	}

	log.InfoContext(ctx, "Handling /chapter command",
		"chat_id", msg.Chat.ID, "book", bookName, "chapter", chapter)

	verses, err := h.deps.Store.GetChapter(ctx, bookName, chapter)
	if err != nil {
		log.ErrorContext(ctx, "Chapter lookup failed", "error", err, "book", bookName)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}
	if len(verses) == 0 {
		replyPlain(ctx, b, log, msg.Chat.ID,
			fmt.Sprintf("❌ Chapter not found: %s %d", bookName, chapter))
		return
	}

	reply(ctx, b, log, msg.Chat.ID, verse.FormatChapter(bookName, chapter, verses))
}

// parseChapterRef splits "Book Chapter" where the last token is the chapter
// number and everything before it is the book name.
func parseChapterRef(args string) (book string, chapter int, ok bool) {
	idx := strings.LastIndex(args, " ")
	if idx < 0 {
		return "", 0, false
	}
	book = strings.TrimSpace(args[:idx])

	chapter, err := strconv.Atoi(args[idx+1:])
	if err != nil || chapter < 1 || book == "" {
		return "", 0, false
	}

	return book, chapter, true
}
