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

const verseUsage = "Please use format: /verse Book Chapter:Verse\n\nExample: /verse John 3:16"

// NewVerseHandler returns a handler for the /verse command.
func NewVerseHandler(deps HandlerDeps) bot.HandlerFunc {
	return verseHandler{deps}.Handle
}

type verseHandler struct {
	deps HandlerDeps
}

func (h verseHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "verse")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	args := commandArgs(msg.Text)
	if args == "" {
		replyPlain(ctx, b, log, msg.Chat.ID,
			"Please provide book, chapter and verse.\n\nExamples:\n/verse John 3:16\n/verse Genesis 1:1\n/verse Psalm 23:1")
		return
	}

	bookName, chapter, verseNum, ok := parseReference(args)
	if !ok {
		replyPlain(ctx, b, log, msg.Chat.ID, verseUsage)
		return
	}

	log.InfoContext(ctx, "Handling /verse command",
		"chat_id", msg.Chat.ID, "book", bookName, "chapter", chapter, "verse", verseNum)

	v, err := h.deps.Store.GetVerse(ctx, bookName, chapter, verseNum)
	if err != nil {
		log.ErrorContext(ctx, "Verse lookup failed", "error", err, "book", bookName)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}
	if v == nil {
		replyPlain(ctx, b, log, msg.Chat.ID,
			fmt.Sprintf("❌ Verse not found: %s %d:%d", bookName, chapter, verseNum))
		return
	}

	reply(ctx, b, log, msg.Chat.ID, verse.FormatReference(v))
}

// parseReference splits "Book Chapter:Verse" into its parts. The book name
// may contain spaces ("1 John 4:8"); the last space-separated token must be
// the chapter:verse pair.
func parseReference(args string) (book string, chapter, verseNum int, ok bool) {
	if !strings.Contains(args, ":") {
		return "", 0, 0, false
	}

	idx := strings.LastIndex(args, " ")
	if idx < 0 {
		return "", 0, 0, false
	}
	book = strings.TrimSpace(args[:idx])

	chapterVerse := args[idx+1:]
	chapterStr, verseStr, found := strings.Cut(chapterVerse, ":")
	if !found || book == "" {
		return "", 0, 0, false
	}

	chapter, err := strconv.Atoi(chapterStr)
	if err != nil || chapter < 1 {
		return "", 0, 0, false
	}
	verseNum, err = strconv.Atoi(verseStr)
	if err != nil || verseNum < 1 {
		return "", 0, 0, false
	}

	return book, chapter, verseNum, true
}
