package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"versebot/internal/verse"
)

const topicLimit = 5

// NewTopicHandler returns a handler for the /topic command.
func NewTopicHandler(deps HandlerDeps) bot.HandlerFunc {
	return topicHandler{deps}.Handle
}

type topicHandler struct {
	deps HandlerDeps
}

func (h topicHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "topic")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	topicName := strings.ToLower(commandArgs(msg.Text))
	if topicName == "" {
		h.replyWithTopicList(ctx, b, msg.Chat.ID, "Please provide a topic name.")
		return
	}

	log.InfoContext(ctx, "Handling /topic command", "chat_id", msg.Chat.ID, "topic", topicName)

	results, err := h.deps.Store.GetVersesByTopic(ctx, topicName, topicLimit)
	if err != nil {
		log.ErrorContext(ctx, "Topic lookup failed", "error", err, "topic", topicName)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}
	if len(results) == 0 {
		h.replyWithTopicList(ctx, b, msg.Chat.ID, fmt.Sprintf("❌ Topic '%s' not found.", topicName))
		return
	}

	heading := fmt.Sprintf("📚 *Topic: %s*", titleCase(topicName))
	reply(ctx, b, log, msg.Chat.ID, verse.FormatList(heading, results))
}

// replyWithTopicList sends an error line followed by the available topics.
func (h topicHandler) replyWithTopicList(ctx context.Context, b *bot.Bot, chatID int64, lead string) {
	log := h.deps.Logger.With("handler", "topic")

	topics, err := h.deps.Store.ListTopics(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list topics", "error", err)
		replyPlain(ctx, b, log, chatID, lead+"\n\nExample: /topic salvation")
		return
	}

	var titled []string
	for _, t := range topics {
		titled = append(titled, titleCase(t))
	}

	text := lead + "\n\n*Available topics:*\n" + strings.Join(titled, ", ") + "\n\n*Example:* /topic salvation"
	reply(ctx, b, log, chatID, text)
}

// titleCase uppercases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
