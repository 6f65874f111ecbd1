package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewTopicsHandler returns a handler for the /topics command.
func NewTopicsHandler(deps HandlerDeps) bot.HandlerFunc {
	return topicsHandler{deps}.Handle
}

type topicsHandler struct {
	deps HandlerDeps
}

func (h topicsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "topics")

	msg, ok := messageAndSender(update)
	if !ok {
		return
	}

	log.InfoContext(ctx, "Handling /topics command", "chat_id", msg.Chat.ID)

	topics, err := h.deps.Store.ListTopics(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list topics", "error", err)
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ An error occurred. Please try again later.")
		return
	}
	if len(topics) == 0 {
		replyPlain(ctx, b, log, msg.Chat.ID, "❌ No topics available.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📚 *Available Topics:*\n\n")
	for i, t := range topics {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, titleCase(t))
	}
	sb.WriteString("\n*Usage:* /topic <name>\n*Example:* /topic salvation")

	reply(ctx, b, log, msg.Chat.ID, sb.String())
}
