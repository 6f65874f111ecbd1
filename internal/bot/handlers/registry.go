package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a command handler with its registration
// parameters and middleware. It encapsulates all information needed to
// register and document a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands initializes and returns a map of all available bot commands.
// It configures each command with appropriate handlers and middleware.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	command := func(pattern string, handler tgbot.HandlerFunc, mw ...tgbot.Middleware) RegisteredHandler {
		return RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     pattern,
			Handler:     handler,
			MatchType:   tgbot.MatchTypeCommandStartOnly,
			Middleware:  mw,
		}
	}

	handlers["/start"] = command("start", NewStartHandler(deps))
	handlers["/help"] = command("help", NewHelpHandler(deps))

	handlers["/search"] = command("search", NewSearchHandler(deps))
	handlers["/topic"] = command("topic", NewTopicHandler(deps))
	handlers["/topics"] = command("topics", NewTopicsHandler(deps))
	handlers["/verse"] = command("verse", NewVerseHandler(deps))
	handlers["/chapter"] = command("chapter", NewChapterHandler(deps))
	handlers["/book"] = command("book", NewBookHandler(deps))
	handlers["/books"] = command("books", NewBooksHandler(deps))

	handlers["/votd"] = command("votd", NewVotdHandler(deps))
	handlers["/random"] = command("random", NewRandomHandler(deps))

	handlers["/subscribe"] = command("subscribe", NewSubscribeHandler(deps))
	handlers["/unsubscribe"] = command("unsubscribe", NewUnsubscribeHandler(deps))
	handlers["/mystatus"] = command("mystatus", NewStatusHandler(deps))
	handlers["/timezone"] = command("timezone", NewTimezoneHandler(deps))

	handlers["/stats"] = command("stats", NewStatsHandler(deps), AdminOnly(deps))

	// Timezone picks arrive as callback queries from the inline keyboard
	handlers["timezone_callback"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     timezoneCallbackPrefix,
		Handler:     NewTimezoneCallbackHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}

	return handlers
}
