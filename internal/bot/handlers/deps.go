package handlers

import (
	"log/slog"

	"versebot/internal/bot/session"
	"versebot/internal/config"
	"versebot/internal/database"
	"versebot/internal/verse"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    database.Store
	Selector *verse.Selector
	Sessions *session.Store
}
