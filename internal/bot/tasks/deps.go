// Package tasks implements scheduled tasks for the VerseBot Telegram bot:
// the hourly daily-verse delivery tick and database maintenance.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"versebot/internal/config"
	"versebot/internal/database"
	"versebot/internal/verse"
)

// Sender delivers an outbound message to a chat. Implemented by
// telegram.Sender; stubbed in tests.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, markdown bool) error
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Store    database.Store
	Selector *verse.Selector
	Sender   Sender
	Config   *config.Config

	// Now returns the current time. Defaults to time.Now when nil.
	Now func() time.Time
}

func (d TaskDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
