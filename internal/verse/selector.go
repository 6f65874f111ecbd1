// Package verse implements the deterministic verse-of-the-day selection and
// the Markdown rendering of verses for outgoing messages.
package verse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"versebot/internal/database"
)

// Selector picks the verse of the day. The pick is a pure function of the
// calendar date and the corpus size, so every caller on the same day sees
// the same verse without any persisted daily-pick record.
type Selector struct {
	store  database.Store
	logger *slog.Logger
}

// NewSelector creates a Selector backed by the given store.
func NewSelector(store database.Store, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Selector{
		store:  store,
		logger: logger.With("component", "selector"),
	}
}

// DateSeed derives the deterministic seed for a calendar date.
func DateSeed(date time.Time) int64 {
	return int64(date.Year())*10000 + int64(date.Month())*100 + int64(date.Day())
}

// SelectOfDay returns the verse for the given calendar date.
// The draw is uniform over [1, total] from a generator seeded with the date,
// so two calls with the same date always return the identical verse.
// Returns nil, nil on an empty corpus.
func (s *Selector) SelectOfDay(ctx context.Context, date time.Time) (*database.Verse, error) {
	total, err := s.store.CountVerses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to size corpus for daily selection: %w", err)
	}
	if total == 0 {
		s.logger.WarnContext(ctx, "Daily selection over empty corpus")
		return nil, nil
	}

	seed := DateSeed(date)
	rng := rand.New(rand.NewSource(seed))
	verseID := rng.Int63n(total) + 1

	v, err := s.store.GetVerseByID(ctx, verseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily verse %d: %w", verseID, err)
	}

	s.logger.DebugContext(ctx, "Selected verse of the day",
		"date", date.Format("2006-01-02"), "seed", seed, "verse_id", verseID)
	return v, nil
}
