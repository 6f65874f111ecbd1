package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// DefaultTimezone is the timezone assigned to subscribers who never picked one.
const DefaultTimezone = "UTC"

// Store defines the interface for database operations.
// Corpus lookups are read-only and side-effect-free; a lookup that matches
// nothing returns an empty result (or nil), never an error. Registry
// operations are single-record transactions keyed by chat ID.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// --- Corpus lookups ---

	// SearchVerses retrieves up to 'limit' verses whose text contains the keyword.
	SearchVerses(ctx context.Context, keyword string, limit int) ([]Verse, error)

	// GetVerse retrieves a single verse by book name fragment, chapter, and verse
	// number. The book is matched by substring. Returns nil, nil when not found.
	GetVerse(ctx context.Context, bookFragment string, chapter, verse int) (*Verse, error)

	// GetChapter retrieves all verses of a chapter ordered by verse number.
	GetChapter(ctx context.Context, bookFragment string, chapter int) ([]ChapterVerse, error)

	// SearchByBook retrieves up to 'limit' verses from books matching the fragment.
	SearchByBook(ctx context.Context, bookFragment string, limit int) ([]Verse, error)

	// ListBooks retrieves all books in canonical order with their testament.
	ListBooks(ctx context.Context) ([]Book, error)

	// ListTopics retrieves all distinct topic names sorted lexicographically.
	ListTopics(ctx context.Context) ([]string, error)

	// GetVersesByTopic retrieves up to 'limit' verses tagged with the topic.
	// Topic names are stored lowercase; the lookup normalizes its argument.
	GetVersesByTopic(ctx context.Context, topic string, limit int) ([]Verse, error)

	// CountVerses returns the total number of verses in the corpus.
	CountVerses(ctx context.Context) (int64, error)

	// GetVerseByID retrieves a verse by its dense monotonic ID. Returns nil, nil
	// when not found.
	GetVerseByID(ctx context.Context, id int64) (*Verse, error)

	// GetRandomVerse retrieves one uniformly random verse. Returns nil, nil on
	// an empty corpus.
	GetRandomVerse(ctx context.Context) (*Verse, error)

	// --- Subscriber registry ---

	// UpsertSubscriber inserts or fully replaces the record keyed by chat ID.
	// Idempotent; fails only on a storage fault, never on duplicates.
	UpsertSubscriber(ctx context.Context, sub *Subscriber) error

	// RemoveSubscriber deletes the record for the chat ID.
	// Returns true iff a record existed and was deleted.
	RemoveSubscriber(ctx context.Context, chatID int64) (bool, error)

	// IsSubscribed reports whether a record exists for the chat ID.
	IsSubscribed(ctx context.Context, chatID int64) (bool, error)

	// GetSubscriberTimezone returns the subscriber's timezone identifier.
	// The boolean is false when the chat ID is not subscribed.
	GetSubscriberTimezone(ctx context.Context, chatID int64) (string, bool, error)

	// SetSubscriberTimezone updates the timezone of an existing record.
	// Returns true iff a record existed to update; it never inserts.
	SetSubscriberTimezone(ctx context.Context, chatID int64, timezone string) (bool, error)

	// ListSubscribers retrieves all subscribers. Order is unspecified.
	ListSubscribers(ctx context.Context) ([]Subscriber, error)

	// CountSubscribers returns the total number of subscribers.
	CountSubscribers(ctx context.Context) (int, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const verseColumns = `b.book_name, v.chapter, v.verse, v.text, v.id`

// SearchVerses retrieves up to 'limit' verses whose text contains the keyword.
func (s *sqlxStore) SearchVerses(ctx context.Context, keyword string, limit int) ([]Verse, error) {
	if keyword == "" {
		return nil, fmt.Errorf("search keyword cannot be empty")
	}
	if limit <= 0 {
		limit = 5
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var verses []Verse
	query := `
        SELECT ` + verseColumns + `
        FROM verses v
        JOIN books b ON v.book_id = b.book_id
        WHERE v.text LIKE ?
        LIMIT ?;
    `

	err := s.db.SelectContext(ctx, &verses, query, "%"+keyword+"%", limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error searching verses", "keyword", keyword, "error", err)
		return nil, fmt.Errorf("failed to search verses for %q: %w", keyword, err)
	}

	s.logger.DebugContext(ctx, "Verse search completed", "keyword", keyword, "count", len(verses))
	return verses, nil
}

// GetVerse retrieves a single verse by book fragment, chapter, and verse number.
func (s *sqlxStore) GetVerse(ctx context.Context, bookFragment string, chapter, verse int) (*Verse, error) {
	if bookFragment == "" {
		return nil, fmt.Errorf("book name cannot be empty")
	}

	var v Verse
	query := `
        SELECT ` + verseColumns + `
        FROM verses v
        JOIN books b ON v.book_id = b.book_id
        WHERE b.book_name LIKE ? AND v.chapter = ? AND v.verse = ?;
    `

	err := s.db.GetContext(ctx, &v, query, "%"+bookFragment+"%", chapter, verse)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Not found is a valid outcome, not an error
		s.logger.DebugContext(ctx, "Verse not found", "book", bookFragment, "chapter", chapter, "verse", verse)
		return nil, nil

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting verse", "book", bookFragment, "error", err)
		return nil, fmt.Errorf("failed to get verse %s %d:%d: %w", bookFragment, chapter, verse, err)
	}

	return &v, nil
}

// GetChapter retrieves all verses of a chapter ordered by verse number.
func (s *sqlxStore) GetChapter(ctx context.Context, bookFragment string, chapter int) ([]ChapterVerse, error) {
	if bookFragment == "" {
		return nil, fmt.Errorf("book name cannot be empty")
	}

	var verses []ChapterVerse
	query := `
        SELECT v.verse, v.text
        FROM verses v
        JOIN books b ON v.book_id = b.book_id
        WHERE b.book_name LIKE ? AND v.chapter = ?
        ORDER BY v.verse;
    `

	err := s.db.SelectContext(ctx, &verses, query, "%"+bookFragment+"%", chapter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting chapter", "book", bookFragment, "chapter", chapter, "error", err)
		return nil, fmt.Errorf("failed to get chapter %s %d: %w", bookFragment, chapter, err)
	}

	return verses, nil
}

// SearchByBook retrieves up to 'limit' verses from books matching the fragment.
func (s *sqlxStore) SearchByBook(ctx context.Context, bookFragment string, limit int) ([]Verse, error) {
	if bookFragment == "" {
		return nil, fmt.Errorf("book name cannot be empty")
	}
	if limit <= 0 {
		limit = 10
	}

	var verses []Verse
	query := `
        SELECT ` + verseColumns + `
        FROM verses v
        JOIN books b ON v.book_id = b.book_id
        WHERE b.book_name LIKE ?
        LIMIT ?;
    `

	err := s.db.SelectContext(ctx, &verses, query, "%"+bookFragment+"%", limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error searching by book", "book", bookFragment, "error", err)
		return nil, fmt.Errorf("failed to search verses in book %q: %w", bookFragment, err)
	}

	return verses, nil
}

// ListBooks retrieves all books in canonical order with their testament.
func (s *sqlxStore) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	query := `SELECT book_name, testament FROM books ORDER BY book_id;`

	if err := s.db.SelectContext(ctx, &books, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing books", "error", err)
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return books, nil
}

// ListTopics retrieves all distinct topic names sorted lexicographically.
func (s *sqlxStore) ListTopics(ctx context.Context) ([]string, error) {
	var topics []string
	query := `SELECT DISTINCT topic_name FROM topics ORDER BY topic_name;`

	if err := s.db.SelectContext(ctx, &topics, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing topics", "error", err)
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	return topics, nil
}

// GetVersesByTopic retrieves up to 'limit' verses tagged with the topic.
func (s *sqlxStore) GetVersesByTopic(ctx context.Context, topic string, limit int) ([]Verse, error) {
	if topic == "" {
		return nil, fmt.Errorf("topic name cannot be empty")
	}
	if limit <= 0 {
		limit = 5
	}

	var verses []Verse
	query := `
        SELECT b.book_name, t.chapter, t.verse, v.text, v.id
        FROM topics t
        JOIN books b ON t.book_id = b.book_id
        JOIN verses v ON t.book_id = v.book_id AND t.chapter = v.chapter AND t.verse = v.verse
        WHERE t.topic_name = ?
        LIMIT ?;
    `

	err := s.db.SelectContext(ctx, &verses, query, strings.ToLower(topic), limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting verses by topic", "topic", topic, "error", err)
		return nil, fmt.Errorf("failed to get verses for topic %q: %w", topic, err)
	}

	s.logger.DebugContext(ctx, "Topic lookup completed", "topic", topic, "count", len(verses))
	return verses, nil
}

// CountVerses returns the total number of verses in the corpus.
func (s *sqlxStore) CountVerses(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM verses;`); err != nil {
		s.logger.ErrorContext(ctx, "Error counting verses", "error", err)
		return 0, fmt.Errorf("failed to count verses: %w", err)
	}
	return count, nil
}

// GetVerseByID retrieves a verse by its dense monotonic ID.
func (s *sqlxStore) GetVerseByID(ctx context.Context, id int64) (*Verse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("verse ID must be positive, got %d", id)
	}

	var v Verse
	query := `
        SELECT ` + verseColumns + `
        FROM verses v
        JOIN books b ON v.book_id = b.book_id
        WHERE v.id = ?;
    `

	err := s.db.GetContext(ctx, &v, query, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No verse with ID", "verse_id", id)
		return nil, nil

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting verse by ID", "verse_id", id, "error", err)
		return nil, fmt.Errorf("failed to get verse %d: %w", id, err)
	}

	return &v, nil
}

// GetRandomVerse retrieves one uniformly random verse.
func (s *sqlxStore) GetRandomVerse(ctx context.Context) (*Verse, error) {
	var v Verse
	query := `
        SELECT ` + verseColumns + `
        FROM verses v
        JOIN books b ON v.book_id = b.book_id
        ORDER BY RANDOM()
        LIMIT 1;
    `

	err := s.db.GetContext(ctx, &v, query)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting random verse", "error", err)
		return nil, fmt.Errorf("failed to get random verse: %w", err)
	}

	return &v, nil
}

// UpsertSubscriber inserts or fully replaces the record keyed by chat ID.
func (s *sqlxStore) UpsertSubscriber(ctx context.Context, sub *Subscriber) error {
	if sub == nil {
		return fmt.Errorf("cannot save nil subscriber")
	}
	if sub.ChatID == 0 {
		return fmt.Errorf("subscriber must have a non-zero chat_id")
	}

	if sub.Timezone == "" {
		sub.Timezone = DefaultTimezone
	}
	if sub.SubscribedDate == "" {
		sub.SubscribedDate = time.Now().UTC().Format("2006-01-02")
	}

	query := `
        INSERT OR REPLACE INTO subscribers (chat_id, username, first_name, subscribed_date, timezone)
        VALUES (:chat_id, :username, :first_name, :subscribed_date, :timezone);
    `

	_, err := s.db.NamedExecContext(ctx, query, sub)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving subscriber", "chat_id", sub.ChatID, "error", err)
		return fmt.Errorf("failed to save subscriber %d: %w", sub.ChatID, err)
	}

	s.logger.DebugContext(ctx, "Subscriber saved", "chat_id", sub.ChatID, "timezone", sub.Timezone)
	return nil
}

// RemoveSubscriber deletes the record for the chat ID.
func (s *sqlxStore) RemoveSubscriber(ctx context.Context, chatID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM subscribers WHERE chat_id = ?;`, chatID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error removing subscriber", "chat_id", chatID, "error", err)
		return false, fmt.Errorf("failed to remove subscriber %d: %w", chatID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not get affected row count after delete", "chat_id", chatID, "error", err)
		return false, fmt.Errorf("failed to check removal of subscriber %d: %w", chatID, err)
	}

	if affected > 0 {
		s.logger.InfoContext(ctx, "Subscriber removed", "chat_id", chatID)
	}
	return affected > 0, nil
}

// IsSubscribed reports whether a record exists for the chat ID.
func (s *sqlxStore) IsSubscribed(ctx context.Context, chatID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT 1 FROM subscribers WHERE chat_id = ? LIMIT 1;`, chatID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil

	case err != nil:
		s.logger.ErrorContext(ctx, "Error checking subscription", "chat_id", chatID, "error", err)
		return false, fmt.Errorf("failed to check subscription for %d: %w", chatID, err)
	}

	return true, nil
}

// GetSubscriberTimezone returns the subscriber's timezone identifier.
func (s *sqlxStore) GetSubscriberTimezone(ctx context.Context, chatID int64) (string, bool, error) {
	var tz string
	err := s.db.GetContext(ctx, &tz, `SELECT timezone FROM subscribers WHERE chat_id = ?;`, chatID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting subscriber timezone", "chat_id", chatID, "error", err)
		return "", false, fmt.Errorf("failed to get timezone for %d: %w", chatID, err)
	}

	return tz, true, nil
}

// SetSubscriberTimezone updates the timezone of an existing record.
func (s *sqlxStore) SetSubscriberTimezone(ctx context.Context, chatID int64, timezone string) (bool, error) {
	if timezone == "" {
		return false, fmt.Errorf("timezone cannot be empty")
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE subscribers SET timezone = ? WHERE chat_id = ?;`, timezone, chatID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error setting subscriber timezone", "chat_id", chatID, "error", err)
		return false, fmt.Errorf("failed to set timezone for %d: %w", chatID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not get affected row count after timezone update", "chat_id", chatID, "error", err)
		return false, fmt.Errorf("failed to check timezone update for %d: %w", chatID, err)
	}

	if affected > 0 {
		s.logger.DebugContext(ctx, "Subscriber timezone updated", "chat_id", chatID, "timezone", timezone)
	}
	return affected > 0, nil
}

// ListSubscribers retrieves all subscribers. Order is unspecified.
func (s *sqlxStore) ListSubscribers(ctx context.Context) ([]Subscriber, error) {
	var subs []Subscriber
	query := `SELECT chat_id, username, first_name, subscribed_date, timezone FROM subscribers;`

	if err := s.db.SelectContext(ctx, &subs, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing subscribers", "error", err)
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	return subs, nil
}

// CountSubscribers returns the total number of subscribers.
func (s *sqlxStore) CountSubscribers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM subscribers;`); err != nil {
		s.logger.ErrorContext(ctx, "Error counting subscribers", "error", err)
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)

	default:
		s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	}

	return nil
}
