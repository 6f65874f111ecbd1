package database_test

import (
	"context"
	"testing"

	"versebot/internal/database"
)

// newTestStore opens an in-memory SQLite database, applies the embedded
// migrations, and seeds a small corpus.
func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	seed := []string{
		`INSERT INTO books (book_id, book_name, testament) VALUES
            (1, 'Genesis', 'Old'),
            (19, 'Psalms', 'Old'),
            (43, 'John', 'New'),
            (62, '1 John', 'New');`,
		`INSERT INTO verses (id, book_id, chapter, verse, text) VALUES
            (1, 1, 1, 1, 'In the beginning God created the heaven and the earth.'),
            (2, 19, 23, 1, 'The LORD is my shepherd; I shall not want.'),
            (3, 43, 3, 16, 'For God so loved the world, that he gave his only begotten Son.'),
            (4, 43, 14, 6, 'I am the way, the truth, and the life.'),
            (5, 62, 4, 8, 'He that loveth not knoweth not God; for God is love.');`,
		`INSERT INTO topics (topic_name, book_id, chapter, verse) VALUES
            ('love', 43, 3, 16),
            ('love', 62, 4, 8),
            ('comfort', 19, 23, 1);`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed corpus: %v", err)
		}
	}

	return database.NewStore(db, nil)
}

func TestSearchVerses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("keyword match", func(t *testing.T) {
		verses, err := store.SearchVerses(ctx, "shepherd", 5)
		if err != nil {
			t.Fatalf("SearchVerses returned error: %v", err)
		}
		if len(verses) != 1 {
			t.Fatalf("got %d verses, want 1", len(verses))
		}
		if verses[0].BookName != "Psalms" || verses[0].Chapter != 23 || verses[0].VerseNum != 1 {
			t.Errorf("got %+v, want Psalms 23:1", verses[0])
		}
	})

	t.Run("limit is honored", func(t *testing.T) {
		verses, err := store.SearchVerses(ctx, "God", 2)
		if err != nil {
			t.Fatalf("SearchVerses returned error: %v", err)
		}
		if len(verses) != 2 {
			t.Errorf("got %d verses, want 2 (limit)", len(verses))
		}
	})

	t.Run("no match returns empty, not error", func(t *testing.T) {
		verses, err := store.SearchVerses(ctx, "zyzzyva", 5)
		if err != nil {
			t.Fatalf("SearchVerses returned error: %v", err)
		}
		if len(verses) != 0 {
			t.Errorf("got %d verses, want 0", len(verses))
		}
	})

	t.Run("empty keyword is rejected", func(t *testing.T) {
		if _, err := store.SearchVerses(ctx, "", 5); err == nil {
			t.Error("expected error for empty keyword")
		}
	})
}

func TestGetVerse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("exact book name", func(t *testing.T) {
		v, err := store.GetVerse(ctx, "John", 3, 16)
		if err != nil {
			t.Fatalf("GetVerse returned error: %v", err)
		}
		if v == nil {
			t.Fatal("GetVerse returned nil for existing verse")
		}
		if v.BookName != "John" || v.Chapter != 3 || v.VerseNum != 16 {
			t.Errorf("got %+v, want John 3:16", v)
		}
	})

	t.Run("book fragment matches by substring", func(t *testing.T) {
		v, err := store.GetVerse(ctx, "Joh", 3, 16)
		if err != nil {
			t.Fatalf("GetVerse returned error: %v", err)
		}
		if v == nil || v.BookName != "John" {
			t.Errorf("fragment 'Joh' should resolve to John, got %+v", v)
		}
	})

	t.Run("missing verse is nil, nil", func(t *testing.T) {
		v, err := store.GetVerse(ctx, "John", 3, 99)
		if err != nil {
			t.Fatalf("GetVerse returned error: %v", err)
		}
		if v != nil {
			t.Errorf("got %+v, want nil for John 3:99", v)
		}
	})
}

func TestGetChapter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	verses, err := store.GetChapter(ctx, "Genesis", 1)
	if err != nil {
		t.Fatalf("GetChapter returned error: %v", err)
	}
	if len(verses) != 1 || verses[0].VerseNum != 1 {
		t.Errorf("got %+v, want one verse numbered 1", verses)
	}

	missing, err := store.GetChapter(ctx, "Genesis", 99)
	if err != nil {
		t.Fatalf("GetChapter returned error: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("got %d verses for missing chapter, want 0", len(missing))
	}
}

func TestListBooksOrder(t *testing.T) {
	store := newTestStore(t)

	books, err := store.ListBooks(context.Background())
	if err != nil {
		t.Fatalf("ListBooks returned error: %v", err)
	}

	want := []string{"Genesis", "Psalms", "John", "1 John"}
	if len(books) != len(want) {
		t.Fatalf("got %d books, want %d", len(books), len(want))
	}
	for i, name := range want {
		if books[i].Name != name {
			t.Errorf("book %d = %q, want %q (canonical order)", i, books[i].Name, name)
		}
	}
}

func TestTopics(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("list is distinct and sorted", func(t *testing.T) {
		topics, err := store.ListTopics(ctx)
		if err != nil {
			t.Fatalf("ListTopics returned error: %v", err)
		}
		want := []string{"comfort", "love"}
		if len(topics) != len(want) {
			t.Fatalf("got %v, want %v", topics, want)
		}
		for i := range want {
			if topics[i] != want[i] {
				t.Errorf("topic %d = %q, want %q", i, topics[i], want[i])
			}
		}
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		verses, err := store.GetVersesByTopic(ctx, "LOVE", 5)
		if err != nil {
			t.Fatalf("GetVersesByTopic returned error: %v", err)
		}
		if len(verses) != 2 {
			t.Errorf("got %d verses for topic 'LOVE', want 2", len(verses))
		}
	})

	t.Run("unknown topic is empty", func(t *testing.T) {
		verses, err := store.GetVersesByTopic(ctx, "nonexistent", 5)
		if err != nil {
			t.Fatalf("GetVersesByTopic returned error: %v", err)
		}
		if len(verses) != 0 {
			t.Errorf("got %d verses for unknown topic, want 0", len(verses))
		}
	})
}

func TestVerseByIDAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	count, err := store.CountVerses(ctx)
	if err != nil {
		t.Fatalf("CountVerses returned error: %v", err)
	}
	if count != 5 {
		t.Errorf("CountVerses = %d, want 5", count)
	}

	v, err := store.GetVerseByID(ctx, 3)
	if err != nil {
		t.Fatalf("GetVerseByID returned error: %v", err)
	}
	if v == nil || v.BookName != "John" || v.Chapter != 3 || v.VerseNum != 16 {
		t.Errorf("GetVerseByID(3) = %+v, want John 3:16", v)
	}

	missing, err := store.GetVerseByID(ctx, 999)
	if err != nil {
		t.Fatalf("GetVerseByID returned error: %v", err)
	}
	if missing != nil {
		t.Errorf("GetVerseByID(999) = %+v, want nil", missing)
	}

	if _, err := store.GetVerseByID(ctx, 0); err == nil {
		t.Error("expected error for non-positive verse ID")
	}
}

func TestGetRandomVerse(t *testing.T) {
	store := newTestStore(t)

	v, err := store.GetRandomVerse(context.Background())
	if err != nil {
		t.Fatalf("GetRandomVerse returned error: %v", err)
	}
	if v == nil {
		t.Fatal("GetRandomVerse returned nil for non-empty corpus")
	}
	if v.ID < 1 || v.ID > 5 {
		t.Errorf("random verse ID %d out of seeded range", v.ID)
	}
}

func TestSubscriberRegistry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const chatID = int64(123456)

	t.Run("not subscribed initially", func(t *testing.T) {
		subscribed, err := store.IsSubscribed(ctx, chatID)
		if err != nil {
			t.Fatalf("IsSubscribed returned error: %v", err)
		}
		if subscribed {
			t.Error("IsSubscribed = true before any upsert")
		}
	})

	t.Run("upsert defaults and reads back", func(t *testing.T) {
		sub := &database.Subscriber{
			ChatID:    chatID,
			Username:  "alice",
			FirstName: "Alice",
		}
		if err := store.UpsertSubscriber(ctx, sub); err != nil {
			t.Fatalf("UpsertSubscriber returned error: %v", err)
		}

		tz, ok, err := store.GetSubscriberTimezone(ctx, chatID)
		if err != nil {
			t.Fatalf("GetSubscriberTimezone returned error: %v", err)
		}
		if !ok {
			t.Fatal("subscriber missing after upsert")
		}
		if tz != database.DefaultTimezone {
			t.Errorf("timezone = %q, want default %q", tz, database.DefaultTimezone)
		}
	})

	t.Run("upsert is idempotent", func(t *testing.T) {
		sub := &database.Subscriber{ChatID: chatID, Username: "alice", FirstName: "Alice", Timezone: "Europe/London"}
		if err := store.UpsertSubscriber(ctx, sub); err != nil {
			t.Fatalf("second UpsertSubscriber returned error: %v", err)
		}
		count, err := store.CountSubscribers(ctx)
		if err != nil {
			t.Fatalf("CountSubscribers returned error: %v", err)
		}
		if count != 1 {
			t.Errorf("CountSubscribers = %d after duplicate upsert, want 1", count)
		}
	})

	t.Run("set timezone on existing record", func(t *testing.T) {
		updated, err := store.SetSubscriberTimezone(ctx, chatID, "Asia/Manila")
		if err != nil {
			t.Fatalf("SetSubscriberTimezone returned error: %v", err)
		}
		if !updated {
			t.Error("SetSubscriberTimezone = false for existing subscriber")
		}

		tz, _, err := store.GetSubscriberTimezone(ctx, chatID)
		if err != nil {
			t.Fatalf("GetSubscriberTimezone returned error: %v", err)
		}
		if tz != "Asia/Manila" {
			t.Errorf("timezone = %q after update, want Asia/Manila", tz)
		}
	})

	t.Run("set timezone never inserts", func(t *testing.T) {
		updated, err := store.SetSubscriberTimezone(ctx, 999999, "Europe/Berlin")
		if err != nil {
			t.Fatalf("SetSubscriberTimezone returned error: %v", err)
		}
		if updated {
			t.Error("SetSubscriberTimezone = true for unknown chat ID")
		}
		subscribed, err := store.IsSubscribed(ctx, 999999)
		if err != nil {
			t.Fatalf("IsSubscribed returned error: %v", err)
		}
		if subscribed {
			t.Error("timezone update created a subscriber record")
		}
	})

	t.Run("remove reports whether a record existed", func(t *testing.T) {
		removed, err := store.RemoveSubscriber(ctx, chatID)
		if err != nil {
			t.Fatalf("RemoveSubscriber returned error: %v", err)
		}
		if !removed {
			t.Error("RemoveSubscriber = false for existing subscriber")
		}

		removed, err = store.RemoveSubscriber(ctx, chatID)
		if err != nil {
			t.Fatalf("second RemoveSubscriber returned error: %v", err)
		}
		if removed {
			t.Error("RemoveSubscriber = true for already-removed subscriber")
		}
	})
}

func TestListSubscribers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, sub := range []*database.Subscriber{
		{ChatID: 1, FirstName: "A", Timezone: "UTC"},
		{ChatID: 2, FirstName: "B", Timezone: "Asia/Kolkata"},
	} {
		if err := store.UpsertSubscriber(ctx, sub); err != nil {
			t.Fatalf("UpsertSubscriber returned error: %v", err)
		}
	}

	subs, err := store.ListSubscribers(ctx)
	if err != nil {
		t.Fatalf("ListSubscribers returned error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("got %d subscribers, want 2", len(subs))
	}

	byID := make(map[int64]database.Subscriber, len(subs))
	for _, s := range subs {
		byID[s.ChatID] = s
	}
	if byID[2].Timezone != "Asia/Kolkata" {
		t.Errorf("subscriber 2 timezone = %q, want Asia/Kolkata", byID[2].Timezone)
	}
}
