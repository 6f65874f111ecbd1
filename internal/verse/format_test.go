package verse_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"versebot/internal/database"
	"versebot/internal/verse"
)

func TestFormatReference(t *testing.T) {
	t.Parallel()

	v := &database.Verse{
		BookName: "John",
		Chapter:  3,
		VerseNum: 16,
		Text:     "For God so loved the world...",
	}

	got := verse.FormatReference(v)
	want := "📖 *John 3:16*\n\n_For God so loved the world..._"
	if got != want {
		t.Errorf("FormatReference = %q, want %q", got, want)
	}
}

func TestFormatList(t *testing.T) {
	t.Parallel()

	verses := []database.Verse{
		{BookName: "John", Chapter: 3, VerseNum: 16, Text: "first"},
		{BookName: "Romans", Chapter: 8, VerseNum: 28, Text: "second"},
	}

	got := verse.FormatList("🔍 *Found 2 verse(s):*", verses)

	if !strings.HasPrefix(got, "🔍 *Found 2 verse(s):*\n\n") {
		t.Errorf("FormatList missing heading: %q", got)
	}
	for _, want := range []string{"*John 3:16*", "_first_", "*Romans 8:28*", "_second_"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatList missing %q in %q", want, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("FormatList has trailing newline: %q", got)
	}
}

func TestFormatChapter(t *testing.T) {
	t.Parallel()

	t.Run("short chapter renders every verse", func(t *testing.T) {
		t.Parallel()

		verses := []database.ChapterVerse{
			{VerseNum: 1, Text: "one"},
			{VerseNum: 2, Text: "two"},
		}
		got := verse.FormatChapter("Jude", 1, verses)

		if !strings.Contains(got, "*Jude Chapter 1*") {
			t.Errorf("missing chapter heading: %q", got)
		}
		if !strings.Contains(got, "*1.* one") || !strings.Contains(got, "*2.* two") {
			t.Errorf("missing verse lines: %q", got)
		}
		if strings.Contains(got, "Showing") {
			t.Errorf("short chapter should not be truncated: %q", got)
		}
	})

	t.Run("long chapter is capped with a truncation note", func(t *testing.T) {
		t.Parallel()

		verses := make([]database.ChapterVerse, 50)
		for i := range verses {
			verses[i] = database.ChapterVerse{VerseNum: i + 1, Text: fmt.Sprintf("v%d", i+1)}
		}
		got := verse.FormatChapter("Psalms", 119, verses)

		if !strings.Contains(got, "*30.* v30") {
			t.Errorf("verse 30 should be rendered: %q", got)
		}
		if strings.Contains(got, "*31.* v31") {
			t.Errorf("verse 31 should be cut: %q", got)
		}
		if !strings.Contains(got, "_(Showing 30 of 50 verses)_") {
			t.Errorf("missing truncation note: %q", got)
		}
	})
}

func TestFormatDaily(t *testing.T) {
	t.Parallel()

	v := &database.Verse{BookName: "Psalms", Chapter: 118, VerseNum: 24, Text: "This is the day"}
	date := time.Date(2025, time.June, 15, 6, 0, 0, 0, time.UTC)

	got := verse.FormatDaily(v, date)

	for _, want := range []string{
		"🌅 *Good Morning! Daily Verse*",
		"📅 _June 15, 2025_",
		"*Psalms 118:24*",
		"_Reply /unsubscribe to stop daily verses_",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatDaily missing %q in %q", want, got)
		}
	}
}

func TestFormatBooks(t *testing.T) {
	t.Parallel()

	books := []database.Book{
		{Name: "Genesis", Testament: "Old"},
		{Name: "Exodus", Testament: "Old"},
		{Name: "Matthew", Testament: "New"},
	}

	got := verse.FormatBooks(books)

	if !strings.Contains(got, "*Old Testament (2):*\nGenesis, Exodus") {
		t.Errorf("FormatBooks old testament grouping wrong: %q", got)
	}
	if !strings.Contains(got, "*New Testament (1):*\nMatthew") {
		t.Errorf("FormatBooks new testament grouping wrong: %q", got)
	}
}
