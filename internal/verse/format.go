package verse

import (
	"fmt"
	"strings"
	"time"

	"versebot/internal/database"
)

// maxChapterVerses caps how many verses of a chapter are rendered in a
// single message to stay under Telegram's message length limit.
const maxChapterVerses = 30

// FormatReference renders a verse as "📖 *Book C:V*\n\n_text_".
func FormatReference(v *database.Verse) string {
	return fmt.Sprintf("📖 *%s %d:%d*\n\n_%s_", v.BookName, v.Chapter, v.VerseNum, v.Text)
}

// FormatList renders a heading followed by a block per verse.
func FormatList(heading string, verses []database.Verse) string {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n\n")
	for _, v := range verses {
		fmt.Fprintf(&b, "📖 *%s %d:%d*\n_%s_\n\n", v.BookName, v.Chapter, v.VerseNum, v.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatChapter renders a chapter listing, capped at maxChapterVerses.
func FormatChapter(bookName string, chapter int, verses []database.ChapterVerse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📖 *%s Chapter %d*\n\n", bookName, chapter)

	shown := verses
	if len(shown) > maxChapterVerses {
		shown = shown[:maxChapterVerses]
	}
	for _, v := range shown {
		fmt.Fprintf(&b, "*%d.* %s\n\n", v.VerseNum, v.Text)
	}
	if len(verses) > maxChapterVerses {
		fmt.Fprintf(&b, "_(Showing %d of %d verses)_", maxChapterVerses, len(verses))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatOfDay renders the verse-of-the-day reply for on-demand queries.
func FormatOfDay(v *database.Verse, date time.Time) string {
	var b strings.Builder
	b.WriteString("🌅 *Verse of the Day*\n")
	fmt.Fprintf(&b, "📅 _%s_\n\n", date.Format("January 2, 2006"))
	b.WriteString(FormatReference(v))
	b.WriteString("\n\n🙏 Have a blessed day!")
	return b.String()
}

// FormatDaily renders the scheduled daily delivery message.
func FormatDaily(v *database.Verse, date time.Time) string {
	var b strings.Builder
	b.WriteString("🌅 *Good Morning! Daily Verse*\n")
	fmt.Fprintf(&b, "📅 _%s_\n\n", date.Format("January 2, 2006"))
	b.WriteString(FormatReference(v))
	b.WriteString("\n\n🙏 Have a blessed day!\n\n_Reply /unsubscribe to stop daily verses_")
	return b.String()
}

// FormatBooks renders the full book list grouped by testament.
func FormatBooks(books []database.Book) string {
	var oldT, newT []string
	for _, bk := range books {
		if bk.Testament == "Old" {
			oldT = append(oldT, bk.Name)
		} else {
			newT = append(newT, bk.Name)
		}
	}

	var b strings.Builder
	b.WriteString("📚 *Bible Books*\n\n")
	fmt.Fprintf(&b, "*Old Testament (%d):*\n%s\n\n", len(oldT), strings.Join(oldT, ", "))
	fmt.Fprintf(&b, "*New Testament (%d):*\n%s", len(newT), strings.Join(newT, ", "))
	return b.String()
}
