package database

// Verse represents a single addressable unit of corpus text, joined with
// the name of the book it belongs to.
type Verse struct {
	ID       int64  `db:"id"`
	BookName string `db:"book_name"`
	Chapter  int    `db:"chapter"`
	VerseNum int    `db:"verse"`
	Text     string `db:"text"`
}

// Book represents a corpus book with its testament classification.
type Book struct {
	Name      string `db:"book_name"`
	Testament string `db:"testament"`
}

// ChapterVerse is a single verse within a chapter listing, without the
// repeated book/chapter columns.
type ChapterVerse struct {
	VerseNum int    `db:"verse"`
	Text     string `db:"text"`
}

// Subscriber represents a registered recipient of the daily verse.
// There is at most one record per chat: upserts replace the full row.
type Subscriber struct {
	ChatID         int64  `db:"chat_id"`
	Username       string `db:"username"`
	FirstName      string `db:"first_name"`
	SubscribedDate string `db:"subscribed_date"`
	Timezone       string `db:"timezone"`
}
