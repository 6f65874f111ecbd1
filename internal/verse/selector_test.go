package verse_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"versebot/internal/database"
	"versebot/internal/verse"
)

// stubStore serves a synthetic corpus of a fixed size where verse N is
// "text N". Only the methods the selector touches are implemented.
type stubStore struct {
	database.Store
	total int64
}

func (s stubStore) CountVerses(_ context.Context) (int64, error) {
	return s.total, nil
}

func (s stubStore) GetVerseByID(_ context.Context, id int64) (*database.Verse, error) {
	if id < 1 || id > s.total {
		return nil, nil
	}
	return &database.Verse{
		ID:       id,
		BookName: "Genesis",
		Chapter:  1,
		VerseNum: int(id),
		Text:     fmt.Sprintf("text %d", id),
	}, nil
}

func TestDateSeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date time.Time
		want int64
	}{
		{
			name: "regular date",
			date: time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC),
			want: 20250314,
		},
		{
			name: "single digit month and day",
			date: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
			want: 20240102,
		},
		{
			name: "time of day does not matter",
			date: time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
			want: 20251231,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := verse.DateSeed(tc.date); got != tc.want {
				t.Errorf("DateSeed(%v) = %d, want %d", tc.date, got, tc.want)
			}
		})
	}
}

func TestSelectOfDayDeterministic(t *testing.T) {
	t.Parallel()

	sel := verse.NewSelector(stubStore{total: 31102}, nil)
	date := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)

	first, err := sel.SelectOfDay(context.Background(), date)
	if err != nil {
		t.Fatalf("SelectOfDay returned error: %v", err)
	}
	if first == nil {
		t.Fatal("SelectOfDay returned nil verse for non-empty corpus")
	}

	// Same date, different wall-clock time: identical pick.
	for hour := 0; hour < 24; hour += 6 {
		again, err := sel.SelectOfDay(context.Background(),
			time.Date(2025, time.June, 15, hour, 30, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("SelectOfDay returned error: %v", err)
		}
		if again == nil || again.ID != first.ID {
			t.Errorf("hour %d: got verse %+v, want ID %d", hour, again, first.ID)
		}
	}
}

func TestSelectOfDayVariesByDate(t *testing.T) {
	t.Parallel()

	sel := verse.NewSelector(stubStore{total: 31102}, nil)

	seen := make(map[int64]bool)
	for day := 1; day <= 10; day++ {
		v, err := sel.SelectOfDay(context.Background(),
			time.Date(2025, time.June, day, 6, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("day %d: SelectOfDay returned error: %v", day, err)
		}
		if v == nil {
			t.Fatalf("day %d: SelectOfDay returned nil verse", day)
		}
		seen[v.ID] = true
	}

	// Ten consecutive days over a 31k corpus landing on a single verse
	// would mean the seed is being ignored.
	if len(seen) < 2 {
		t.Errorf("10 consecutive days produced %d distinct verses, want at least 2", len(seen))
	}
}

func TestSelectOfDayInRange(t *testing.T) {
	t.Parallel()

	const total = 100
	sel := verse.NewSelector(stubStore{total: total}, nil)

	for day := 1; day <= 28; day++ {
		v, err := sel.SelectOfDay(context.Background(),
			time.Date(2025, time.February, day, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("day %d: SelectOfDay returned error: %v", day, err)
		}
		if v == nil {
			t.Fatalf("day %d: pick landed outside corpus (stub returned nil)", day)
		}
		if v.ID < 1 || v.ID > total {
			t.Errorf("day %d: verse ID %d out of range [1, %d]", day, v.ID, total)
		}
	}
}

func TestSelectOfDayEmptyCorpus(t *testing.T) {
	t.Parallel()

	sel := verse.NewSelector(stubStore{total: 0}, nil)

	v, err := sel.SelectOfDay(context.Background(), time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("SelectOfDay returned error: %v", err)
	}
	if v != nil {
		t.Errorf("SelectOfDay over empty corpus = %+v, want nil", v)
	}
}
