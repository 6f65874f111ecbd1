package session_test

import (
	"sync"
	"testing"

	"versebot/internal/bot/session"
)

func TestPendingTimezoneLifecycle(t *testing.T) {
	t.Parallel()

	s := session.NewStore()

	if _, ok := s.TakePendingTimezone(1); ok {
		t.Error("TakePendingTimezone reported a choice on an empty store")
	}

	s.SetPendingTimezone(1, "Europe/Berlin")

	if tz, ok := s.PeekPendingTimezone(1); !ok || tz != "Europe/Berlin" {
		t.Errorf("Peek = %q, %v, want Europe/Berlin, true", tz, ok)
	}

	// Peek does not consume.
	if tz, ok := s.TakePendingTimezone(1); !ok || tz != "Europe/Berlin" {
		t.Errorf("Take = %q, %v, want Europe/Berlin, true", tz, ok)
	}

	if _, ok := s.TakePendingTimezone(1); ok {
		t.Error("second Take reported a choice after the first consumed it")
	}
}

func TestSetPendingTimezoneReplaces(t *testing.T) {
	t.Parallel()

	s := session.NewStore()
	s.SetPendingTimezone(5, "Asia/Kolkata")
	s.SetPendingTimezone(5, "America/Chicago")

	if tz, _ := s.TakePendingTimezone(5); tz != "America/Chicago" {
		t.Errorf("Take = %q, want the later choice America/Chicago", tz)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := session.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			s.SetPendingTimezone(chatID, "UTC")
			s.PeekPendingTimezone(chatID)
			s.TakePendingTimezone(chatID)
		}(int64(i))
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		if _, ok := s.PeekPendingTimezone(i); ok {
			t.Errorf("chat %d still has a pending timezone after Take", i)
		}
	}
}
