// Package session holds ephemeral per-conversation state: a timezone chosen
// before the subscription is finalized. The state is process-local and lost
// on restart — a user mid-way through picking a timezone has to pick again
// after a redeploy.
package session

import "sync"

// Store keeps pending timezone selections keyed by chat ID.
// Safe for concurrent use by handler goroutines.
type Store struct {
	mu      sync.RWMutex
	pending map[int64]string
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		pending: make(map[int64]string),
	}
}

// SetPendingTimezone records a timezone choice for a chat that has not
// subscribed yet, replacing any earlier choice.
func (s *Store) SetPendingTimezone(chatID int64, timezone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[chatID] = timezone
}

// TakePendingTimezone returns and clears the pending timezone for a chat.
// The boolean is false when no choice was pending.
func (s *Store) TakePendingTimezone(chatID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tz, ok := s.pending[chatID]
	if ok {
		delete(s.pending, chatID)
	}
	return tz, ok
}

// PeekPendingTimezone returns the pending timezone without clearing it.
func (s *Store) PeekPendingTimezone(chatID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tz, ok := s.pending[chatID]
	return tz, ok
}
