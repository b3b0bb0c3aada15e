package storage

import (
	"sync"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/mascot"
	"github.com/aliskhannn/sva-bot/internal/quiz"
)

// QuizEntry is everything a chat needs to take a quiz. RuleID is 0 for
// mastery quizzes.
type QuizEntry struct {
	Session    *quiz.Session
	Mascot     *mascot.Mascot
	RuleID     int
	Difficulty entities.Difficulty
}

// QuizStorage provides in-memory storage for quiz entries by chat ID.
type QuizStorage struct {
	mu      sync.RWMutex
	entries map[int64]*QuizEntry
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		entries: make(map[int64]*QuizEntry),
	}
}

// Store saves the entry for a given chat ID, replacing any previous one.
func (s *QuizStorage) Store(chatID int64, entry *QuizEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[chatID] = entry
}

// Get retrieves the entry for a given chat ID.
func (s *QuizStorage) Get(chatID int64) (*QuizEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[chatID]
	return entry, ok
}

// Delete removes the entry for a given chat ID.
func (s *QuizStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, chatID)
}

// Len returns the number of stored entries.
func (s *QuizStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Range calls fn for every entry until fn returns false. fn runs without the
// lock held, so it may call back into the storage.
func (s *QuizStorage) Range(fn func(chatID int64, entry *QuizEntry) bool) {
	s.mu.RLock()
	snapshot := make(map[int64]*QuizEntry, len(s.entries))
	for id, e := range s.entries {
		snapshot[id] = e
	}
	s.mu.RUnlock()

	for id, e := range snapshot {
		if !fn(id, e) {
			return
		}
	}
}
