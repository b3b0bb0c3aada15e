package service

import (
	"time"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/storage"
)

// ContentRepository is the read-only rule and quiz catalog.
type ContentRepository interface {
	GetCategories() []*entities.RuleCategory
	GetRuleQuizzes() map[int][]entities.QuizQuestion
	GetRule(id int) (*entities.Rule, error)
	AllRules() []*entities.Rule
	Neighbors(id int) (prev, next int, err error)
	GetBasics() *entities.Primer
}

// QuizStorage keeps one quiz entry per chat.
type QuizStorage interface {
	Store(chatID int64, entry *storage.QuizEntry)
	Get(chatID int64) (*storage.QuizEntry, bool)
	Delete(chatID int64)
	Range(fn func(chatID int64, entry *storage.QuizEntry) bool)
}

// IdleSweeper closes sessions that have been inactive for too long.
type IdleSweeper interface {
	SweepIdle(idle time.Duration) int
}
