package telegram

import (
	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/mascot"
	"github.com/aliskhannn/sva-bot/internal/quiz"
	"github.com/aliskhannn/sva-bot/internal/service"
	"github.com/aliskhannn/sva-bot/internal/storage"
)

type RuleService interface {
	GetCategories() []*entities.RuleCategory
	GetCategory(index int) (*entities.RuleCategory, error)
	GetRule(id int) (*service.RuleNav, error)
	GetBasics() (*entities.Primer, error)
}

type QuizService interface {
	Entry(chatID int64) (*storage.QuizEntry, error)
	Difficulties(ruleID int) ([]entities.Difficulty, error)
	MasteryDifficulties() []entities.Difficulty
	ConfigureRule(chatID int64, ruleID int, d entities.Difficulty) (*storage.QuizEntry, error)
	ConfigureMastery(chatID int64, d entities.Difficulty) (*storage.QuizEntry, error)
	Start(chatID int64, count int) (*storage.QuizEntry, error)
	Answer(chatID int64, sessionID string, index, option int) (entities.Outcome, error)
	Next(chatID int64, sessionID string, index int) (*storage.QuizEntry, error)
	Exit(chatID int64) (quiz.Result, error)
	EnterReview(chatID int64) (quiz.Result, error)
	LeaveReview(chatID int64) (quiz.Result, error)
	Retry(chatID int64) (*storage.QuizEntry, error)
	Tickle(chatID int64) (string, mascot.Snapshot, bool)
}
