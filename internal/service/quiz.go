package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/mascot"
	"github.com/aliskhannn/sva-bot/internal/quiz"
	"github.com/aliskhannn/sva-bot/internal/storage"
)

var (
	ErrSessionNotFound      = errors.New("quiz session not found")
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrStaleAction          = errors.New("action does not match the current question")
	ErrInvalidTransition    = errors.New("action not allowed in the current quiz state")
)

// QuizOptions tunes sessions and mascots created by QuizService.
type QuizOptions struct {
	OutcomeDuration time.Duration
	Mascot          mascot.Timings
	Now             func() time.Time
}

// QuizService drives one quiz session per chat. Mutating calls are
// serialized so the idle sweeper never interleaves with a user action.
type QuizService struct {
	mu sync.Mutex

	content ContentRepository
	storage QuizStorage
	sampler *quiz.Sampler
	opts    QuizOptions
	logger  *zap.Logger
}

func NewQuizService(
	content ContentRepository,
	storage QuizStorage,
	sampler *quiz.Sampler,
	opts QuizOptions,
	logger *zap.Logger,
) *QuizService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OutcomeDuration <= 0 {
		opts.OutcomeDuration = quiz.DefaultOutcomeDuration
	}
	if opts.Mascot == (mascot.Timings{}) {
		opts.Mascot = mascot.DefaultTimings()
	}
	return &QuizService{
		content: content,
		storage: storage,
		sampler: sampler,
		opts:    opts,
		logger:  logger,
	}
}

// Entry returns the chat's quiz entry.
func (s *QuizService) Entry(chatID int64) (*storage.QuizEntry, error) {
	entry, ok := s.storage.Get(chatID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

// ConfigureRule abandons whatever the chat was doing and prepares a quiz over
// one rule at difficulty d.
func (s *QuizService) ConfigureRule(chatID int64, ruleID int, d entities.Difficulty) (*storage.QuizEntry, error) {
	pool, err := s.RulePool(ruleID, d)
	if err != nil {
		return nil, err
	}
	return s.configure(chatID, pool, entities.ScopeRule, ruleID, d)
}

// ConfigureMastery prepares a stratified quiz over every rule at difficulty d.
func (s *QuizService) ConfigureMastery(chatID int64, d entities.Difficulty) (*storage.QuizEntry, error) {
	return s.configure(chatID, s.MasteryPool(d), entities.ScopeMastery, 0, d)
}

func (s *QuizService) configure(
	chatID int64,
	pool []entities.QuizQuestion,
	scope entities.QuizScope,
	ruleID int,
	d entities.Difficulty,
) (*storage.QuizEntry, error) {
	if len(pool) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.ensure(chatID)
	entry.Session.Exit()
	if !entry.Session.Configure(pool, scope) {
		return nil, ErrInvalidTransition
	}
	entry.Mascot.SetExpression(mascot.ExpressionHappy)

	next := &storage.QuizEntry{
		Session:    entry.Session,
		Mascot:     entry.Mascot,
		RuleID:     ruleID,
		Difficulty: d,
	}
	s.storage.Store(chatID, next)

	s.logger.Debug("quiz configured",
		zap.Int64("chat_id", chatID),
		zap.String("scope", string(scope)),
		zap.Int("rule_id", ruleID),
		zap.String("difficulty", string(d)),
		zap.Int("pool_size", len(pool)),
	)
	return next, nil
}

// Start samples count questions and begins the quiz.
func (s *QuizService) Start(chatID int64, count int) (*storage.QuizEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.Entry(chatID)
	if err != nil {
		return nil, err
	}
	if !entry.Session.Start(count) {
		return nil, ErrInvalidTransition
	}
	entry.Mascot.SetExpression(mascot.ExpressionThinking)

	s.logger.Info("quiz started",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", entry.Session.ID()),
		zap.Int("questions", entry.Session.Total()),
	)
	return entry, nil
}

// Answer records option for question index of attempt sessionID. Presses on
// buttons of an older attempt or question report ErrStaleAction.
func (s *QuizService) Answer(chatID int64, sessionID string, index, option int) (entities.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.current(chatID, sessionID, index)
	if err != nil {
		return entities.OutcomeNone, err
	}

	outcome, ok := entry.Session.Answer(option)
	if !ok {
		return entities.OutcomeNone, ErrStaleAction
	}
	return outcome, nil
}

// Next moves past question index of attempt sessionID.
func (s *QuizService) Next(chatID int64, sessionID string, index int) (*storage.QuizEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.current(chatID, sessionID, index)
	if err != nil {
		return nil, err
	}
	if !entry.Session.Next() {
		return nil, ErrStaleAction
	}

	if res, ok := entry.Session.Result(); ok {
		grade := GradeFor(res.Percentage())
		entry.Mascot.SetExpression(grade.Expression)
		if grade.Celebrate {
			entry.Mascot.Observe(entities.OutcomeCorrect)
		}
		s.logger.Info("quiz finished",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", sessionID),
			zap.Int("score", res.Score),
			zap.Int("total", res.Total()),
		)
	}
	return entry, nil
}

// Exit discards the chat's session and returns what was recorded.
func (s *QuizService) Exit(chatID int64) (quiz.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.Entry(chatID)
	if err != nil {
		return quiz.Result{}, err
	}
	return s.exitLocked(chatID, entry), nil
}

func (s *QuizService) exitLocked(chatID int64, entry *storage.QuizEntry) quiz.Result {
	res := entry.Session.Exit()
	entry.Mascot.Stop()
	s.storage.Delete(chatID)
	return res
}

// EnterReview switches from the summary to the question review.
func (s *QuizService) EnterReview(chatID int64) (quiz.Result, error) {
	return s.review(chatID, (*quiz.Session).EnterReview)
}

// LeaveReview returns from the question review to the summary.
func (s *QuizService) LeaveReview(chatID int64) (quiz.Result, error) {
	return s.review(chatID, (*quiz.Session).LeaveReview)
}

func (s *QuizService) review(chatID int64, transition func(*quiz.Session) bool) (quiz.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.Entry(chatID)
	if err != nil {
		return quiz.Result{}, err
	}
	if !transition(entry.Session) {
		return quiz.Result{}, ErrInvalidTransition
	}

	res, _ := entry.Session.Result()
	return res, nil
}

// Retry prepares a new attempt over the pool of the finished one.
func (s *QuizService) Retry(chatID int64) (*storage.QuizEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.Entry(chatID)
	if err != nil {
		return nil, err
	}
	if !entry.Session.Retry() {
		return nil, ErrInvalidTransition
	}
	entry.Mascot.SetExpression(mascot.ExpressionHappy)
	return entry, nil
}

// Tickle asks the chat's mascot for a grammar tip, creating an idle entry
// when the chat has none.
func (s *QuizService) Tickle(chatID int64) (tip string, snap mascot.Snapshot, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.ensure(chatID)
	tip, ok = entry.Mascot.Tickle()
	return tip, entry.Mascot.Snapshot(), ok
}

// SweepIdle exits every session whose last activity is older than idle and
// returns how many were closed.
func (s *QuizService) SweepIdle(idle time.Duration) int {
	cutoff := s.opts.Now().Add(-idle)

	var stale []int64
	s.storage.Range(func(chatID int64, entry *storage.QuizEntry) bool {
		if entry.Session.LastActivity().Before(cutoff) {
			stale = append(stale, chatID)
		}
		return true
	})

	swept := 0
	for _, chatID := range stale {
		if s.exitIfIdle(chatID, cutoff) {
			swept++
		}
	}
	return swept
}

// exitIfIdle closes the chat's session only if it is still idle once the
// service lock is held. Activity since the scan keeps the session alive.
func (s *QuizService) exitIfIdle(chatID int64, cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.storage.Get(chatID)
	if !ok || !entry.Session.LastActivity().Before(cutoff) {
		return false
	}
	s.exitLocked(chatID, entry)
	s.logger.Debug("idle session closed", zap.Int64("chat_id", chatID))
	return true
}

func (s *QuizService) current(chatID int64, sessionID string, index int) (*storage.QuizEntry, error) {
	entry, err := s.Entry(chatID)
	if err != nil {
		return nil, err
	}
	if entry.Session.ID() != sessionID || entry.Session.Index() != index {
		return nil, fmt.Errorf("%w: session %s question %d", ErrStaleAction, sessionID, index)
	}
	return entry, nil
}

// ensure returns the chat's entry, creating an unconfigured one if needed.
// Callers hold s.mu.
func (s *QuizService) ensure(chatID int64) *storage.QuizEntry {
	if entry, ok := s.storage.Get(chatID); ok {
		return entry
	}

	session := quiz.NewSession(s.sampler,
		quiz.WithOutcomeDuration(s.opts.OutcomeDuration),
		quiz.WithClock(s.opts.Now),
	)
	m := mascot.New(s.opts.Mascot, rand.NewSource(s.opts.Now().UnixNano()+chatID))
	session.OnOutcome(m.Observe)
	m.Start()

	entry := &storage.QuizEntry{Session: session, Mascot: m}
	s.storage.Store(chatID, entry)
	return entry
}
