package quiz

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
)

// DefaultOutcomeDuration is how long a correct/incorrect signal stays raised.
const DefaultOutcomeDuration = time.Second

// Option configures a Session.
type Option func(*Session)

// WithOutcomeDuration overrides how long the outcome signal stays raised.
func WithOutcomeDuration(d time.Duration) Option {
	return func(s *Session) {
		s.outcomeTTL = d
	}
}

// WithClock overrides the clock used for activity tracking.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is one user's quiz, from choosing a pool to the summary.
//
// Transitions that are not valid in the current state are ignored and
// reported through the boolean result; they never corrupt the session.
type Session struct {
	mu sync.Mutex

	sampler    *Sampler
	outcomeTTL time.Duration
	now        func() time.Time
	observers  []func(entities.Outcome)

	id        string
	state     entities.QuizState
	scope     entities.QuizScope
	pool      []entities.QuizQuestion
	questions []entities.QuizQuestion
	current   int
	score     int
	answers   map[int]int
	answered  bool

	outcome      entities.Outcome
	outcomeTimer *time.Timer
	outcomeGen   uint64

	lastActivity time.Time
}

// NewSession creates an unconfigured session drawing questions with sampler.
func NewSession(sampler *Sampler, opts ...Option) *Session {
	s := &Session{
		sampler:    sampler,
		outcomeTTL: DefaultOutcomeDuration,
		now:        time.Now,
		state:      entities.StateUnconfigured,
		answers:    make(map[int]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastActivity = s.now()
	return s
}

// OnOutcome registers fn to be called whenever an answer raises an outcome.
func (s *Session) OnOutcome(fn func(entities.Outcome)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Configure retains pool for this and later attempts. Valid from
// Unconfigured and Summary; an empty pool leaves the session as it is.
func (s *Session) Configure(pool []entities.QuizQuestion, scope entities.QuizScope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != entities.StateUnconfigured && s.state != entities.StateSummary {
		return false
	}
	if len(pool) == 0 {
		return false
	}

	s.resetLocked()
	s.pool = append([]entities.QuizQuestion(nil), pool...)
	s.scope = scope
	s.state = entities.StateConfiguring
	s.touchLocked()
	return true
}

// Retry re-configures the session with the pool of the finished attempt.
func (s *Session) Retry() bool {
	s.mu.Lock()
	pool, scope := s.pool, s.scope
	reviewing := s.state == entities.StateReviewing
	if reviewing {
		s.state = entities.StateSummary
	}
	s.mu.Unlock()

	return s.Configure(pool, scope)
}

// Start samples count questions from the retained pool and begins the quiz.
func (s *Session) Start(count int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != entities.StateConfiguring {
		return false
	}

	var questions []entities.QuizQuestion
	if s.scope == entities.ScopeMastery {
		questions = s.sampler.SampleBalanced(s.pool, count)
	} else {
		questions = s.sampler.SampleUniform(s.pool, count)
	}

	s.id = uuid.NewString()
	s.questions = questions
	s.current = 0
	s.score = 0
	s.answers = make(map[int]int)
	s.answered = false
	s.cancelOutcomeLocked()
	s.state = entities.StateActive
	s.touchLocked()
	return true
}

// Answer records option for the current question. Only the first answer to a
// question counts; later calls are ignored.
func (s *Session) Answer(option int) (entities.Outcome, bool) {
	s.mu.Lock()

	if s.state != entities.StateActive || len(s.questions) == 0 || s.answered {
		s.mu.Unlock()
		return entities.OutcomeNone, false
	}
	q := s.questions[s.current]
	if option < 0 || option >= len(q.Options) {
		s.mu.Unlock()
		return entities.OutcomeNone, false
	}

	s.answers[s.current] = option
	s.answered = true

	outcome := entities.OutcomeIncorrect
	if q.IsCorrect(option) {
		s.score++
		outcome = entities.OutcomeCorrect
	}
	s.raiseOutcomeLocked(outcome)
	s.touchLocked()

	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(outcome)
	}
	return outcome, true
}

// Next moves past an answered question, or to the summary after the last one.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != entities.StateActive || !s.answered {
		return false
	}

	s.cancelOutcomeLocked()
	if s.current >= len(s.questions)-1 {
		s.state = entities.StateSummary
	} else {
		s.current++
		s.answered = false
	}
	s.touchLocked()
	return true
}

// Exit discards the session and returns what had been recorded so far.
func (s *Session) Exit() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.resultLocked()
	s.resetLocked()
	s.pool = nil
	s.scope = ""
	s.state = entities.StateUnconfigured
	s.touchLocked()
	return res
}

// EnterReview switches from the summary to the full question review.
func (s *Session) EnterReview() bool {
	return s.switchState(entities.StateSummary, entities.StateReviewing)
}

// LeaveReview returns from the review to the summary.
func (s *Session) LeaveReview() bool {
	return s.switchState(entities.StateReviewing, entities.StateSummary)
}

func (s *Session) switchState(from, to entities.QuizState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != from {
		return false
	}
	s.state = to
	s.touchLocked()
	return true
}

// ID identifies the current attempt. It changes on every Start.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// State returns the lifecycle tag.
func (s *Session) State() entities.QuizState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Scope returns how the retained pool was built.
func (s *Session) Scope() entities.QuizScope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// PoolSize is the number of questions available to Start.
func (s *Session) PoolSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pool)
}

// NoQuestions reports an active quiz that has nothing to ask.
func (s *Session) NoQuestions() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == entities.StateActive && len(s.questions) == 0
}

// Current returns the question being answered and its index.
func (s *Session) Current() (entities.QuizQuestion, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != entities.StateActive || len(s.questions) == 0 {
		return entities.QuizQuestion{}, 0, false
	}
	return s.questions[s.current], s.current, true
}

// Index is the zero-based position of the current question.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Total is the number of questions in the attempt.
func (s *Session) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Score is the running count of correct answers.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Answered reports whether the current question already has an answer.
func (s *Session) Answered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answered
}

// Outcome is the transient signal of the last answer, if still raised.
func (s *Session) Outcome() entities.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Answers returns a copy of the question index -> chosen option map.
func (s *Session) Answers() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]int, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Result returns the finished attempt while in Summary or Reviewing.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != entities.StateSummary && s.state != entities.StateReviewing {
		return Result{}, false
	}
	return s.resultLocked(), true
}

// LastActivity is the time of the last successful transition.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) resultLocked() Result {
	answers := make(map[int]int, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	return Result{
		Questions: append([]entities.QuizQuestion(nil), s.questions...),
		Answers:   answers,
		Score:     s.score,
		Completed: s.state == entities.StateSummary || s.state == entities.StateReviewing,
	}
}

func (s *Session) resetLocked() {
	s.cancelOutcomeLocked()
	s.id = ""
	s.questions = nil
	s.current = 0
	s.score = 0
	s.answers = make(map[int]int)
	s.answered = false
}

// raiseOutcomeLocked sets the outcome and schedules its clearing, replacing
// any clear that is still pending.
func (s *Session) raiseOutcomeLocked(o entities.Outcome) {
	s.cancelOutcomeLocked()
	s.outcome = o
	if s.outcomeTTL <= 0 {
		return
	}

	gen := s.outcomeGen
	s.outcomeTimer = time.AfterFunc(s.outcomeTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.outcomeGen != gen {
			return
		}
		s.outcome = entities.OutcomeNone
		s.outcomeTimer = nil
	})
}

func (s *Session) cancelOutcomeLocked() {
	if s.outcomeTimer != nil {
		s.outcomeTimer.Stop()
		s.outcomeTimer = nil
	}
	s.outcomeGen++
	s.outcome = entities.OutcomeNone
}

func (s *Session) touchLocked() {
	s.lastActivity = s.now()
}
