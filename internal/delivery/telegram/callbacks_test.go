package telegram

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/mascot"
	"github.com/aliskhannn/sva-bot/internal/quiz"
	"github.com/aliskhannn/sva-bot/internal/repository"
	"github.com/aliskhannn/sva-bot/internal/service"
	"github.com/aliskhannn/sva-bot/internal/storage"
)

const testCatalog = `
basics:
  title: "Before You Begin: The Basics"
  intro: "Master the core concepts first."
  sections:
    - heading: "Subject"
      body: "The **subject** is who or what the sentence is about."
categories:
  - title: "Basics"
    icon: "📘"
    rules:
      - id: 1
        name: "Rule 1: Singular subjects"
        formula: "S(sg) + V(sg)"
        explanation: "A singular subject takes a **singular** verb."
        examples:
          - { sentence: "The dog barks.", subject: "dog", verb: "barks" }
        infographic:
          heading: "One subject"
          subtitle: "SINGULAR"
          caption: "Verb takes -s"
          examples:
            - { sentence: "The bird sings.", subject: "bird", verb: "sings" }
      - id: 2
        name: "Rule 2: Plural subjects"
quizzes:
  1:
    - { question: "The cat ___ asleep.", options: ["is", "are", "be", "am"], correct: 0, difficulty: easy }
    - { question: "My brother ___ tall.", options: ["are", "is", "were", "be"], correct: 1, difficulty: easy }
    - { question: "The list ___ long.", options: ["are", "were", "is", "be"], correct: 2, difficulty: easy }
`

const testChat int64 = 42

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return newTestHandlerWith(t, testCatalog)
}

func newTestHandlerWith(t *testing.T, catalog string) *Handler {
	t.Helper()

	repo, err := repository.ParseContent([]byte(catalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	timings := mascot.DefaultTimings()
	timings.BlinkMin, timings.BlinkMax, timings.IdleInterval = time.Hour, 2*time.Hour, time.Hour

	quizService := service.NewQuizService(repo, storage.NewQuizStorage(), quiz.NewSampler(rand.NewSource(7)),
		service.QuizOptions{OutcomeDuration: time.Hour, Mascot: timings}, zap.NewNop())
	t.Cleanup(func() { _, _ = quizService.Exit(testChat) })

	return &Handler{
		logger:      zap.NewNop(),
		ruleService: service.NewRuleService(repo),
		quizService: quizService,
		quizConfig:  QuizConfig{SizeOptions: []int{2, 5}, AllLimit: 10},
	}
}

func press(t *testing.T, h *Handler, data string) (*screen, string) {
	t.Helper()

	s, toast, err := h.dispatchCallback(context.Background(), testChat, decodeCallback(data))
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", data, err)
	}
	return s, toast
}

func currentQuestion(t *testing.T, h *Handler) (*storage.QuizEntry, entities.QuizQuestion, int) {
	t.Helper()

	entry, err := h.quizService.Entry(testChat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q, idx, ok := entry.Session.Current()
	if !ok {
		t.Fatal("expected a current question")
	}
	return entry, q, idx
}

func TestCallbackQuizFlow(t *testing.T) {
	h := newTestHandler(t)

	s, _ := press(t, h, buildRuleTiersCallback(1))
	if s == nil || !strings.Contains(s.text, "Rule 1") {
		t.Fatalf("expected tier picker for rule 1, got %+v", s)
	}

	s, _ = press(t, h, buildRuleTierCallback(1, entities.DifficultyEasy))
	if !strings.Contains(s.text, "3 questions available") {
		t.Errorf("expected size picker, got %q", s.text)
	}

	s, _ = press(t, h, buildSizeCallback(2))
	if !strings.Contains(s.text, "Question 1 of 2") {
		t.Errorf("expected first question, got %q", s.text)
	}

	entry, q, idx := currentQuestion(t, h)
	sid := entry.Session.ID()

	_, toast := press(t, h, buildAnswerCallback(sid, idx, q.Correct))
	if toast != msgCorrectToast {
		t.Errorf("expected correct toast, got %q", toast)
	}

	// A second press on the same question is stale.
	_, _, err := h.dispatchCallback(context.Background(), testChat, decodeCallback(buildAnswerCallback(sid, idx, 0)))
	if !errors.Is(err, service.ErrStaleAction) {
		t.Errorf("expected ErrStaleAction, got %v", err)
	}
	if toast := h.callbackError(testChat, callbackData{}, err); toast != "" {
		t.Errorf("expected stale press to stay silent, got %q", toast)
	}

	s, _ = press(t, h, buildNextCallback(sid, idx))
	if !strings.Contains(s.text, "Question 2 of 2") {
		t.Errorf("expected second question, got %q", s.text)
	}

	_, q, idx = currentQuestion(t, h)
	_, toast = press(t, h, buildAnswerCallback(sid, idx, (q.Correct+1)%len(q.Options)))
	if toast != msgIncorrectToast {
		t.Errorf("expected incorrect toast, got %q", toast)
	}

	s, _ = press(t, h, buildNextCallback(sid, idx))
	if !strings.Contains(s.text, "Your score: 1 / 2") {
		t.Errorf("expected summary, got %q", s.text)
	}

	s, _ = press(t, h, actionReview)
	if !strings.Contains(s.text, "Review") || !strings.Contains(s.text, "❌ 2\\.") {
		t.Errorf("expected review, got %q", s.text)
	}

	s, _ = press(t, h, actionUnreview)
	if !strings.Contains(s.text, "Quiz Complete") {
		t.Errorf("expected summary after leaving review, got %q", s.text)
	}

	s, _ = press(t, h, actionRetry)
	if !strings.Contains(s.text, "Quiz Setup") {
		t.Errorf("expected size picker after retry, got %q", s.text)
	}

	s, _ = press(t, h, actionExit)
	if s.text != formatWelcome() {
		t.Errorf("expected menu after exit, got %q", s.text)
	}
	if _, err := h.quizService.Entry(testChat); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("expected session to be gone, got %v", err)
	}
}

func TestCallbackOldSessionIsStale(t *testing.T) {
	h := newTestHandler(t)

	press(t, h, buildRuleTierCallback(1, entities.DifficultyEasy))
	press(t, h, buildSizeCallback(2))
	old, _, idx := currentQuestion(t, h)
	oldID := old.Session.ID()

	press(t, h, buildRuleTierCallback(1, entities.DifficultyEasy))
	press(t, h, buildSizeCallback(2))

	_, _, err := h.dispatchCallback(context.Background(), testChat, decodeCallback(buildAnswerCallback(oldID, idx, 0)))
	if !errors.Is(err, service.ErrStaleAction) {
		t.Errorf("expected ErrStaleAction for a previous attempt, got %v", err)
	}
}

func TestCallbackErrors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		data    string
		wantErr error
		toast   string
	}{
		{"rule:99", service.ErrRuleNotFound, msgRuleNotFound},
		{"cat:5", service.ErrCategoryNotFound, msgRuleNotFound},
		{buildRuleTierCallback(2, entities.DifficultyEasy), service.ErrNoQuestionsAvailable, msgNoQuestions},
		{buildSizeCallback(2), service.ErrSessionNotFound, msgSessionExpired},
		{"rule:x", errBadCallback, msgInternalError},
		{"bogus", errBadCallback, msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			_, _, err := h.dispatchCallback(context.Background(), testChat, decodeCallback(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if toast := h.callbackError(testChat, decodeCallback(tt.data), err); toast != tt.toast {
				t.Errorf("expected toast %q, got %q", tt.toast, toast)
			}
		})
	}
}

func TestCallbackBrowsing(t *testing.T) {
	h := newTestHandler(t)

	s, _ := press(t, h, actionRules)
	if len(s.keyboard.InlineKeyboard) == 0 {
		t.Error("expected category buttons")
	}

	s, _ = press(t, h, buildCategoryCallback(0))
	if !strings.Contains(s.text, "Basics") {
		t.Errorf("expected category screen, got %q", s.text)
	}

	s, _ = press(t, h, buildRuleCallback(1))
	if !strings.Contains(s.text, "*singular*") || !strings.Contains(s.text, "*dog* __barks__") {
		t.Errorf("expected rendered rule card, got %q", s.text)
	}

	if !strings.Contains(s.text, "┃ *One subject* · _SINGULAR_") || !strings.Contains(s.text, "┃ The *bird* __sings__\\.") {
		t.Errorf("expected infographic on the rule card, got %q", s.text)
	}

	s, _ = press(t, h, buildExamplesCallback(1))
	if !strings.Contains(s.text, "Subject: *dog*") {
		t.Errorf("expected example breakdown, got %q", s.text)
	}

	s, _ = press(t, h, buildMasteryTiersCallback())
	if !strings.Contains(s.text, "Mastery") {
		t.Errorf("expected mastery picker, got %q", s.text)
	}

	s, toast := press(t, h, actionTip)
	if s != nil || toast == "" {
		t.Errorf("expected a tip toast without a screen, got %v %q", s, toast)
	}
}

func TestCallbackBasics(t *testing.T) {
	h := newTestHandler(t)

	menu, _ := press(t, h, actionMenu)
	found := false
	for _, row := range menu.keyboard.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil && *btn.CallbackData == actionBasics {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected a basics button on the menu")
	}

	s, _ := press(t, h, actionBasics)
	if !strings.Contains(s.text, "*📖 Before You Begin: The Basics*") {
		t.Errorf("expected primer title, got %q", s.text)
	}
	if !strings.Contains(s.text, "*Subject*\nThe *subject* is who or what the sentence is about\\.") {
		t.Errorf("expected rendered section, got %q", s.text)
	}
}

func TestCallbackBasicsMissing(t *testing.T) {
	h := newTestHandlerWith(t, `
categories:
  - title: "Basics"
    rules:
      - { id: 1, name: "Rule 1" }
`)

	_, _, err := h.dispatchCallback(context.Background(), testChat, decodeCallback(actionBasics))
	if !errors.Is(err, service.ErrBasicsNotFound) {
		t.Fatalf("expected ErrBasicsNotFound, got %v", err)
	}
	if toast := h.callbackError(testChat, decodeCallback(actionBasics), err); toast != msgBasicsMissing {
		t.Errorf("expected toast %q, got %q", msgBasicsMissing, toast)
	}
}
