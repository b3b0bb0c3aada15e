package telegram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/quiz"
)

func TestHighlightExample(t *testing.T) {
	tests := []struct {
		name string
		ex   entities.Example
		want string
	}{
		{
			name: "plain",
			ex:   entities.Example{Text: "She runs."},
			want: "She runs\\.",
		},
		{
			name: "subject and verb",
			ex:   entities.Example{Sentence: "The dog barks.", Subject: "dog", Verb: "barks"},
			want: "The *dog* __barks__\\.",
		},
		{
			name: "verb only searched after subject",
			ex:   entities.Example{Sentence: "Is the box of pens is here?", Subject: "box", Verb: "is"},
			want: "Is the *box* of pens __is__ here?",
		},
		{
			name: "case insensitive subject",
			ex:   entities.Example{Sentence: "Everyone is here.", Subject: "everyone", Verb: "is"},
			want: "*Everyone* __is__ here\\.",
		},
		{
			name: "missing verb",
			ex:   entities.Example{Sentence: "Each of us tries.", Subject: "Each", Verb: "try"},
			want: "*Each* of us tries\\.",
		},
		{
			name: "missing subject",
			ex:   entities.Example{Sentence: "They run.", Subject: "dogs", Verb: "run"},
			want: "They run\\.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := highlightExample(tt.ex); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func question(text string, correct int) entities.QuizQuestion {
	return entities.QuizQuestion{
		Question:    text,
		Options:     []string{"is", "are", "was", "were"},
		Correct:     correct,
		Difficulty:  entities.DifficultyEasy,
		Explanation: "Singular subject.",
	}
}

func TestFormatReview(t *testing.T) {
	res := quiz.Result{
		Questions: []entities.QuizQuestion{question("q1", 0), question("q2", 1), question("q3", 2)},
		Answers:   map[int]int{0: 0, 1: 3},
		Score:     1,
	}

	got := formatReview(res)

	for _, want := range []string{
		"✅ 1\\.",
		"_Your answer: is_",
		"❌ 2\\.",
		"_Your answer: were · Correct: are_",
		"⏭ 3\\.",
		"_Not answered · Correct: was_",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected review to contain %q, got:\n%s", want, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("expected trailing newlines to be trimmed")
	}
}

func TestFormatReviewTruncates(t *testing.T) {
	var qs []entities.QuizQuestion
	for i := range 200 {
		qs = append(qs, question(fmt.Sprintf("A rather long question number %d about agreement", i), 0))
	}

	got := formatReview(quiz.Result{Questions: qs, Answers: map[int]int{}})

	if len(got) > maxMessageLength {
		t.Errorf("expected review to fit into one message, got %d bytes", len(got))
	}
	if !strings.Contains(got, "…and ") || !strings.HasSuffix(got, "more_") {
		t.Errorf("expected truncation note, got tail %q", got[len(got)-40:])
	}
}

func TestFormatQuestion(t *testing.T) {
	view := questionView{
		Question: question("Neither of them ___ ready.", 0),
		Index:    1,
		Total:    5,
		Score:    1,
		Chosen:   -1,
	}

	unanswered := formatQuestion(view)
	if !strings.Contains(unanswered, "Question 2 of 5") {
		t.Errorf("expected progress line, got %q", unanswered)
	}
	if strings.Contains(unanswered, "✅") {
		t.Error("expected no feedback before answering")
	}

	view.Answered, view.Chosen = true, 1
	wrong := formatQuestion(view)
	for _, want := range []string{"✅ is", "❌ are", "▫️ was", "*Not quite\\.*", "__is__", "Singular subject\\."} {
		if !strings.Contains(wrong, want) {
			t.Errorf("expected %q in %q", want, wrong)
		}
	}

	view.Chosen = 0
	right := formatQuestion(view)
	if !strings.Contains(right, "*Correct\\! 🎉*") {
		t.Errorf("expected correct feedback, got %q", right)
	}
}

func TestFormatSummary(t *testing.T) {
	res := quiz.Result{
		Questions: []entities.QuizQuestion{question("q1", 0), question("q2", 0)},
		Answers:   map[int]int{0: 0, 1: 0},
		Score:     2,
		Completed: true,
	}

	got := formatSummary(res, "🤩")
	for _, want := range []string{"🤩", "Your score: 2 / 2", "100% accuracy", "Perfection"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
}
