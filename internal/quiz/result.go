package quiz

import (
	"math"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
)

// Result is a read-only record of a quiz attempt, finished or abandoned.
type Result struct {
	Questions []entities.QuizQuestion
	Answers   map[int]int // question index -> chosen option; absent means never answered
	Score     int
	Completed bool
}

// Total is the number of questions in the attempt.
func (r Result) Total() int {
	return len(r.Questions)
}

// Percentage is the score rounded to the nearest whole percent.
func (r Result) Percentage() int {
	if len(r.Questions) == 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) * 100 / float64(len(r.Questions))))
}

// Review lists every question with the user's choice and its status.
func (r Result) Review() []entities.ReviewItem {
	items := make([]entities.ReviewItem, 0, len(r.Questions))
	for i, q := range r.Questions {
		item := entities.ReviewItem{Index: i, Question: q, Chosen: -1, Status: entities.AnswerSkipped}
		if chosen, ok := r.Answers[i]; ok {
			item.Chosen = chosen
			item.Status = entities.AnswerIncorrect
			if q.IsCorrect(chosen) {
				item.Status = entities.AnswerCorrect
			}
		}
		items = append(items, item)
	}
	return items
}
