package entities

// Difficulty is the tier a quiz question belongs to.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the tiers in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// OptionsPerQuestion is the number of options every question must carry.
const OptionsPerQuestion = 4

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// QuizQuestion is a multiple-choice item. RuleID and Rule are filled in when
// the question is placed into a pool; Rule is a display label only.
type QuizQuestion struct {
	Question    string     `yaml:"question"`
	Options     []string   `yaml:"options"`
	Correct     int        `yaml:"correct"`
	Difficulty  Difficulty `yaml:"difficulty"`
	Explanation string     `yaml:"explanation"`
	Rule        string     `yaml:"rule,omitempty"`
	RuleID      int        `yaml:"-"`
}

// Valid reports whether the question can be shown in a quiz.
func (q QuizQuestion) Valid() bool {
	return len(q.Options) == OptionsPerQuestion &&
		q.Correct >= 0 && q.Correct < len(q.Options) &&
		q.Difficulty.Valid()
}

// IsCorrect reports whether option is the right answer.
func (q QuizQuestion) IsCorrect(option int) bool {
	return option == q.Correct
}

// CorrectOption returns the text of the right answer.
func (q QuizQuestion) CorrectOption() string {
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return ""
	}
	return q.Options[q.Correct]
}
