package entities

// QuizState is the lifecycle tag of a quiz session.
type QuizState string

const (
	StateUnconfigured QuizState = "unconfigured"
	StateConfiguring  QuizState = "configuring"
	StateActive       QuizState = "active"
	StateSummary      QuizState = "summary"
	StateReviewing    QuizState = "reviewing"
)

// QuizScope tells the sampler how the pool was built.
type QuizScope string

const (
	ScopeRule    QuizScope = "rule"    // one rule, simple random sampling
	ScopeMastery QuizScope = "mastery" // all rules, stratified sampling
)

// Outcome is the transient signal raised after an answer.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

// AnswerStatus is how a question ended up in a finished quiz.
type AnswerStatus string

const (
	AnswerCorrect   AnswerStatus = "correct"
	AnswerIncorrect AnswerStatus = "incorrect"
	AnswerSkipped   AnswerStatus = "skipped"
)

// ReviewItem is one row of the post-quiz review.
type ReviewItem struct {
	Index    int
	Question QuizQuestion
	Chosen   int // -1 when skipped
	Status   AnswerStatus
}
