package service

import (
	"fmt"
	"slices"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
)

// RulePool returns the askable questions of one rule at difficulty d, each
// tagged with the rule it belongs to.
func (s *QuizService) RulePool(ruleID int, d entities.Difficulty) ([]entities.QuizQuestion, error) {
	rule, err := s.content.GetRule(ruleID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrRuleNotFound, ruleID)
	}

	return s.collect(ruleID, ruleLabel(ruleID, rule), d), nil
}

// MasteryPool returns the askable questions of every rule at difficulty d.
func (s *QuizService) MasteryPool(d entities.Difficulty) []entities.QuizQuestion {
	quizzes := s.content.GetRuleQuizzes()

	var pool []entities.QuizQuestion
	for _, id := range s.ruleIDs(quizzes) {
		rule, _ := s.content.GetRule(id)
		pool = append(pool, s.collect(id, ruleLabel(id, rule), d)...)
	}
	return pool
}

// Difficulties lists the tiers of a rule that have at least one question.
func (s *QuizService) Difficulties(ruleID int) ([]entities.Difficulty, error) {
	if _, err := s.content.GetRule(ruleID); err != nil {
		return nil, fmt.Errorf("%w: %d", ErrRuleNotFound, ruleID)
	}

	var out []entities.Difficulty
	for _, d := range entities.Difficulties {
		if len(s.collect(ruleID, "", d)) > 0 {
			out = append(out, d)
		}
	}
	return out, nil
}

// MasteryDifficulties lists the tiers that have at least one question in
// any rule.
func (s *QuizService) MasteryDifficulties() []entities.Difficulty {
	var out []entities.Difficulty
	for _, d := range entities.Difficulties {
		if len(s.MasteryPool(d)) > 0 {
			out = append(out, d)
		}
	}
	return out
}

func (s *QuizService) collect(ruleID int, label string, d entities.Difficulty) []entities.QuizQuestion {
	var out []entities.QuizQuestion
	for _, q := range s.content.GetRuleQuizzes()[ruleID] {
		if q.Difficulty != d || !q.Valid() {
			continue
		}
		q.RuleID = ruleID
		q.Rule = label
		out = append(out, q)
	}
	return out
}

// ruleIDs returns the quiz keys in catalog order, then any stray keys in
// ascending order.
func (s *QuizService) ruleIDs(quizzes map[int][]entities.QuizQuestion) []int {
	ids := make([]int, 0, len(quizzes))
	seen := make(map[int]bool, len(quizzes))
	for _, r := range s.content.AllRules() {
		if _, ok := quizzes[r.ID]; ok {
			ids = append(ids, r.ID)
			seen[r.ID] = true
		}
	}

	var rest []int
	for id := range quizzes {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	return append(ids, rest...)
}

func ruleLabel(id int, rule *entities.Rule) string {
	if rule == nil || rule.Name == "" {
		return fmt.Sprintf("Rule %d", id)
	}
	return rule.Name
}
