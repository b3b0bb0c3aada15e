package repository

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
)

var (
	ErrRuleNotFound   = errors.New("rule not found")
	ErrInvalidRuleID  = errors.New("invalid rule id")
	ErrDuplicateRule  = errors.New("duplicate rule id")
	ErrUnknownQuizKey = errors.New("quiz references unknown rule")
	ErrEmptyEntry     = errors.New("empty catalog entry")
)

// ContentRepository provides read-only access to the rule and quiz catalog.
// The catalog is loaded once and never mutated afterwards.
type ContentRepository struct {
	categories []*entities.RuleCategory
	rules      []*entities.Rule
	byID       map[int]*entities.Rule
	quizzes    map[int][]entities.QuizQuestion
	basics     *entities.Primer
	defects    []string
}

// NewContentRepository loads the catalog from a YAML file.
func NewContentRepository(path string) (*ContentRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}

	return ParseContent(data)
}

// ParseContent builds a repository from a YAML document.
func ParseContent(data []byte) (*ContentRepository, error) {
	var doc struct {
		Basics     *entities.Primer                `yaml:"basics"`
		Categories []*entities.RuleCategory        `yaml:"categories"`
		Quizzes    map[int][]entities.QuizQuestion `yaml:"quizzes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content YAML: %w", err)
	}

	r := &ContentRepository{
		categories: doc.Categories,
		byID:       make(map[int]*entities.Rule),
		quizzes:    make(map[int][]entities.QuizQuestion, len(doc.Quizzes)),
		basics:     doc.Basics,
	}

	for i, cat := range doc.Categories {
		if cat == nil {
			return nil, fmt.Errorf("%w: category %d", ErrEmptyEntry, i+1)
		}
		for j, rule := range cat.Rules {
			if rule == nil {
				return nil, fmt.Errorf("%w: category %d rule %d", ErrEmptyEntry, i+1, j+1)
			}
			if rule.ID < 1 {
				return nil, fmt.Errorf("%w: %d", ErrInvalidRuleID, rule.ID)
			}
			if _, ok := r.byID[rule.ID]; ok {
				return nil, fmt.Errorf("%w: %d", ErrDuplicateRule, rule.ID)
			}
			r.byID[rule.ID] = rule
			r.rules = append(r.rules, rule)
		}
	}

	for _, id := range slices.Sorted(maps.Keys(doc.Quizzes)) {
		questions := doc.Quizzes[id]
		if _, ok := r.byID[id]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownQuizKey, id)
		}
		for i, q := range questions {
			if !q.Valid() {
				r.defects = append(r.defects, fmt.Sprintf("rule %d question %d: %q", id, i+1, q.Question))
			}
		}
		r.quizzes[id] = questions
	}

	return r, nil
}

// GetCategories returns the categories in display order.
func (r *ContentRepository) GetCategories() []*entities.RuleCategory {
	return r.categories
}

// GetRuleQuizzes returns every authored question keyed by rule id.
func (r *ContentRepository) GetRuleQuizzes() map[int][]entities.QuizQuestion {
	return r.quizzes
}

// GetRule returns the rule with the given id.
func (r *ContentRepository) GetRule(id int) (*entities.Rule, error) {
	if id < 1 {
		return nil, ErrInvalidRuleID
	}

	rule, ok := r.byID[id]
	if !ok {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}

// AllRules returns the rules in category order, then rule order.
func (r *ContentRepository) AllRules() []*entities.Rule {
	return r.rules
}

// Neighbors returns the ids of the rules before and after id, or 0 at the edges.
func (r *ContentRepository) Neighbors(id int) (prev, next int, err error) {
	for i, rule := range r.rules {
		if rule.ID != id {
			continue
		}
		if i > 0 {
			prev = r.rules[i-1].ID
		}
		if i < len(r.rules)-1 {
			next = r.rules[i+1].ID
		}
		return prev, next, nil
	}
	return 0, 0, ErrRuleNotFound
}

// GetBasics returns the introductory primer, or nil when the catalog has none.
func (r *ContentRepository) GetBasics() *entities.Primer {
	return r.basics
}

// Defects lists questions that were loaded but cannot be asked.
func (r *ContentRepository) Defects() []string {
	return r.defects
}
