package service

import (
	"errors"
	"fmt"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/repository"
)

var (
	ErrRuleNotFound     = errors.New("rule not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBasicsNotFound   = errors.New("basics primer not found")
)

// RuleNav is a rule together with the ids of its neighbours; 0 means none.
type RuleNav struct {
	Rule *entities.Rule
	Prev int
	Next int
}

type RuleService struct {
	repository ContentRepository
}

func NewRuleService(repository ContentRepository) *RuleService {
	return &RuleService{repository: repository}
}

func (s *RuleService) GetCategories() []*entities.RuleCategory {
	return s.repository.GetCategories()
}

// GetCategory returns the category at the zero-based display index.
func (s *RuleService) GetCategory(index int) (*entities.RuleCategory, error) {
	cats := s.repository.GetCategories()
	if index < 0 || index >= len(cats) {
		return nil, fmt.Errorf("%w: %d", ErrCategoryNotFound, index)
	}
	return cats[index], nil
}

// GetRule returns the rule with its prev/next navigation.
func (s *RuleService) GetRule(id int) (*RuleNav, error) {
	rule, err := s.repository.GetRule(id)
	if err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) || errors.Is(err, repository.ErrInvalidRuleID) {
			return nil, fmt.Errorf("%w: %d", ErrRuleNotFound, id)
		}
		return nil, err
	}

	prev, next, err := s.repository.Neighbors(id)
	if err != nil {
		return nil, fmt.Errorf("neighbors of rule %d: %w", id, err)
	}

	return &RuleNav{Rule: rule, Prev: prev, Next: next}, nil
}

// GetBasics returns the primer shown before the rules.
func (s *RuleService) GetBasics() (*entities.Primer, error) {
	basics := s.repository.GetBasics()
	if basics == nil {
		return nil, ErrBasicsNotFound
	}
	return basics, nil
}

func (s *RuleService) AllRules() []*entities.Rule {
	return s.repository.AllRules()
}
