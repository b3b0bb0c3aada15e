package service_test

import (
	"errors"
	"testing"

	"github.com/aliskhannn/sva-bot/internal/repository"
	"github.com/aliskhannn/sva-bot/internal/service"
)

func newRuleService(t *testing.T) *service.RuleService {
	t.Helper()

	repo, err := repository.ParseContent([]byte(catalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return service.NewRuleService(repo)
}

func TestRuleServiceGetRule(t *testing.T) {
	svc := newRuleService(t)

	nav, err := svc.GetRule(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nav.Rule.ID != 2 || nav.Prev != 1 || nav.Next != 3 {
		t.Errorf("unexpected navigation %+v", nav)
	}

	for _, id := range []int{0, 4} {
		if _, err := svc.GetRule(id); !errors.Is(err, service.ErrRuleNotFound) {
			t.Errorf("rule %d: expected ErrRuleNotFound, got %v", id, err)
		}
	}
}

func TestRuleServiceGetCategory(t *testing.T) {
	svc := newRuleService(t)

	cat, err := svc.GetCategory(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Title != "Advanced" {
		t.Errorf("expected Advanced, got %q", cat.Title)
	}

	for _, idx := range []int{-1, 2} {
		if _, err := svc.GetCategory(idx); !errors.Is(err, service.ErrCategoryNotFound) {
			t.Errorf("index %d: expected ErrCategoryNotFound, got %v", idx, err)
		}
	}

	if got := len(svc.AllRules()); got != 3 {
		t.Errorf("expected 3 rules, got %d", got)
	}
}

func TestRuleServiceGetBasics(t *testing.T) {
	if _, err := newRuleService(t).GetBasics(); !errors.Is(err, service.ErrBasicsNotFound) {
		t.Errorf("expected ErrBasicsNotFound, got %v", err)
	}

	repo, err := repository.ParseContent([]byte("basics:\n  title: \"Before You Begin\"\ncategories: []\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	basics, err := service.NewRuleService(repo).GetBasics()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if basics.Title != "Before You Begin" {
		t.Errorf("unexpected title %q", basics.Title)
	}
}
