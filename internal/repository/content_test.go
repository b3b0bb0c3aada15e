package repository_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/repository"
)

const catalog = `
basics:
  title: "Before You Begin"
  intro: "Start here."
  sections:
    - heading: "Subjects"
      body: "The **subject** does the action."
categories:
  - title: "Basics"
    icon: "📘"
    rules:
      - id: 1
        name: "Rule 1"
        formula: "S + V"
        explanation: "Agree in **number**."
        examples:
          - "She writes."
          - sentence: "The dog barks."
            subject: "The dog"
            verb: "barks"
            reason: "singular"
        infographic:
          title: "Visualizing Rule 1"
          heading: "Match the number"
          subtitle: "ONE / MANY"
          caption: "Singular with singular"
          examples:
            - sentence: "The cat sleeps."
              subject: "cat"
              verb: "sleeps"
      - id: 2
        name: "Rule 2"
  - title: "Advanced"
    rules:
      - id: 5
        name: "Rule 5"
quizzes:
  1:
    - question: "The cat ___."
      options: ["sleep", "sleeps", "slept", "sleeping"]
      correct: 1
      difficulty: easy
    - question: "Broken"
      options: ["a", "b"]
      correct: 0
      difficulty: easy
  5:
    - question: "Each ___."
      options: ["a", "b", "c", "d"]
      correct: 9
      difficulty: hard
    - question: "Every ___."
      options: ["a", "b", "c", "d"]
      correct: 0
      difficulty: extreme
`

func mustParse(t *testing.T, data string) *repository.ContentRepository {
	t.Helper()

	repo, err := repository.ParseContent([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return repo
}

func TestParseContentExamples(t *testing.T) {
	repo := mustParse(t, catalog)

	rule, err := repo.GetRule(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rule.Examples) != 2 {
		t.Fatalf("expected 2 examples, got %d", len(rule.Examples))
	}

	plain, structured := rule.Examples[0], rule.Examples[1]
	if plain.IsStructured() || plain.String() != "She writes." {
		t.Errorf("expected plain example, got %+v", plain)
	}
	if !structured.IsStructured() {
		t.Fatalf("expected structured example, got %+v", structured)
	}
	if structured.Subject != "The dog" || structured.Verb != "barks" || structured.String() != "The dog barks." {
		t.Errorf("unexpected structured example: %+v", structured)
	}
}

func TestParseContentBasicsAndInfographic(t *testing.T) {
	repo := mustParse(t, catalog)

	basics := repo.GetBasics()
	if basics == nil {
		t.Fatal("expected basics to be loaded")
	}
	if basics.Title != "Before You Begin" || len(basics.Sections) != 1 || basics.Sections[0].Heading != "Subjects" {
		t.Errorf("unexpected basics %+v", basics)
	}

	rule, _ := repo.GetRule(1)
	info := rule.Infographic
	if info == nil {
		t.Fatal("expected infographic on rule 1")
	}
	if info.Heading != "Match the number" || len(info.Examples) != 1 || info.Examples[0].Verb != "sleeps" {
		t.Errorf("unexpected infographic %+v", info)
	}

	other, _ := repo.GetRule(2)
	if other.Infographic != nil {
		t.Errorf("expected no infographic on rule 2, got %+v", other.Infographic)
	}

	if mustParse(t, "categories: []\n").GetBasics() != nil {
		t.Error("expected nil basics when the catalog has none")
	}
}

func TestParseContentOrder(t *testing.T) {
	repo := mustParse(t, catalog)

	if got := len(repo.GetCategories()); got != 2 {
		t.Fatalf("expected 2 categories, got %d", got)
	}

	var ids []int
	for _, r := range repo.AllRules() {
		ids = append(ids, r.ID)
	}
	want := []int{1, 2, 5}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestParseContentDefects(t *testing.T) {
	repo := mustParse(t, catalog)

	defects := repo.Defects()
	if len(defects) != 3 {
		t.Fatalf("expected 3 defects, got %d: %v", len(defects), defects)
	}

	// Defective questions are still present in the raw catalog.
	if got := len(repo.GetRuleQuizzes()[1]); got != 2 {
		t.Errorf("expected 2 questions for rule 1, got %d", got)
	}
}

func TestParseContentErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "duplicate id",
			data: "categories:\n  - rules:\n      - id: 1\n      - id: 1\n",
			want: repository.ErrDuplicateRule,
		},
		{
			name: "non-positive id",
			data: "categories:\n  - rules:\n      - id: 0\n",
			want: repository.ErrInvalidRuleID,
		},
		{
			name: "null category",
			data: "categories:\n  -\n",
			want: repository.ErrEmptyEntry,
		},
		{
			name: "null rule",
			data: "categories:\n  - rules:\n      - id: 1\n      -\n",
			want: repository.ErrEmptyEntry,
		},
		{
			name: "unknown quiz key",
			data: "categories:\n  - rules:\n      - id: 1\nquizzes:\n  7: []\n",
			want: repository.ErrUnknownQuizKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repository.ParseContent([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseContentMalformed(t *testing.T) {
	if _, err := repository.ParseContent([]byte("categories: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestGetRule(t *testing.T) {
	repo := mustParse(t, catalog)

	if _, err := repo.GetRule(0); !errors.Is(err, repository.ErrInvalidRuleID) {
		t.Errorf("expected ErrInvalidRuleID, got %v", err)
	}
	if _, err := repo.GetRule(3); !errors.Is(err, repository.ErrRuleNotFound) {
		t.Errorf("expected ErrRuleNotFound, got %v", err)
	}
}

func TestNeighbors(t *testing.T) {
	repo := mustParse(t, catalog)

	tests := []struct {
		id         int
		prev, next int
	}{
		{1, 0, 2},
		{2, 1, 5},
		{5, 2, 0},
	}

	for _, tt := range tests {
		prev, next, err := repo.Neighbors(tt.id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prev != tt.prev || next != tt.next {
			t.Errorf("rule %d: expected (%d, %d), got (%d, %d)", tt.id, tt.prev, tt.next, prev, next)
		}
	}

	if _, _, err := repo.Neighbors(42); !errors.Is(err, repository.ErrRuleNotFound) {
		t.Errorf("expected ErrRuleNotFound, got %v", err)
	}
}

func TestBundledCatalog(t *testing.T) {
	_, file, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(file), "..", "..", "assets", "content", "sva.yaml")

	repo, err := repository.NewContentRepository(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if defects := repo.Defects(); len(defects) != 0 {
		t.Errorf("expected no defects in bundled catalog, got %v", defects)
	}
	if repo.GetBasics() == nil {
		t.Error("expected bundled catalog to carry the basics primer")
	}
	for _, r := range repo.AllRules() {
		perTier := make(map[entities.Difficulty]int)
		for _, q := range repo.GetRuleQuizzes()[r.ID] {
			perTier[q.Difficulty]++
		}
		for _, d := range entities.Difficulties {
			if perTier[d] < 5 {
				t.Errorf("rule %d has %d %s questions, want at least 5", r.ID, perTier[d], d)
			}
		}
		if r.Infographic == nil {
			t.Errorf("rule %d has no infographic", r.ID)
		}
	}

	tiers := make(map[entities.Difficulty]int)
	for _, q := range repo.GetRuleQuizzes()[8] {
		tiers[q.Difficulty]++
	}
	for _, d := range entities.Difficulties {
		if tiers[d] != 15 {
			t.Errorf("expected 15 %s questions for rule 8, got %d", d, tiers[d])
		}
	}
}

func TestNewContentRepositoryMissingFile(t *testing.T) {
	if _, err := repository.NewContentRepository(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
