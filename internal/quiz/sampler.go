package quiz

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
)

// generalGroup collects questions that carry neither a rule id nor a label.
const generalGroup = "General"

// Sampler draws question subsets from a pool. It is safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler creates a Sampler over src. A nil src seeds from the clock.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Sampler{rng: rand.New(src)}
}

// Shuffle returns a shuffled copy of pool.
func (s *Sampler) Shuffle(pool []entities.QuizQuestion) []entities.QuizQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Shuffle(s.rng, pool)
}

// Intn returns a uniform int in [0, n).
func (s *Sampler) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// SampleUniform shuffles the pool and takes the first count questions.
func (s *Sampler) SampleUniform(pool []entities.QuizQuestion, count int) []entities.QuizQuestion {
	return takeFirst(s.Shuffle(pool), count)
}

// SampleBalanced picks count questions spread as evenly as possible across
// the rules present in pool, then returns them in random order. When count is
// at least len(pool) every question is returned exactly once.
func (s *Sampler) SampleBalanced(pool []entities.QuizQuestion, count int) []entities.QuizQuestion {
	if count <= 0 || len(pool) == 0 {
		return []entities.QuizQuestion{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make(map[string][]entities.QuizQuestion)
	var keys []string
	for _, q := range pool {
		k := groupKey(q)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], q)
	}

	for _, k := range keys {
		groups[k] = Shuffle(s.rng, groups[k])
	}
	active := Shuffle(s.rng, keys)

	selected := make([]entities.QuizQuestion, 0, min(count, len(pool)))
	for len(selected) < count && len(active) > 0 {
		var next []string
		for _, k := range active {
			if len(selected) >= count {
				break
			}
			g := groups[k]
			if len(g) == 0 {
				continue
			}
			selected = append(selected, g[len(g)-1])
			groups[k] = g[:len(g)-1]
			if len(groups[k]) > 0 {
				next = append(next, k)
			}
		}
		active = next
	}

	return Shuffle(s.rng, selected)
}

// groupKey prefers the stable rule id and falls back to the display label.
func groupKey(q entities.QuizQuestion) string {
	if q.RuleID > 0 {
		return "rule:" + strconv.Itoa(q.RuleID)
	}
	if q.Rule != "" {
		return "label:" + q.Rule
	}
	return generalGroup
}

// takeFirst returns the first n elements of qs, or all of them if it is shorter.
func takeFirst(qs []entities.QuizQuestion, n int) []entities.QuizQuestion {
	if n <= 0 {
		return []entities.QuizQuestion{}
	}
	if len(qs) <= n {
		return qs
	}
	return qs[:n]
}
