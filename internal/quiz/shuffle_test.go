package quiz_test

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/aliskhannn/sva-bot/internal/quiz"
)

func TestShuffle_IsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	inputs := [][]int{
		{},
		{7},
		{1, 2},
		{3, 3, 3, 1},
		{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	}

	for _, in := range inputs {
		for i := 0; i < 20; i++ {
			out := quiz.Shuffle(rng, in)

			if len(out) != len(in) {
				t.Fatalf("expected length %d, got %d", len(in), len(out))
			}

			a := append([]int(nil), in...)
			b := append([]int(nil), out...)
			sort.Ints(a)
			sort.Ints(b)
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("expected same elements as %v, got %v", in, out)
			}
		}
	}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	orig := append([]int(nil), in...)

	for i := 0; i < 10; i++ {
		_ = quiz.Shuffle(rng, in)
	}

	if !reflect.DeepEqual(in, orig) {
		t.Errorf("expected input %v to be untouched, got %v", orig, in)
	}
}

func TestShuffle_ProducesDifferentOrders(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in := make([]int, 20)
	for i := range in {
		in[i] = i
	}

	first := quiz.Shuffle(rng, in)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(first, quiz.Shuffle(rng, in)) {
			return
		}
	}
	t.Error("expected shuffles to differ across calls")
}

func TestShuffle_EveryPositionReachable(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	in := []int{0, 1, 2}
	seen := make(map[[3]int]bool)

	for i := 0; i < 600; i++ {
		out := quiz.Shuffle(rng, in)
		seen[[3]int{out[0], out[1], out[2]}] = true
	}

	if len(seen) != 6 {
		t.Errorf("expected all 6 permutations, got %d", len(seen))
	}
}
