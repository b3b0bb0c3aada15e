package service

import "slices"

// SizeChoice is one question count offered before a quiz starts.
type SizeChoice struct {
	Count   int
	Enabled bool
	All     bool // the "All N" choice
}

// SizeChoices lists the counts offered for a pool of available questions.
// An option larger than the pool stays enabled only if it is the smallest
// such option; starting with it simply asks every question. An extra "All N"
// choice is appended when N is not already an option and does not exceed
// allLimit.
func SizeChoices(available int, options []int, allLimit int) []SizeChoice {
	sorted := slices.Clone(options)
	slices.Sort(sorted)

	nextUp := 0
	for _, o := range sorted {
		if o > available {
			nextUp = o
			break
		}
	}

	choices := make([]SizeChoice, 0, len(options)+1)
	for _, o := range options {
		choices = append(choices, SizeChoice{
			Count:   o,
			Enabled: available >= o || o == nextUp,
		})
	}

	if available > 0 && available <= allLimit && !slices.Contains(options, available) {
		choices = append(choices, SizeChoice{Count: available, Enabled: true, All: true})
	}
	return choices
}
