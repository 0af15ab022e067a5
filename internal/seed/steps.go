package seed

import (
	"fmt"
	"strconv"
	"strings"
)

// Step is one stage of a seed run. Steps run in ascending order.
type Step int

// Seed stages, in dependency order.
const (
	StepMovies Step = iota + 1
	StepSeries
	StepActors
	StepCrew
	StepRelationships
	StepReviews
	StepForum
)

var stepNames = map[Step]string{
	StepMovies:        "movies",
	StepSeries:        "series",
	StepActors:        "actors",
	StepCrew:          "crew",
	StepRelationships: "relationships",
	StepReviews:       "reviews",
	StepForum:         "forum",
}

// Steps returns every step in run order.
func Steps() []Step {
	return []Step{StepMovies, StepSeries, StepActors, StepCrew, StepRelationships, StepReviews, StepForum}
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	_, ok := stepNames[s]
	return ok
}

// ParseStep accepts a step number ("5") or name ("relationships", case-insensitive).
// An empty string means StepMovies.
func ParseStep(raw string) (Step, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return StepMovies, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		step := Step(n)
		if !step.Valid() {
			return 0, fmt.Errorf("unknown step %d (want 1-%d)", n, len(stepNames))
		}
		return step, nil
	}
	for step, name := range stepNames {
		if name == raw {
			return step, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", raw)
}
