package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var ErrScoreOutOfRange = errors.New("score dimension out of range")

// Priority is the categorical tier derived from a score's combined value.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Score is an ICE priority score: Insight x Context x Execution, each in
// [0, 10]. The combined value and priority tier are computed once at
// construction; the type has no mutators.
//
// The combination is multiplicative on purpose: a dimension near zero
// suppresses the whole score, so an issue that is contextually irrelevant
// or impossible to act on cannot rank high however deep the insight.
type Score struct {
	insight   float64
	context   float64
	execution float64
	combined  float64
	priority  Priority
}

// NewScore validates all three dimensions and returns a sealed Score.
func NewScore(insight, context, execution float64) (Score, error) {
	for _, d := range []struct {
		name  string
		value float64
	}{
		{"insight", insight},
		{"context", context},
		{"execution", execution},
	} {
		if math.IsNaN(d.value) || math.IsInf(d.value, 0) || d.value < 0 || d.value > 10 {
			return Score{}, fmt.Errorf("%w: %s = %v (must be in [0, 10])", ErrScoreOutOfRange, d.name, d.value)
		}
	}

	combined := insight * context * execution / 100

	priority := PriorityLow
	switch {
	case combined >= 6.0:
		priority = PriorityHigh
	case combined >= 3.0:
		priority = PriorityMedium
	}

	return Score{
		insight:   insight,
		context:   context,
		execution: execution,
		combined:  combined,
		priority:  priority,
	}, nil
}

func (s Score) Insight() float64   { return s.insight }
func (s Score) Context() float64   { return s.context }
func (s Score) Execution() float64 { return s.execution }
func (s Score) Combined() float64  { return s.combined }
func (s Score) Priority() Priority { return s.priority }

func (s Score) IsHigh() bool   { return s.priority == PriorityHigh }
func (s Score) IsMedium() bool { return s.priority == PriorityMedium }
func (s Score) IsLow() bool    { return s.priority == PriorityLow }

// Compare orders scores by combined value: negative when s ranks below
// other, zero on equal combined values. Ties are left to the caller.
func (s Score) Compare(other Score) int {
	switch {
	case s.combined < other.combined:
		return -1
	case s.combined > other.combined:
		return 1
	default:
		return 0
	}
}

type scoreJSON struct {
	Insight   float64  `json:"insight"`
	Context   float64  `json:"context"`
	Execution float64  `json:"execution"`
	Combined  float64  `json:"combined"`
	Priority  Priority `json:"priority"`
}

func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(scoreJSON{
		Insight:   s.insight,
		Context:   s.context,
		Execution: s.execution,
		Combined:  s.combined,
		Priority:  s.priority,
	})
}

// UnmarshalJSON rebuilds a score through the validating constructor so a
// decoded score carries the same invariants as a constructed one.
func (s *Score) UnmarshalJSON(data []byte) error {
	var raw scoreJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	score, err := NewScore(raw.Insight, raw.Context, raw.Execution)
	if err != nil {
		return err
	}
	*s = score
	return nil
}
