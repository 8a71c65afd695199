package domain

import (
	"fmt"
	"sort"
)

// ScoreDimensions holds the raw ICE values the policy assigns to a
// finding kind. Context is environment-weighted at ranking time.
type ScoreDimensions struct {
	Insight   float64 `yaml:"insight"`
	Context   float64 `yaml:"context"`
	Execution float64 `yaml:"execution"`
}

// ScorePolicy maps finding kinds to score dimensions. It is deliberately
// an explicit reviewable table rather than constants scattered through
// the rules, and can be overridden per deployment from a YAML file.
type ScorePolicy map[FindingKind]ScoreDimensions

// DefaultScorePolicy is the built-in dimension mapping. Insight tracks
// severity of the issue class, context its runtime impact, execution how
// mechanical the remediation is ("add an index" is clearer work than
// reconciling a stale constraint by hand).
func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{
		FindingMissingPrimaryKey:  {Insight: 9, Context: 8, Execution: 7},
		FindingOrphanedForeignKey: {Insight: 8, Context: 7, Execution: 4},
		FindingNullablePrimaryKey: {Insight: 7, Context: 7, Execution: 6},
		FindingDuplicateIndex:     {Insight: 5, Context: 6, Execution: 8},
		FindingMissingIndexOnFK:   {Insight: 7, Context: 8, Execution: 9},
		FindingRedundantIndex:     {Insight: 4, Context: 5, Execution: 8},
	}
}

// RankFindings attaches a Score to every finding using the policy's
// dimension mapping, with the context dimension weighted by environment,
// and returns the findings sorted by descending combined score. Ties
// break by finding-kind declaration order, then subject table name,
// never by discovery order. Input findings are not modified.
//
// A finding kind absent from the policy is a defect in the caller's
// policy wiring and surfaces as an error rather than a silently
// unscored finding.
func RankFindings(findings []Finding, env Environment, policy ScorePolicy) ([]Finding, error) {
	ranked := make([]Finding, len(findings))
	for i, f := range findings {
		dims, ok := policy[f.Kind]
		if !ok {
			return nil, fmt.Errorf("score policy has no entry for finding kind %q", f.Kind)
		}
		score, err := NewScore(dims.Insight, dims.Context*env.ContextWeight(), dims.Execution)
		if err != nil {
			return nil, fmt.Errorf("scoring %s finding on %q: %w", f.Kind, f.Table, err)
		}
		f.Score = score
		ranked[i] = f
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].Score.Compare(ranked[j].Score); c != 0 {
			return c > 0
		}
		if findingKindOrder[ranked[i].Kind] != findingKindOrder[ranked[j].Kind] {
			return findingKindOrder[ranked[i].Kind] < findingKindOrder[ranked[j].Kind]
		}
		if ranked[i].Table != ranked[j].Table {
			return ranked[i].Table < ranked[j].Table
		}
		if ranked[i].Column != ranked[j].Column {
			return ranked[i].Column < ranked[j].Column
		}
		return ranked[i].Index < ranked[j].Index
	})

	return ranked, nil
}
