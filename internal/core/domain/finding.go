package domain

// FindingKind is the closed set of detectable conditions. The declaration
// order doubles as the tie-break order when ranked findings have equal
// combined scores.
type FindingKind string

const (
	FindingMissingPrimaryKey  FindingKind = "missing-primary-key"
	FindingOrphanedForeignKey FindingKind = "orphaned-foreign-key"
	FindingNullablePrimaryKey FindingKind = "nullable-primary-key-column"
	FindingDuplicateIndex     FindingKind = "duplicate-index"
	FindingMissingIndexOnFK   FindingKind = "missing-index-on-fk"
	FindingRedundantIndex     FindingKind = "redundant-index"
)

var findingKindOrder = map[FindingKind]int{
	FindingMissingPrimaryKey:  0,
	FindingOrphanedForeignKey: 1,
	FindingNullablePrimaryKey: 2,
	FindingDuplicateIndex:     3,
	FindingMissingIndexOnFK:   4,
	FindingRedundantIndex:     5,
}

// Finding is one detected structural issue or optimization opportunity.
// Rules create findings without a score; the ranker attaches one and
// reorders, never editing kind, subject, or description.
type Finding struct {
	Kind        FindingKind `json:"kind"`
	Table       string      `json:"table"`
	Column      string      `json:"column,omitempty"`
	Index       string      `json:"index,omitempty"`
	Description string      `json:"description"`
	Score       Score       `json:"score"`
}
