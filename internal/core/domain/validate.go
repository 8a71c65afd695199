package domain

import (
	"fmt"
	"sort"
	"strings"
)

// validationRule is one independent structural integrity check. Rules are
// pure functions over already-validated in-memory structures, dispatched
// from a fixed ordered list so adding a rule is a pure addition.
type validationRule func(SchemaModel, []Relationship) []Finding

var validationRules = []validationRule{
	ruleMissingPrimaryKey,
	ruleOrphanedForeignKey,
	ruleNullablePrimaryKey,
	ruleDuplicateIndex,
}

// ValidateSchema runs the full rule battery. Rules never suppress each
// other's output, even on overlapping subjects. Emission order is fixed:
// finding kind first, then subject table name.
func ValidateSchema(model SchemaModel, rels []Relationship) []Finding {
	var findings []Finding
	for _, rule := range validationRules {
		findings = append(findings, rule(model, rels)...)
	}
	sortFindingsByKind(findings)
	return findings
}

func ruleMissingPrimaryKey(model SchemaModel, _ []Relationship) []Finding {
	var findings []Finding
	for _, t := range model.Tables {
		if len(t.PrimaryKeyColumns()) == 0 {
			findings = append(findings, Finding{
				Kind:        FindingMissingPrimaryKey,
				Table:       t.Name,
				Description: fmt.Sprintf("table %q has no primary key; every table should have one to identify rows and support replication", t.Name),
			})
		}
	}
	return findings
}

func ruleOrphanedForeignKey(model SchemaModel, rels []Relationship) []Finding {
	var findings []Finding
	for _, r := range rels {
		target, ok := model.Table(r.TargetTable)
		if !ok {
			findings = append(findings, Finding{
				Kind:        FindingOrphanedForeignKey,
				Table:       r.SourceTable,
				Column:      r.SourceColumn,
				Description: fmt.Sprintf("%s.%s references table %q which does not exist; the constraint is stale", r.SourceTable, r.SourceColumn, r.TargetTable),
			})
			continue
		}
		if _, ok := target.Column(r.TargetColumn); !ok {
			findings = append(findings, Finding{
				Kind:        FindingOrphanedForeignKey,
				Table:       r.SourceTable,
				Column:      r.SourceColumn,
				Description: fmt.Sprintf("%s.%s references %s.%s which does not exist; the constraint is stale", r.SourceTable, r.SourceColumn, r.TargetTable, r.TargetColumn),
			})
		}
	}
	return findings
}

func ruleNullablePrimaryKey(model SchemaModel, _ []Relationship) []Finding {
	var findings []Finding
	for _, t := range model.Tables {
		for _, c := range t.Columns {
			if c.IsPrimaryKey && c.Nullable {
				findings = append(findings, Finding{
					Kind:        FindingNullablePrimaryKey,
					Table:       t.Name,
					Column:      c.Name,
					Description: fmt.Sprintf("primary-key column %s.%s is nullable, contradicting entity integrity", t.Name, c.Name),
				})
			}
		}
	}
	return findings
}

func ruleDuplicateIndex(model SchemaModel, _ []Relationship) []Finding {
	var findings []Finding
	for _, t := range model.Tables {
		for i := 0; i < len(t.Indexes); i++ {
			for j := i + 1; j < len(t.Indexes); j++ {
				a, b := t.Indexes[i], t.Indexes[j]
				if !equalColumns(a.Columns, b.Columns) {
					continue
				}
				findings = append(findings, Finding{
					Kind:        FindingDuplicateIndex,
					Table:       t.Name,
					Index:       b.Name,
					Description: fmt.Sprintf("index %q on table %q duplicates %q (identical column sequence %s)", b.Name, t.Name, a.Name, columnList(a.Columns)),
				})
			}
		}
	}
	return findings
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func columnList(cols []string) string {
	return "(" + strings.Join(cols, ", ") + ")"
}

func sortFindingsByKind(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findingKindOrder[findings[i].Kind] != findingKindOrder[findings[j].Kind] {
			return findingKindOrder[findings[i].Kind] < findingKindOrder[findings[j].Kind]
		}
		if findings[i].Table != findings[j].Table {
			return findings[i].Table < findings[j].Table
		}
		if findings[i].Column != findings[j].Column {
			return findings[i].Column < findings[j].Column
		}
		return findings[i].Index < findings[j].Index
	})
}
