package domain

import "fmt"

// heuristic is one independent performance check, run from a fixed list
// like the validation rules.
type heuristic func(SchemaModel, []Relationship) []Finding

var heuristics = []heuristic{
	adviseMissingIndexOnFK,
	adviseRedundantIndex,
}

// SuggestOptimizations runs the performance heuristic battery. Emission
// order is fixed by finding kind then subject table name.
func SuggestOptimizations(model SchemaModel, rels []Relationship) []Finding {
	var findings []Finding
	for _, h := range heuristics {
		findings = append(findings, h(model, rels)...)
	}
	sortFindingsByKind(findings)
	return findings
}

// adviseMissingIndexOnFK flags relationship source columns with no index
// serving them: neither a single-column index nor a composite index with
// the column leading. Unindexed foreign-key lookups are the primary
// target for join and cascade performance.
func adviseMissingIndexOnFK(model SchemaModel, rels []Relationship) []Finding {
	type subject struct{ table, column string }
	flagged := make(map[subject]bool)

	var findings []Finding
	for _, r := range rels {
		t, ok := model.Table(r.SourceTable)
		if !ok {
			continue
		}
		if t.HasIndexLeadingOn(r.SourceColumn) {
			continue
		}
		s := subject{r.SourceTable, r.SourceColumn}
		if flagged[s] {
			continue
		}
		flagged[s] = true
		findings = append(findings, Finding{
			Kind:        FindingMissingIndexOnFK,
			Table:       r.SourceTable,
			Column:      r.SourceColumn,
			Description: fmt.Sprintf("%s.%s references %s.%s but has no index; foreign-key lookups will scan the table", r.SourceTable, r.SourceColumn, r.TargetTable, r.TargetColumn),
		})
	}
	return findings
}

// adviseRedundantIndex flags an index whose column sequence is a strict
// prefix of another index on the same table: the longer index already
// serves equality and prefix lookups on it. A unique shorter index is
// never redundant against a non-unique longer one, because the uniqueness
// constraint is not implied.
func adviseRedundantIndex(model SchemaModel, _ []Relationship) []Finding {
	var findings []Finding
	for _, t := range model.Tables {
		for i := range t.Indexes {
			for j := range t.Indexes {
				if i == j {
					continue
				}
				shorter, longer := t.Indexes[i], t.Indexes[j]
				if !isStrictPrefix(shorter.Columns, longer.Columns) {
					continue
				}
				if shorter.Unique && !longer.Unique {
					continue
				}
				findings = append(findings, Finding{
					Kind:        FindingRedundantIndex,
					Table:       t.Name,
					Index:       shorter.Name,
					Description: fmt.Sprintf("index %q on table %q is a prefix of %q and can be dropped", shorter.Name, t.Name, longer.Name),
				})
			}
		}
	}
	return findings
}

func isStrictPrefix(short, long []string) bool {
	if len(short) == 0 || len(short) >= len(long) {
		return false
	}
	for i := range short {
		if short[i] != long[i] {
			return false
		}
	}
	return true
}
