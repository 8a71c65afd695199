package domain

import "sort"

// RelationshipOrigin tags how a relationship was discovered.
type RelationshipOrigin string

const (
	OriginDeclared RelationshipOrigin = "declared"
	OriginInferred RelationshipOrigin = "inferred"
)

// Relationship links a source column to a target column in another table.
// Declared relationships come from foreign-key constraints and always
// carry confidence 1.0; inferred ones come from name-pattern matching.
type Relationship struct {
	SourceTable  string             `json:"source_table"`
	SourceColumn string             `json:"source_column"`
	TargetTable  string             `json:"target_table"`
	TargetColumn string             `json:"target_column"`
	Origin       RelationshipOrigin `json:"origin"`
	Confidence   float64            `json:"confidence"`
}

type relationshipKey struct {
	sourceTable, sourceColumn, targetTable, targetColumn string
}

func (r Relationship) key() relationshipKey {
	return relationshipKey{r.SourceTable, r.SourceColumn, r.TargetTable, r.TargetColumn}
}

// ResolveRelationships reconciles declared foreign keys with
// name-convention inference over the whole model. Declared relationships
// are seeded first; inference then runs on every column that is not
// already the source of a declared relationship, and a declared
// relationship wins any collision on the same
// (source table, source column, target table, target column) tuple.
//
// The result is deterministic: declared before inferred, each group
// sorted by source table then source column. Resolving twice on the same
// model yields an identical sequence.
func ResolveRelationships(model SchemaModel) []Relationship {
	seen := make(map[relationshipKey]bool)
	declaredSources := make(map[string]map[string]bool) // table -> column -> declared

	var declared []Relationship
	for _, t := range model.Tables {
		for _, fk := range t.ForeignKeys {
			rel := Relationship{
				SourceTable:  t.Name,
				SourceColumn: fk.Column,
				TargetTable:  fk.ReferencedTable,
				TargetColumn: fk.ReferencedColumn,
				Origin:       OriginDeclared,
				Confidence:   ConfidenceDeclared,
			}
			if seen[rel.key()] {
				continue
			}
			seen[rel.key()] = true
			declared = append(declared, rel)

			if declaredSources[t.Name] == nil {
				declaredSources[t.Name] = make(map[string]bool)
			}
			declaredSources[t.Name][fk.Column] = true
		}
	}

	tableNames := model.TableNames()

	var inferred []Relationship
	for _, t := range model.Tables {
		for _, col := range t.Columns {
			if declaredSources[t.Name][col.Name] {
				continue
			}
			candidate, ok := MatchFKNamingPattern(col.Name, tableNames)
			if !ok {
				continue
			}
			target, ok := model.Table(candidate.ReferencedTable)
			if !ok {
				continue
			}
			pks := target.PrimaryKeyColumns()
			if len(pks) == 0 {
				continue
			}
			pk := pks[0]
			if !typesCompatible(col.DataType, pk.DataType) {
				continue
			}
			rel := Relationship{
				SourceTable:  t.Name,
				SourceColumn: col.Name,
				TargetTable:  target.Name,
				TargetColumn: pk.Name,
				Origin:       OriginInferred,
				Confidence:   candidate.Confidence,
			}
			if seen[rel.key()] {
				continue
			}
			seen[rel.key()] = true
			inferred = append(inferred, rel)
		}
	}

	sortRelationships(declared)
	sortRelationships(inferred)

	return append(declared, inferred...)
}

func sortRelationships(rels []Relationship) {
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].SourceTable != rels[j].SourceTable {
			return rels[i].SourceTable < rels[j].SourceTable
		}
		if rels[i].SourceColumn != rels[j].SourceColumn {
			return rels[i].SourceColumn < rels[j].SourceColumn
		}
		if rels[i].TargetTable != rels[j].TargetTable {
			return rels[i].TargetTable < rels[j].TargetTable
		}
		return rels[i].TargetColumn < rels[j].TargetColumn
	})
}

// FilterRelationshipsByTable keeps relationships whose source or target
// table matches. An empty name keeps everything.
func FilterRelationshipsByTable(rels []Relationship, table string) []Relationship {
	if table == "" {
		return rels
	}
	var out []Relationship
	for _, r := range rels {
		if r.SourceTable == table || r.TargetTable == table {
			out = append(out, r)
		}
	}
	return out
}
