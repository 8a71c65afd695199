package domain

import "strings"

// Inference confidence levels. Exact and plural-form table-name matches
// are equally trusted; the -es fallback form is a weaker signal. Declared
// constraints always carry 1.0.
const (
	ConfidenceDeclared   = 1.0
	ConfidenceExactMatch = 0.9
	ConfidenceFuzzyMatch = 0.6
)

// FKCandidate is a possible foreign-key relationship inferred from column
// naming. The referenced primary-key column and type compatibility are
// resolved by the caller against the schema model.
type FKCandidate struct {
	Column          string
	ReferencedTable string
	Confidence      float64
}

// MatchFKNamingPattern checks whether columnName follows the *_id naming
// convention and matches a known table name under simple singularization.
// A column "user_id" matches tables "users" or "user" exactly; the "-es"
// plural form ("categori_id" -> "categories") counts as a fuzzy match
// with lower confidence.
func MatchFKNamingPattern(columnName string, tableNames map[string]bool) (FKCandidate, bool) {
	if !strings.HasSuffix(columnName, "_id") {
		return FKCandidate{}, false
	}
	prefix := strings.TrimSuffix(columnName, "_id")
	if prefix == "" {
		return FKCandidate{}, false
	}

	for _, candidate := range []string{prefix + "s", prefix, prefix + "es"} {
		if !tableNames[candidate] {
			continue
		}
		confidence := ConfidenceExactMatch
		if candidate != prefix+"s" && candidate != prefix {
			confidence = ConfidenceFuzzyMatch
		}
		return FKCandidate{
			Column:          columnName,
			ReferencedTable: candidate,
			Confidence:      confidence,
		}, true
	}
	return FKCandidate{}, false
}

// typesCompatible reports whether two declared column types can plausibly
// hold the same key values. Type names are already normalized to the
// catalog's lowercase spelling by the extractor.
func typesCompatible(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	intTypes := map[string]bool{
		"integer": true, "bigint": true, "smallint": true, "int": true,
		"int4": true, "int8": true, "int2": true, "serial": true,
		"bigserial": true, "smallserial": true,
	}
	textTypes := map[string]bool{
		"text": true, "character varying": true, "varchar": true,
	}

	if intTypes[a] && intTypes[b] {
		return true
	}
	if textTypes[a] && textTypes[b] {
		return true
	}
	return a == b
}
