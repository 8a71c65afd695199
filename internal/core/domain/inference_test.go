package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchFKNamingPattern(t *testing.T) {
	t.Parallel()
	tables := map[string]bool{
		"users":      true,
		"products":   true,
		"categories": true,
		"status":     true, // singular table name
	}

	tests := []struct {
		name      string
		column    string
		wantMatch bool
		wantTable string
		wantConf  float64
	}{
		{"plural match", "user_id", true, "users", ConfidenceExactMatch},
		{"plural match 2", "product_id", true, "products", ConfidenceExactMatch},
		{"singular match", "status_id", true, "status", ConfidenceExactMatch},
		{"es-suffix match", "categori_id", true, "categories", ConfidenceFuzzyMatch},
		{"no _id suffix", "username", false, "", 0},
		{"no matching table", "order_id", false, "", 0},
		{"bare _id", "_id", false, "", 0},
		{"id alone", "id", false, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			candidate, ok := MatchFKNamingPattern(tt.column, tables)
			assert.Equal(t, tt.wantMatch, ok)
			if !tt.wantMatch {
				return
			}
			assert.Equal(t, tt.column, candidate.Column)
			assert.Equal(t, tt.wantTable, candidate.ReferencedTable)
			assert.Equal(t, tt.wantConf, candidate.Confidence)
		})
	}
}

func TestMatchFKNamingPattern_PrefersPluralOverSingular(t *testing.T) {
	t.Parallel()
	tables := map[string]bool{"orders": true, "order": true}

	candidate, ok := MatchFKNamingPattern("order_id", tables)
	assert.True(t, ok)
	assert.Equal(t, "orders", candidate.ReferencedTable)
	assert.Equal(t, ConfidenceExactMatch, candidate.Confidence)
}

func TestTypesCompatible(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same type", "integer", "integer", true},
		{"int family", "bigint", "integer", true},
		{"serial vs int", "integer", "bigserial", true},
		{"text family", "text", "character varying", true},
		{"uuid vs uuid", "uuid", "uuid", true},
		{"int vs text", "integer", "text", false},
		{"uuid vs int", "uuid", "integer", false},
		{"case insensitive", "INTEGER", "bigint", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, typesCompatible(tt.a, tt.b))
		})
	}
}
