package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScore_Combined(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		insight      float64
		context      float64
		execution    float64
		wantCombined float64
		wantPriority Priority
	}{
		{"all max", 10, 10, 10, 10, PriorityHigh},
		{"all zero", 0, 0, 0, 0, PriorityLow},
		{"mixed high", 9, 8, 9, 6.48, PriorityHigh},
		{"high boundary", 10, 10, 6, 6.0, PriorityHigh},
		{"just below high", 9.9, 10, 6, 5.94, PriorityMedium},
		{"medium boundary", 10, 10, 3, 3.0, PriorityMedium},
		{"just below medium", 9.9, 10, 3, 2.97, PriorityLow},
		{"zero suppresses", 10, 0, 10, 0, PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := NewScore(tt.insight, tt.context, tt.execution)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantCombined, s.Combined(), 1e-9)
			assert.Equal(t, tt.wantPriority, s.Priority())
		})
	}
}

func TestNewScore_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		insight   float64
		context   float64
		execution float64
	}{
		{"insight above range", 11, 5, 5},
		{"context negative", 5, -1, 5},
		{"execution above range", 5, 5, 10.01},
		{"NaN insight", math.NaN(), 5, 5},
		{"positive infinity", math.Inf(1), 5, 5},
		{"negative infinity", 5, math.Inf(-1), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewScore(tt.insight, tt.context, tt.execution)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrScoreOutOfRange)
		})
	}
}

func TestScore_PriorityPredicates(t *testing.T) {
	t.Parallel()

	high, err := NewScore(9, 9, 9)
	require.NoError(t, err)
	assert.True(t, high.IsHigh())
	assert.False(t, high.IsMedium())
	assert.False(t, high.IsLow())

	medium, err := NewScore(7, 7, 7) // 3.43
	require.NoError(t, err)
	assert.True(t, medium.IsMedium())

	low, err := NewScore(2, 5, 5) // 0.5
	require.NoError(t, err)
	assert.True(t, low.IsLow())
}

func TestScore_Compare(t *testing.T) {
	t.Parallel()

	a, err := NewScore(9, 9, 9)
	require.NoError(t, err)
	b, err := NewScore(5, 5, 5)
	require.NoError(t, err)
	c, err := NewScore(5, 5, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(a))
	assert.Equal(t, 0, b.Compare(c))
}

func TestScore_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewScore(7, 8, 9)
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"insight":7,"context":8,"execution":9,"combined":5.04,"priority":"medium"}`, string(data))

	var decoded Score
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}

func TestScore_UnmarshalRejectsInvalid(t *testing.T) {
	t.Parallel()

	var s Score
	err := json.Unmarshal([]byte(`{"insight":11,"context":5,"execution":5}`), &s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScoreOutOfRange)
}

func TestParseEnvironment(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    Environment
		wantErr bool
	}{
		{"development", "development", EnvDevelopment, false},
		{"staging", "staging", EnvStaging, false},
		{"production", "production", EnvProduction, false},
		{"mixed case", "Production", EnvProduction, false},
		{"surrounding space", "  staging  ", EnvStaging, false},
		{"abbreviation rejected", "prod", "", true},
		{"empty rejected", "", "", true},
		{"unknown rejected", "qa", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, err := ParseEnvironment(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownEnvironment)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, env)
		})
	}
}

func TestEnvironment_ContextWeight(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1.0, EnvProduction.ContextWeight())
	assert.Equal(t, 0.8, EnvStaging.ContextWeight())
	assert.Equal(t, 0.6, EnvDevelopment.ContextWeight())
}
