package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/schemalens/schemalens/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPolicy_MergesOverDefaults(t *testing.T) {
	t.Parallel()
	path := writePolicy(t, `
findings:
  missing-primary-key:
    insight: 10
    context: 9
    execution: 8
`)

	policy, err := LoadPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, domain.ScoreDimensions{Insight: 10, Context: 9, Execution: 8},
		policy[domain.FindingMissingPrimaryKey])

	// Kinds absent from the file keep their defaults.
	defaults := domain.DefaultScorePolicy()
	assert.Equal(t, defaults[domain.FindingRedundantIndex], policy[domain.FindingRedundantIndex])
	assert.Len(t, policy, len(defaults))
}

func TestLoadPolicy_UnknownKind(t *testing.T) {
	t.Parallel()
	path := writePolicy(t, `
findings:
  index-bloat:
    insight: 5
    context: 5
    execution: 5
`)

	_, err := LoadPolicy(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index-bloat")
}

func TestLoadPolicy_OutOfRangeDimension(t *testing.T) {
	t.Parallel()
	path := writePolicy(t, `
findings:
  duplicate-index:
    insight: 11
    context: 5
    execution: 5
`)

	_, err := LoadPolicy(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrScoreOutOfRange)
}

func TestLoadPolicy_MalformedYAML(t *testing.T) {
	t.Parallel()
	path := writePolicy(t, "findings: [not, a, map]")

	_, err := LoadPolicy(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing score policy")
}

func TestLoadPolicy_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading score policy")
}

func TestLoadPolicy_EmptyFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := writePolicy(t, "")

	policy, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultScorePolicy(), policy)
}
