package scoring

import (
	"fmt"
	"os"

	"github.com/schemalens/schemalens/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// policyFile is the YAML shape operators use to override score dimensions
// per finding kind:
//
//	findings:
//	  missing-primary-key:
//	    insight: 10
//	    context: 9
//	    execution: 8
type policyFile struct {
	Findings map[string]domain.ScoreDimensions `yaml:"findings"`
}

// LoadPolicy reads a YAML score-policy file and merges it over the
// built-in defaults. Every override is validated through the score
// constructor so an out-of-range dimension fails at startup, not while
// ranking a live request.
func LoadPolicy(path string) (domain.ScorePolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading score policy file: %w", err)
	}

	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing score policy YAML: %w", err)
	}

	policy := domain.DefaultScorePolicy()
	for kind, dims := range file.Findings {
		if _, known := policy[domain.FindingKind(kind)]; !known {
			return nil, fmt.Errorf("score policy references unknown finding kind %q", kind)
		}
		if _, err := domain.NewScore(dims.Insight, dims.Context, dims.Execution); err != nil {
			return nil, fmt.Errorf("score policy entry %q: %w", kind, err)
		}
		policy[domain.FindingKind(kind)] = dims
	}
	return policy, nil
}
