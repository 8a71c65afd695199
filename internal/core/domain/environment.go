package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownEnvironment = errors.New("unknown environment")

// Environment is a named deployment target. The set is closed: anything
// outside it is rejected before any database access happens.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Environments lists all recognized deployment targets.
func Environments() []Environment {
	return []Environment{EnvDevelopment, EnvStaging, EnvProduction}
}

// ParseEnvironment maps a raw string onto the closed environment set.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case EnvDevelopment:
		return EnvDevelopment, nil
	case EnvStaging:
		return EnvStaging, nil
	case EnvProduction:
		return EnvProduction, nil
	default:
		return "", fmt.Errorf("%w: %q (must be development, staging, or production)", ErrUnknownEnvironment, s)
	}
}

// ContextWeight scales the context dimension of ranked findings: the same
// structural issue matters more the closer the environment is to serving
// real traffic.
func (e Environment) ContextWeight() float64 {
	switch e {
	case EnvProduction:
		return 1.0
	case EnvStaging:
		return 0.8
	default:
		return 0.6
	}
}
