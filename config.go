package stepline

import (
	"fmt"

	"github.com/stepline/stepline/policy"
)

// Config is a serialisable representation of the engine configuration. It
// can be populated from JSON, YAML, environment variables, etc. The
// zero-value is useful: all nested fields inherit their package defaults.
type Config struct {
	Backoff *policy.Config `json:"backoff,omitempty" yaml:"backoff,omitempty"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{Backoff: policy.ToConfig(policy.Default())}
}

// Validate returns an error describing invalid settings, or nil.
func (c *Config) Validate() error {
	if c == nil || c.Backoff == nil {
		return nil
	}
	switch c.Backoff.Strategy {
	case "", policy.StrategyExponential, policy.StrategyLinear, policy.StrategyFixed:
	default:
		return fmt.Errorf("unknown backoff strategy %q", c.Backoff.Strategy)
	}
	if c.Backoff.BaseDelayMs < 0 {
		return fmt.Errorf("backoff.baseDelayMs must be >= 0")
	}
	if c.Backoff.MaxDelayMs < 0 {
		return fmt.Errorf("backoff.maxDelayMs must be >= 0")
	}
	return nil
}
