package policy

import (
	"context"
	"math"
	"time"
)

// Backoff strategies recognised by the engine.
const (
	StrategyExponential = "exponential"
	StrategyLinear      = "linear"
	StrategyFixed       = "fixed"
)

// Policy describes how long to wait before the next retry attempt. The zero
// attempt index corresponds to the wait after the first failure. A nil
// *Policy means "use the defaults" and is therefore the zero-cost default.
type Policy struct {
	// Strategy selects the delay progression (default exponential)
	Strategy string
	// BaseDelay is the first retry delay (default 1s)
	BaseDelay time.Duration
	// MaxDelay caps the delay progression (default 30s)
	MaxDelay time.Duration
	// Multiplier is the exponential growth factor (default 2)
	Multiplier float64
}

// Default returns the default backoff policy: exponential, starting at one
// second and capped at thirty seconds.
func Default() *Policy {
	return &Policy{
		Strategy:   StrategyExponential,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2,
	}
}

// Delay returns the wait before retry attempt attemptIndex (0-based). The
// progression is monotonically non-decreasing for every strategy.
func (p *Policy) Delay(attemptIndex int) time.Duration {
	base, max, multiplier := p.effective()
	if attemptIndex < 0 {
		attemptIndex = 0
	}
	var delay time.Duration
	switch p.strategy() {
	case StrategyFixed:
		delay = base
	case StrategyLinear:
		delay = base * time.Duration(attemptIndex+1)
	default:
		delay = time.Duration(float64(base) * math.Pow(multiplier, float64(attemptIndex)))
	}
	if delay > max || delay <= 0 {
		delay = max
	}
	return delay
}

func (p *Policy) strategy() string {
	if p == nil || p.Strategy == "" {
		return StrategyExponential
	}
	return p.Strategy
}

func (p *Policy) effective() (base, max time.Duration, multiplier float64) {
	defaults := Default()
	base, max, multiplier = defaults.BaseDelay, defaults.MaxDelay, defaults.Multiplier
	if p == nil {
		return base, max, multiplier
	}
	if p.BaseDelay > 0 {
		base = p.BaseDelay
	}
	if p.MaxDelay > 0 {
		max = p.MaxDelay
	}
	if p.Multiplier > 1 {
		multiplier = p.Multiplier
	}
	return base, max, multiplier
}

// ---------------------------------------------------------------------------
// Config <-> Policy converters (Config is the serialisable subset).
// ---------------------------------------------------------------------------

// Config represents the declarative, serialisable form of a Policy.
type Config struct {
	Strategy    string  `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	BaseDelayMs int     `json:"baseDelayMs,omitempty" yaml:"baseDelayMs,omitempty"`
	MaxDelayMs  int     `json:"maxDelayMs,omitempty" yaml:"maxDelayMs,omitempty"`
	Multiplier  float64 `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Strategy:    p.Strategy,
		BaseDelayMs: int(p.BaseDelay / time.Millisecond),
		MaxDelayMs:  int(p.MaxDelay / time.Millisecond),
		Multiplier:  p.Multiplier,
	}
}

// FromConfig converts a stored Config back to a runtime Policy.
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Strategy:   c.Strategy,
		BaseDelay:  time.Duration(c.BaseDelayMs) * time.Millisecond,
		MaxDelay:   time.Duration(c.MaxDelayMs) * time.Millisecond,
		Multiplier: c.Multiplier,
	}
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds the policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy from ctx, or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
