package policy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialDelay(t *testing.T) {
	p := Default()
	assert.Equal(t, time.Second, p.Delay(0))
	assert.Equal(t, 2*time.Second, p.Delay(1))
	assert.Equal(t, 4*time.Second, p.Delay(2))
	assert.Equal(t, 16*time.Second, p.Delay(4))
	// capped at 30s
	assert.Equal(t, 30*time.Second, p.Delay(5))
	assert.Equal(t, 30*time.Second, p.Delay(20))
}

func TestLinearDelay(t *testing.T) {
	p := &Policy{Strategy: StrategyLinear, BaseDelay: time.Second, MaxDelay: 5 * time.Second}
	assert.Equal(t, time.Second, p.Delay(0))
	assert.Equal(t, 2*time.Second, p.Delay(1))
	assert.Equal(t, 3*time.Second, p.Delay(2))
	assert.Equal(t, 5*time.Second, p.Delay(10))
}

func TestFixedDelay(t *testing.T) {
	p := &Policy{Strategy: StrategyFixed, BaseDelay: 250 * time.Millisecond}
	assert.Equal(t, 250*time.Millisecond, p.Delay(0))
	assert.Equal(t, 250*time.Millisecond, p.Delay(7))
}

func TestNilPolicyUsesDefaults(t *testing.T) {
	var p *Policy
	assert.Equal(t, time.Second, p.Delay(0))
	assert.Equal(t, 30*time.Second, p.Delay(10))
}

func TestMonotone(t *testing.T) {
	for _, p := range []*Policy{
		Default(),
		{Strategy: StrategyLinear, BaseDelay: 10 * time.Millisecond},
		{Strategy: StrategyFixed, BaseDelay: time.Second},
	} {
		previous := time.Duration(0)
		for attempt := 0; attempt < 32; attempt++ {
			delay := p.Delay(attempt)
			assert.GreaterOrEqual(t, delay, previous, p.Strategy)
			previous = delay
		}
	}
}

func TestConfigRoundTrip(t *testing.T) {
	p := &Policy{
		Strategy:   StrategyLinear,
		BaseDelay:  2 * time.Second,
		MaxDelay:   20 * time.Second,
		Multiplier: 3,
	}
	restored := FromConfig(ToConfig(p))
	assert.Equal(t, p, restored)
	assert.Nil(t, ToConfig(nil))
	assert.Nil(t, FromConfig(nil))
}

func TestContextHelpers(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	p := Default()
	ctx := WithPolicy(context.Background(), p)
	assert.Same(t, p, FromContext(ctx))
}
