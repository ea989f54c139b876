package resolver

import (
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/norm42-dev/norm42/internal/fsh"
)

// Chain walks the resolution strategies in priority order and caches the
// winning plan for the life of the process. A change of override invalidates
// the cache; a failed walk is retried on the next call.
type Chain struct {
	env fsh.EnvProvider

	mu    sync.RWMutex       // Protects plan, key and attempts
	group singleflight.Group // Prevents duplicate probe walks

	key      string
	plan     *ExecutionPlan
	attempts []Attempt
}

// NewChain creates a Chain reading HOME and VIRTUAL_ENV through env.
func NewChain(env fsh.EnvProvider) *Chain {
	return &Chain{env: env}
}

// Resolve returns an execution plan for the formatter. override is the
// explicit path from flag, environment or config, empty for none. The first
// successful strategy wins and later strategies are never probed.
func (c *Chain) Resolve(override string) (*ExecutionPlan, error) {
	c.mu.RLock()
	if c.plan != nil && c.key == override {
		plan := c.plan
		c.mu.RUnlock()
		return plan, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(override, func() (interface{}, error) {
		// Double-check the cache after acquiring the flight
		c.mu.RLock()
		if c.plan != nil && c.key == override {
			plan := c.plan
			c.mu.RUnlock()
			return plan, nil
		}
		c.mu.RUnlock()

		plan, attempts, walkErr := c.walk(override)

		c.mu.Lock()
		c.key = override
		c.plan = plan
		c.attempts = attempts
		c.mu.Unlock()

		if walkErr != nil {
			return nil, walkErr
		}
		return plan, nil
	})
	if err != nil {
		return nil, err
	}

	plan, _ := v.(*ExecutionPlan)
	return plan, nil
}

// Attempts returns the locations probed by the most recent walk, in order.
func (c *Chain) Attempts() []Attempt {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.attempts)
}

func (c *Chain) walk(override string) (*ExecutionPlan, []Attempt, error) {
	if override != "" {
		return c.resolveOverride(override)
	}

	var attempts []Attempt

	plan, attempt := c.resolvePath()
	attempts = append(attempts, attempt)
	if plan != nil {
		return plan, attempts, nil
	}

	plan, moduleAttempts := c.resolveModule()
	attempts = append(attempts, moduleAttempts...)
	if plan != nil {
		return plan, attempts, nil
	}

	plan, dirAttempts := c.resolveWellKnown()
	attempts = append(attempts, dirAttempts...)
	if plan != nil {
		return plan, attempts, nil
	}

	plan, brewAttempts := c.resolveBrew()
	attempts = append(attempts, brewAttempts...)
	if plan != nil {
		return plan, attempts, nil
	}

	return nil, attempts, &ResolutionError{Attempts: attempts}
}
