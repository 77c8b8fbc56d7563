package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Agent.validate(); err != nil {
		return fmt.Errorf("agent: %w", err)
	}

	if err := c.Calendar.validate(); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}

	if err := c.Scheduler.validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	return nil
}

func (c AgentConfig) validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", c.MaxTokens)
	}
	if c.MaxToolRounds < 1 {
		return fmt.Errorf("max_tool_rounds must be >= 1 (got %d)", c.MaxToolRounds)
	}
	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("rate_limit_per_minute must be >= 1 (got %d)", c.RateLimitPerMinute)
	}
	return nil
}

func (c CalendarConfig) validate() error {
	if c.BridgeURL == "" {
		return nil
	}
	if _, err := url.ParseRequestURI(c.BridgeURL); err != nil {
		return fmt.Errorf("bridge_url: %w", err)
	}
	if c.ToolCacheSize < 1 {
		return fmt.Errorf("tool_cache_size must be >= 1 (got %d)", c.ToolCacheSize)
	}
	return nil
}

func (c SchedulerConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be > 0 (got %v)", c.Interval)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1 (got %d)", c.BatchSize)
	}
	return nil
}
