package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvEngineAttempts      = "CLAIMCHECK_ENGINE_ATTEMPTS"
	EnvEngineRetryDelay    = "CLAIMCHECK_ENGINE_RETRY_DELAY"
	EnvEngineMaxConcurrent = "CLAIMCHECK_ENGINE_MAX_CONCURRENT"
)

// EngineConfig holds decision engine parameters: the total attempt
// budget per invoice, the delay between attempts, and the cap on
// concurrent analysis runs.
type EngineConfig struct {
	Attempts      int    `toml:"attempts"`
	RetryDelay    string `toml:"retry_delay"`
	MaxConcurrent int64  `toml:"max_concurrent"`
}

// RetryDelayDuration returns RetryDelay as a time.Duration.
func (c *EngineConfig) RetryDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryDelay)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EngineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *EngineConfig) Merge(overlay *EngineConfig) {
	if overlay.Attempts != 0 {
		c.Attempts = overlay.Attempts
	}
	if overlay.RetryDelay != "" {
		c.RetryDelay = overlay.RetryDelay
	}
	if overlay.MaxConcurrent != 0 {
		c.MaxConcurrent = overlay.MaxConcurrent
	}
}

func (c *EngineConfig) loadDefaults() {
	if c.Attempts == 0 {
		c.Attempts = 3
	}
	if c.RetryDelay == "" {
		c.RetryDelay = "2s"
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 2
	}
}

func (c *EngineConfig) loadEnv() {
	if v := os.Getenv(EnvEngineAttempts); v != "" {
		if attempts, err := strconv.Atoi(v); err == nil {
			c.Attempts = attempts
		}
	}
	if v := os.Getenv(EnvEngineRetryDelay); v != "" {
		c.RetryDelay = v
	}
	if v := os.Getenv(EnvEngineMaxConcurrent); v != "" {
		if max, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxConcurrent = max
		}
	}
}

func (c *EngineConfig) validate() error {
	if c.Attempts < 1 {
		return fmt.Errorf("invalid attempts: %d", c.Attempts)
	}
	if _, err := time.ParseDuration(c.RetryDelay); err != nil {
		return fmt.Errorf("invalid retry_delay: %w", err)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("invalid max_concurrent: %d", c.MaxConcurrent)
	}
	return nil
}
