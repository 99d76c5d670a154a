package depot

import "time"

// Config holds configuration for the Depot engine.
type Config struct {
	// ScopeTTL bounds staleness of the supervisor reporting-chain cache.
	// Reporting-chain changes become visible within this window; there is
	// no explicit invalidation. Defaults to 5 minutes.
	ScopeTTL time.Duration `json:"scope_ttl,omitempty"`

	// PageTTL is the time-to-live for cached page slices and totals.
	// Defaults to 2 minutes.
	PageTTL time.Duration `json:"page_ttl,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ScopeTTL: 5 * time.Minute,
		PageTTL:  2 * time.Minute,
	}
}

func (c Config) scopeTTL() time.Duration {
	if c.ScopeTTL > 0 {
		return c.ScopeTTL
	}
	return 5 * time.Minute
}

func (c Config) pageTTL() time.Duration {
	if c.PageTTL > 0 {
		return c.PageTTL
	}
	return 2 * time.Minute
}
