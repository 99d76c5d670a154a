package extension

import "time"

// Config holds the Depot extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.depot" or "depot" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// ScopeTTL bounds staleness of the supervisor reporting-chain cache.
	ScopeTTL time.Duration `json:"scope_ttl" mapstructure:"scope_ttl" yaml:"scope_ttl"`

	// PageTTL is the time-to-live for cached page slices and totals.
	PageTTL time.Duration `json:"page_ttl" mapstructure:"page_ttl" yaml:"page_ttl"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ScopeTTL: 5 * time.Minute,
		PageTTL:  2 * time.Minute,
	}
}
