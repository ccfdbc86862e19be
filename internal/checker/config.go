package checker

import "time"

const (
	DefaultTimeout         = 30 * time.Second
	DefaultFallbackTimeout = 15 * time.Second
	DefaultUserAgent       = "north-cloud-link-checker/1.0 (+https://northcloud.one)"
	DefaultMaxRedirects    = 5
	DefaultSlowThreshold   = 5 * time.Second
)

// Config controls how URLs are probed.
type Config struct {
	// Timeout bounds the HEAD probe and each redirect hop.
	Timeout time.Duration `env:"CHECKER_TIMEOUT" yaml:"timeout"`
	// FallbackTimeout bounds the GET retry. Timeout wins when smaller.
	FallbackTimeout time.Duration `yaml:"fallback_timeout"`
	UserAgent       string        `env:"CHECKER_USER_AGENT" yaml:"user_agent"`
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool          `env:"CHECKER_INSECURE_SKIP_VERIFY" yaml:"insecure_skip_verify"`
	MaxRedirects       int           `yaml:"max_redirects"`
	SlowThreshold      time.Duration `yaml:"slow_threshold"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.FallbackTimeout <= 0 {
		c.FallbackTimeout = DefaultFallbackTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = DefaultMaxRedirects
	}
	if c.SlowThreshold <= 0 {
		c.SlowThreshold = DefaultSlowThreshold
	}
}

// getTimeout is the GET fallback bound: FallbackTimeout, capped at Timeout.
func (c *Config) getTimeout() time.Duration {
	return min(c.FallbackTimeout, c.Timeout)
}
