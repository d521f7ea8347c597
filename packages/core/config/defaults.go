package config

import "time"

const (
	RendererHuman = "human"
	RendererDiff  = "diff"

	DefaultTimeout      = 30 * time.Second
	DefaultMaxRedirects = 10
)

// DefaultConfig returns a configuration with default values. Concurrency is
// left at zero so the runner picks its CPU based default.
func DefaultConfig() *Config {
	return &Config{
		Timeout:         DefaultTimeout.String(),
		FollowRedirects: BoolPtr(true),
		MaxRedirects:    DefaultMaxRedirects,
		ValidateSSL:     BoolPtr(true),
		Renderer:        RendererHuman,
		NoColor:         BoolPtr(false),
		ShowResponse:    BoolPtr(false),
		Strict:          BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	timeout, err := c.GetTimeout()
	return err == nil &&
		timeout == DefaultTimeout &&
		c.Concurrency == defaults.Concurrency &&
		c.Rate == defaults.Rate &&
		len(c.Headers) == 0 &&
		c.GetFollowRedirects() &&
		c.MaxRedirects == defaults.MaxRedirects &&
		c.GetValidateSSL() &&
		c.Proxy == defaults.Proxy &&
		(c.Renderer == "" || c.Renderer == defaults.Renderer) &&
		!c.GetNoColor() &&
		!c.GetShowResponse() &&
		!c.GetStrict()
}
