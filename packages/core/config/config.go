package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the axotly configuration
type Config struct {
	Timeout         string            `json:"timeout,omitempty" yaml:"timeout,omitempty"` // duration, e.g. "30s"
	Concurrency     int               `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Rate            float64           `json:"rate,omitempty" yaml:"rate,omitempty"` // requests per second
	Headers         map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	FollowRedirects *bool             `json:"followRedirects,omitempty" yaml:"followRedirects,omitempty"`
	MaxRedirects    int               `json:"maxRedirects,omitempty" yaml:"maxRedirects,omitempty"`
	ValidateSSL     *bool             `json:"validateSSL,omitempty" yaml:"validateSSL,omitempty"`
	Proxy           string            `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	Renderer        string            `json:"renderer,omitempty" yaml:"renderer,omitempty"`
	NoColor         *bool             `json:"noColor,omitempty" yaml:"noColor,omitempty"`
	ShowResponse    *bool             `json:"showResponse,omitempty" yaml:"showResponse,omitempty"`
	Strict          *bool             `json:"strict,omitempty" yaml:"strict,omitempty"`
}

// BoolPtr returns a pointer to b, for building configs in code
func BoolPtr(b bool) *bool {
	return &b
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

func (c *Config) GetShowResponse() bool {
	return getBool(c.ShowResponse, false)
}

func (c *Config) GetStrict() bool {
	return getBool(c.Strict, false)
}

// GetTimeout returns the parsed request timeout. An empty value yields the
// default.
func (c *Config) GetTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", c.Timeout)
	}
	return d, nil
}

// Validate checks the values that cannot be caught while decoding.
func (c *Config) Validate() error {
	if _, err := c.GetTimeout(); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("invalid concurrency %d: must not be negative", c.Concurrency)
	}
	if c.Rate < 0 {
		return fmt.Errorf("invalid rate %g: must not be negative", c.Rate)
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("invalid maxRedirects %d: must not be negative", c.MaxRedirects)
	}
	switch c.Renderer {
	case "", RendererHuman, RendererDiff:
	default:
		return fmt.Errorf("unknown renderer %q (want %s or %s)", c.Renderer, RendererHuman, RendererDiff)
	}
	return nil
}

// ConfigFilenames contains the possible config file names, in lookup order
var ConfigFilenames = []string{
	".axotly.yaml",
	".axotly.yml",
	"axotly.config.json",
	".axotlyrc",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile decodes JSON for .json files and YAML otherwise. YAML
// being a superset of JSON, .axotlyrc may hold either.
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	config := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Timeout != "" {
		result.Timeout = other.Timeout
	}
	if other.Concurrency > 0 {
		result.Concurrency = other.Concurrency
	}
	if other.Rate > 0 {
		result.Rate = other.Rate
	}
	if other.MaxRedirects > 0 {
		result.MaxRedirects = other.MaxRedirects
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}
	if other.Renderer != "" {
		result.Renderer = other.Renderer
	}

	// Boolean flags - only override if explicitly set in other config
	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.ShowResponse != nil {
		result.ShowResponse = other.ShowResponse
	}
	if other.Strict != nil {
		result.Strict = other.Strict
	}

	if len(c.Headers) > 0 || len(other.Headers) > 0 {
		result.Headers = make(map[string]string, len(c.Headers)+len(other.Headers))
		for k, v := range c.Headers {
			result.Headers[k] = v
		}
		for k, v := range other.Headers {
			result.Headers[k] = v
		}
	}

	return &result
}
