package api

import (
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultTimeout   = 60 * time.Second
	DefaultUserAgent = "talenttrack-cli"
)

type Config struct {
	BaseURL   string        `json:"base_url"`
	Timeout   time.Duration `json:"timeout"`
	Token     string        `json:"token,omitempty"`
	UserAgent string        `json:"user_agent,omitempty"`

	// Client-side throttle; disabled when RequestsPerSec <= 0.
	RequestsPerSec float64 `json:"requests_per_sec,omitempty"`
	Burst          int     `json:"burst,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}

	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if c.RequestsPerSec > 0 && c.Burst <= 0 {
		return fmt.Errorf("burst must be positive when rate limiting is enabled")
	}

	return nil
}
