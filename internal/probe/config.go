package probe

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL  string        // Base URL of the dashboard server
	Requests int           // Requests per JSON endpoint
	Workers  int           // Concurrent workers
	Timeout  time.Duration // Per-request timeout
	Verbose  bool          // Log every check, not only failures
}

// Validate rejects configurations the runner cannot use.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q is not absolute", ErrConfig, c.BaseURL)
	}
	if c.Requests < 1 {
		return fmt.Errorf("%w: requests must be at least 1", ErrConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", ErrConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrConfig)
	}
	return nil
}
