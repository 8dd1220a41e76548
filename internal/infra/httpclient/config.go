package httpclient

import (
	"fmt"
	"time"

	"catchup-news/internal/resilience/circuitbreaker"
)

// Config holds transport settings for the news search client.
type Config struct {
	// Timeout is the overall per-request timeout of the default http.Client.
	// Default: 15s
	Timeout time.Duration

	// MaxBodySize caps how many response bytes are read. Larger bodies fail the request.
	// Default: 5MB
	MaxBodySize int64

	// MaxRedirects is the number of redirects followed before giving up.
	// Default: 5
	MaxRedirects int

	// RatePerSecond is the sustained request rate. Zero disables pacing.
	// Default: 1
	RatePerSecond float64

	// RateBurst is the token bucket size.
	// Default: 1
	RateBurst int

	// CircuitBreaker configures the breaker wrapped around every request.
	CircuitBreaker circuitbreaker.Config
}

// DefaultConfig returns the transport defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        15 * time.Second,
		MaxBodySize:    5 * 1024 * 1024,
		MaxRedirects:   5,
		RatePerSecond:  1,
		RateBurst:      1,
		CircuitBreaker: circuitbreaker.NewsAPIConfig(),
	}
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize <= 0 {
		return fmt.Errorf("max body size must be positive, got %d", c.MaxBodySize)
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("max redirects must not be negative, got %d", c.MaxRedirects)
	}
	if c.RatePerSecond < 0 {
		return fmt.Errorf("rate per second must not be negative, got %v", c.RatePerSecond)
	}
	if c.RatePerSecond > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1, got %d", c.RateBurst)
	}
	return nil
}
