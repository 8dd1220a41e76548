// Package config loads the newsapi.org client configuration.
//
// Values come from three layers, later ones winning:
//  1. built-in defaults
//  2. an optional YAML file named by NEWSAPI_CONFIG_FILE
//  3. NEWSAPI_* environment variables
//
// Malformed environment values fall back to the layer below with a warning.
// A missing API key is an error.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"catchup-news/internal/infra/httpclient"
	pkgconfig "catchup-news/internal/pkg/config"
	"catchup-news/internal/resilience/circuitbreaker"
)

// Environment variable names.
const (
	EnvConfigFile      = "NEWSAPI_CONFIG_FILE"
	EnvAPIKey          = "NEWSAPI_KEY"
	EnvQuery           = "NEWSAPI_QUERY"
	EnvRequestTimeout  = "NEWSAPI_TIMEOUT"
	EnvMaxBodySize     = "NEWSAPI_MAX_BODY_BYTES"
	EnvMaxRedirects    = "NEWSAPI_MAX_REDIRECTS"
	EnvRatePerSecond   = "NEWSAPI_RATE_PER_SECOND"
	EnvRateBurst       = "NEWSAPI_RATE_BURST"
	EnvCBMaxRequests   = "NEWSAPI_CB_MAX_REQUESTS"
	EnvCBInterval      = "NEWSAPI_CB_INTERVAL"
	EnvCBTimeout       = "NEWSAPI_CB_TIMEOUT"
	EnvCBFailureThresh = "NEWSAPI_CB_FAILURE_THRESHOLD"
	EnvCBMinRequests   = "NEWSAPI_CB_MIN_REQUESTS"
)

// DefaultQuery is the search term used when none is configured.
const DefaultQuery = "tesla"

// ErrMissingAPIKey indicates no API key was configured.
var ErrMissingAPIKey = errors.New("newsapi api key is required")

// NewsAPIConfig holds configuration for the newsapi.org client.
type NewsAPIConfig struct {
	// APIKey is sent as the apiKey query parameter. Required.
	APIKey string `yaml:"api_key"`

	// Query is the search term. Default: "tesla"
	Query string `yaml:"query"`

	// RequestTimeout bounds a single HTTP exchange. Default: 15s
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// MaxBodySize caps the response body in bytes. Default: 5MB
	MaxBodySize int64 `yaml:"max_body_size"`

	// MaxRedirects is the redirect limit. Default: 5
	MaxRedirects int `yaml:"max_redirects"`

	// RatePerSecond paces outgoing requests; 0 disables pacing. Default: 1
	RatePerSecond float64 `yaml:"rate_per_second"`

	// RateBurst is the token bucket size. Default: 1
	RateBurst int `yaml:"rate_burst"`

	// CircuitBreaker for newsapi.org calls.
	CircuitBreaker circuitbreaker.Config `yaml:"circuit_breaker"`
}

// DefaultNewsAPIConfig returns the built-in defaults. APIKey is empty.
func DefaultNewsAPIConfig() NewsAPIConfig {
	transport := httpclient.DefaultConfig()
	return NewsAPIConfig{
		Query:          DefaultQuery,
		RequestTimeout: transport.Timeout,
		MaxBodySize:    transport.MaxBodySize,
		MaxRedirects:   transport.MaxRedirects,
		RatePerSecond:  transport.RatePerSecond,
		RateBurst:      transport.RateBurst,
		CircuitBreaker: transport.CircuitBreaker,
	}
}

// LoadNewsAPIConfig builds the configuration from defaults, the optional
// YAML file and the environment. Warnings list every fallback applied.
func LoadNewsAPIConfig() (*NewsAPIConfig, []string, error) {
	cfg := DefaultNewsAPIConfig()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := loadNewsAPIFile(path, &cfg); err != nil {
			return nil, nil, err
		}
	}

	warnings := applyNewsAPIEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, warnings, fmt.Errorf("invalid newsapi configuration: %w", err)
	}
	return &cfg, warnings, nil
}

// loadNewsAPIFile overlays the YAML document at path onto cfg.
// Unknown keys are rejected so typos do not go unnoticed.
func loadNewsAPIFile(path string, cfg *NewsAPIConfig) error {
	// #nosec G304 -- path comes from the operator's environment, not request input
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var doc struct {
		NewsAPI *NewsAPIConfig `yaml:"newsapi"`
	}
	doc.NewsAPI = cfg

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func applyNewsAPIEnv(cfg *NewsAPIConfig) []string {
	var warnings []string
	collect := func(w []string) { warnings = append(warnings, w...) }

	positiveInt := func(v int) error { return pkgconfig.ValidateIntRange(v, 1, 1000) }
	positiveInt64 := func(v int64) error {
		if v <= 0 {
			return fmt.Errorf("size must be positive, got %d", v)
		}
		return nil
	}

	cfg.APIKey = pkgconfig.LoadEnvString(EnvAPIKey, cfg.APIKey)
	cfg.Query = pkgconfig.LoadEnvString(EnvQuery, cfg.Query)

	timeout := pkgconfig.LoadEnvDuration(EnvRequestTimeout, cfg.RequestTimeout, pkgconfig.ValidatePositiveDuration)
	cfg.RequestTimeout = timeout.Value
	collect(timeout.Warnings)

	bodySize := pkgconfig.LoadEnvInt64(EnvMaxBodySize, cfg.MaxBodySize, positiveInt64)
	cfg.MaxBodySize = bodySize.Value
	collect(bodySize.Warnings)

	redirects := pkgconfig.LoadEnvInt(EnvMaxRedirects, cfg.MaxRedirects, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 0, 20)
	})
	cfg.MaxRedirects = redirects.Value
	collect(redirects.Warnings)

	ratePerSecond := pkgconfig.LoadEnvFloat(EnvRatePerSecond, cfg.RatePerSecond, func(v float64) error {
		return pkgconfig.ValidateFloatRange(v, 0, 100)
	})
	cfg.RatePerSecond = ratePerSecond.Value
	collect(ratePerSecond.Warnings)

	burst := pkgconfig.LoadEnvInt(EnvRateBurst, cfg.RateBurst, positiveInt)
	cfg.RateBurst = burst.Value
	collect(burst.Warnings)

	cbMax := pkgconfig.LoadEnvInt(EnvCBMaxRequests, int(cfg.CircuitBreaker.MaxRequests), positiveInt)
	cfg.CircuitBreaker.MaxRequests = uint32(cbMax.Value) // #nosec G115 -- bounded by validator
	collect(cbMax.Warnings)

	cbInterval := pkgconfig.LoadEnvDuration(EnvCBInterval, cfg.CircuitBreaker.Interval, pkgconfig.ValidatePositiveDuration)
	cfg.CircuitBreaker.Interval = cbInterval.Value
	collect(cbInterval.Warnings)

	cbTimeout := pkgconfig.LoadEnvDuration(EnvCBTimeout, cfg.CircuitBreaker.Timeout, pkgconfig.ValidatePositiveDuration)
	cfg.CircuitBreaker.Timeout = cbTimeout.Value
	collect(cbTimeout.Warnings)

	cbThreshold := pkgconfig.LoadEnvFloat(EnvCBFailureThresh, cfg.CircuitBreaker.FailureThreshold, func(v float64) error {
		return pkgconfig.ValidateFloatRange(v, 0.01, 1)
	})
	cfg.CircuitBreaker.FailureThreshold = cbThreshold.Value
	collect(cbThreshold.Warnings)

	cbMin := pkgconfig.LoadEnvInt(EnvCBMinRequests, int(cfg.CircuitBreaker.MinRequests), positiveInt)
	cfg.CircuitBreaker.MinRequests = uint32(cbMin.Value) // #nosec G115 -- bounded by validator
	collect(cbMin.Warnings)

	return warnings
}

// Validate checks configuration correctness.
func (c *NewsAPIConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: set %s", ErrMissingAPIKey, EnvAPIKey)
	}
	if c.Query == "" {
		return fmt.Errorf("%s cannot be empty", EnvQuery)
	}
	if c.CircuitBreaker.Name == "" {
		return fmt.Errorf("circuit breaker name cannot be empty")
	}
	if c.CircuitBreaker.MaxRequests == 0 {
		return fmt.Errorf("%s must be positive", EnvCBMaxRequests)
	}
	if c.CircuitBreaker.FailureThreshold <= 0 || c.CircuitBreaker.FailureThreshold > 1 {
		return fmt.Errorf("%s must be in (0, 1]", EnvCBFailureThresh)
	}
	return c.HTTPClientConfig().Validate()
}

// HTTPClientConfig converts c to the transport configuration.
func (c *NewsAPIConfig) HTTPClientConfig() httpclient.Config {
	return httpclient.Config{
		Timeout:        c.RequestTimeout,
		MaxBodySize:    c.MaxBodySize,
		MaxRedirects:   c.MaxRedirects,
		RatePerSecond:  c.RatePerSecond,
		RateBurst:      c.RateBurst,
		CircuitBreaker: c.CircuitBreaker,
	}
}
