// Package httpclient is the production transport behind news.HTTPClient.
//
// Each Get runs one round trip on its own goroutine and reports it to the
// handler exactly once. Requests are paced by a token bucket, guarded by a
// circuit breaker, traced and measured.
package httpclient

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"catchup-news/internal/observability/logging"
	"catchup-news/internal/observability/metrics"
	"catchup-news/internal/observability/tracing"
	"catchup-news/internal/resilience/circuitbreaker"
	"catchup-news/internal/usecase/news"
)

var (
	// ErrBodyTooLarge indicates the response body exceeded Config.MaxBodySize.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTooManyRedirects indicates the redirect limit was reached.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithDoer replaces the default *http.Client.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Client implements news.HTTPClient.
//
// Thread safety: Client is safe for concurrent use.
type Client struct {
	doer        Doer
	breaker     *circuitbreaker.CircuitBreaker
	limiter     *rate.Limiter
	maxBodySize int64
	logger      *slog.Logger
	inflight    sync.WaitGroup
}

var _ news.HTTPClient = (*Client)(nil)

// New creates a Client from cfg.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		breaker:     circuitbreaker.New(cfg.CircuitBreaker),
		maxBodySize: cfg.MaxBodySize,
		logger:      slog.Default(),
	}
	if c.maxBodySize <= 0 {
		c.maxBodySize = DefaultConfig().MaxBodySize
	}
	if cfg.RatePerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = NewHTTPClient(cfg)
	}
	return c
}

// NewHTTPClient builds the default *http.Client: TLS 1.2+, pooled
// connections and a bounded redirect chain.
func NewHTTPClient(cfg Config) *http.Client {
	maxRedirects := cfg.MaxRedirects
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			return nil
		},
	}
}

// Get performs req on a new goroutine and calls handle once with the result.
func (c *Client) Get(req *http.Request, handle func(news.RawResponse)) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		handle(c.do(req))
	}()
}

// Wait blocks until every handler started by Get has returned.
func (c *Client) Wait() {
	c.inflight.Wait()
}

// CircuitOpen reports whether requests are currently being rejected.
func (c *Client) CircuitOpen() bool {
	return c.breaker.IsOpen()
}

// CircuitErr returns a non-nil error wrapping circuitbreaker.ErrOpenState
// while the circuit is open. It fits worker.ReadinessCheck.
func (c *Client) CircuitErr() error {
	if c.CircuitOpen() {
		return fmt.Errorf("%w: %s", circuitbreaker.ErrOpenState, c.breaker.Name())
	}
	return nil
}

// fetched is a completed round trip.
type fetched struct {
	body []byte
	meta *news.HTTPResponseMeta
}

// serverStatusError marks a 5xx so the breaker counts it. The response is still delivered.
type serverStatusError struct {
	code int
}

func (e *serverStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.code)
}

func (c *Client) do(req *http.Request) news.RawResponse {
	ctx := req.Context()
	logger := logging.FromContext(ctx, logging.WithRequestID(ctx, c.logger))

	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			return news.RawResponse{Err: fmt.Errorf("rate limit wait: %w", err)}
		}
		metrics.RecordRateLimitWait(time.Since(waitStart))
	}

	// Clone so trace headers are not written into the caller's request.
	req = req.Clone(ctx)
	ctx, span := tracing.StartClientSpan(ctx, req)
	req = req.WithContext(ctx)

	start := time.Now()
	result, err := circuitbreaker.Do(c.breaker, func() (*fetched, error) {
		return c.roundTrip(req)
	})
	duration := time.Since(start)

	var statusErr *serverStatusError
	if errors.As(err, &statusErr) {
		err = nil
	}

	if circuitbreaker.IsRejection(err) {
		tracing.EndClientSpan(span, 0, err)
		logger.Warn("news request rejected by circuit breaker",
			slog.String("breaker", c.breaker.Name()),
			slog.String("state", c.breaker.State().String()))
		return news.RawResponse{Err: fmt.Errorf("newsapi unavailable: %w", err)}
	}

	if err != nil {
		tracing.EndClientSpan(span, 0, err)
		metrics.RecordUpstreamRequest(0, duration, 0)
		logger.Warn("news request failed",
			slog.String("url", logging.RedactURL(req.URL, "apiKey")),
			slog.Duration("duration", duration),
			slog.Uint64("consecutive_failures", uint64(c.breaker.Counts().ConsecutiveFailures)),
			slog.String("error", logging.SanitizeError(err)))
		return news.RawResponse{Err: err}
	}

	tracing.EndClientSpan(span, result.meta.StatusCode, nil)
	metrics.RecordUpstreamRequest(result.meta.StatusCode, duration, len(result.body))
	logger.Debug("news request completed",
		slog.String("url", logging.RedactURL(req.URL, "apiKey")),
		slog.Int("status", result.meta.StatusCode),
		slog.Int("bytes", len(result.body)),
		slog.Duration("duration", duration))

	return news.RawResponse{Body: result.body, Meta: result.meta}
}

func (c *Client) roundTrip(req *http.Request) (*fetched, error) {
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readLimited(resp.Body, c.maxBodySize)
	if err != nil {
		return nil, err
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	f := &fetched{
		body: body,
		meta: &news.HTTPResponseMeta{
			URL:        finalURL,
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
		},
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return f, &serverStatusError{code: resp.StatusCode}
	}
	return f, nil
}

// readLimited reads r fully, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, limit)
	}
	return body, nil
}
