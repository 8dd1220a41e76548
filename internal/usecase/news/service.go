package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"catchup-news/internal/domain/entity"
	"catchup-news/internal/observability/logging"
	"catchup-news/internal/observability/metrics"
	"catchup-news/internal/observability/requestid"
)

// apiKeyParam is redacted from every logged URL.
const apiKeyParam = "apiKey"

// Recorder receives per-callback measurements from the Service.
type Recorder interface {
	RecordOutcome(success bool)
	RecordIndecisive(reason string)
	RecordReleasedDrop()
	RecordPayload(articles, totalResults int)
}

// prometheusRecorder forwards to the package-level Prometheus collectors.
type prometheusRecorder struct{}

func (prometheusRecorder) RecordOutcome(success bool)        { metrics.RecordOutcome(success) }
func (prometheusRecorder) RecordIndecisive(reason string)    { metrics.RecordIndecisive(reason) }
func (prometheusRecorder) RecordReleasedDrop()               { metrics.RecordReleasedDrop() }
func (prometheusRecorder) RecordPayload(articles, total int) { metrics.RecordPayload(articles, total) }

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder replaces the Prometheus recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// Service requests news through an HTTPClient and reports decisive outcomes.
//
// A Service is safe for concurrent use. Once closed, callbacks that arrive
// afterwards are dropped and no completion is invoked.
type Service struct {
	client   HTTPClient
	clock    Clock
	apiKey   string
	query    string
	logger   *slog.Logger
	recorder Recorder

	done      chan struct{}
	closeOnce sync.Once
}

// NewService creates a Service that searches for query using apiKey.
func NewService(client HTTPClient, clock Clock, apiKey, query string, opts ...Option) *Service {
	s := &Service{
		client:   client,
		clock:    clock,
		apiKey:   apiKey,
		query:    query,
		logger:   slog.Default(),
		recorder: prometheusRecorder{},
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the Service. It is safe to call more than once.
func (s *Service) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Closed reports whether Close has been called.
func (s *Service) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// RequestNews issues one GET for the configured query and calls completion
// for every decisive callback the transport delivers.
//
// Indecisive callbacks are dropped. Callbacks arriving after Close or after
// ctx is done are dropped too. If the search URL cannot be built, the
// failure is logged and completion is never called.
//
// completion may be called on any goroutine.
func (s *Service) RequestNews(ctx context.Context, completion func(Result)) {
	_ = s.request(ctx, completion)
}

// FetchNews runs one request and waits for its first decisive outcome.
func (s *Service) FetchNews(ctx context.Context) (entity.NewsRoot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan Result, 1)
	err := s.request(ctx, func(r Result) {
		select {
		case results <- r:
		default:
		}
	})
	if err != nil {
		return entity.NewsRoot{}, err
	}

	select {
	case r := <-results:
		return r.Result()
	case <-ctx.Done():
		return entity.NewsRoot{}, ctx.Err()
	case <-s.done:
		return entity.NewsRoot{}, ErrServiceClosed
	}
}

func (s *Service) request(ctx context.Context, completion func(Result)) error {
	if s.Closed() {
		return ErrServiceClosed
	}

	// A request ID already on ctx is kept so callers can correlate their own logs.
	ctx, _ = requestid.Ensure(ctx)
	logger := logging.WithRequestID(ctx, s.logger)
	ctx = logging.WithLogger(ctx, logger)

	u, err := BuildSearchURL(s.clock.Now(), s.query, s.apiKey)
	if err != nil {
		logger.Warn("failed to build search url", slog.Any("error", err))
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		logger.Warn("failed to create request", slog.Any("error", err))
		return fmt.Errorf("create request: %w", err)
	}

	logger.Debug("requesting news", slog.String("url", logging.RedactURL(u, apiKeyParam)))

	s.client.Get(req, func(raw RawResponse) {
		if s.Closed() || ctx.Err() != nil {
			s.recorder.RecordReleasedDrop()
			logger.Debug("dropping callback for released request")
			return
		}

		outcome := MapResponse[entity.NewsRoot](raw)
		if !outcome.IsDecisive() {
			s.recorder.RecordIndecisive(outcome.Reason())
			logger.Debug("dropping indecisive response", slog.String("reason", outcome.Reason()))
			return
		}

		s.recorder.RecordOutcome(outcome.Kind() == OutcomeSuccess)
		if outcome.Kind() == OutcomeSuccess {
			root := outcome.Value()
			s.recorder.RecordPayload(len(root.Articles), root.TotalResults)
			logger.Info("news received",
				slog.String("status", root.Status),
				slog.Int("total_results", root.TotalResults),
				slog.Int("articles", len(root.Articles)))
		} else {
			logger.Warn("news request failed", slog.String("error", logging.SanitizeError(outcome.Err())))
		}

		completion(outcome)
	})
	return nil
}
