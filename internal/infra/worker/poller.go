package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"catchup-news/internal/domain/entity"
	"catchup-news/internal/observability/logging"
	"catchup-news/internal/observability/requestid"
)

// FailureMessage is logged when a poll ends without news.
const FailureMessage = "Failed to retrieve news"

// NewsFetcher returns the first decisive search result.
type NewsFetcher interface {
	FetchNews(ctx context.Context) (entity.NewsRoot, error)
}

// Poller fetches news on a cron schedule and logs what it got.
type Poller struct {
	fetcher NewsFetcher
	cfg     WorkerConfig
	logger  *slog.Logger
	metrics *WorkerMetrics
}

// NewPoller creates a Poller. metrics may be nil.
func NewPoller(fetcher NewsFetcher, cfg WorkerConfig, logger *slog.Logger, metrics *WorkerMetrics) *Poller {
	return &Poller{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// RunOnce performs one poll bounded by the configured request timeout.
func (p *Poller) RunOnce(ctx context.Context) error {
	ctx, runID := requestid.Ensure(ctx)
	logger := p.logger.With(slog.String("request_id", runID))

	ctx, cancel := context.WithTimeout(ctx, p.cfg.RequestTimeout)
	defer cancel()

	start := time.Now()
	root, err := p.fetcher.FetchNews(ctx)
	duration := time.Since(start)

	if p.metrics != nil {
		p.metrics.RecordJobDuration(duration.Seconds())
	}

	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordJobRun(StatusFailure)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("no decisive response within %v: %w", p.cfg.RequestTimeout, err)
		}
		logger.Error(FailureMessage,
			slog.String("error", logging.SanitizeError(err)),
			slog.Duration("duration", duration))
		return err
	}

	if p.metrics != nil {
		p.metrics.RecordJobRun(StatusSuccess)
		p.metrics.RecordArticles(len(root.Articles))
		p.metrics.RecordLastSuccess()
	}

	logger.Info("news retrieved",
		slog.String("status", root.Status),
		slog.Int("total_results", root.TotalResults),
		slog.Int("articles", len(root.Articles)),
		slog.Duration("duration", duration))
	for i, article := range root.Articles {
		logger.Info("article",
			slog.Int("index", i),
			slog.String("source", article.Source.Name),
			slog.String("title", article.Title),
			slog.String("url", article.URL.String()))
	}
	return nil
}

// Start schedules RunOnce and blocks until ctx is cancelled. A run in
// progress when ctx ends is allowed to finish. onScheduled, if non-nil, is
// called once the schedule is active.
func (p *Poller) Start(ctx context.Context, onScheduled func()) error {
	c := cron.New(
		cron.WithLocation(p.cfg.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	if _, err := c.AddFunc(p.cfg.CronSchedule, func() {
		_ = p.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("schedule poll: %w", err)
	}

	c.Start()
	p.logger.Info("poller started",
		slog.String("schedule", p.cfg.CronSchedule),
		slog.String("timezone", p.cfg.Timezone))

	if onScheduled != nil {
		onScheduled()
	}
	if p.cfg.RunOnStart {
		_ = p.RunOnce(ctx)
	}

	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	p.logger.Info("poller stopped")
	return nil
}
