// Package main provides a one-shot CLI that prints the latest news for a query.
// Usage: catchup-headlines [-query Q] [-output text|json] [-timeout D]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catchup-news/internal/config"
	"catchup-news/internal/domain/entity"
	"catchup-news/internal/infra/httpclient"
	"catchup-news/internal/infra/worker"
	"catchup-news/internal/observability/logging"
	"catchup-news/internal/usecase/news"
)

// HeadlinesOutput represents the JSON output format.
type HeadlinesOutput struct {
	Query        string          `json:"query"`
	Status       string          `json:"status"`
	TotalResults int             `json:"total_results"`
	Articles     []ArticleOutput `json:"articles"`
}

// ArticleOutput represents a single article in the output.
type ArticleOutput struct {
	Source      string  `json:"source"`
	Author      *string `json:"author,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	ImageURL    string  `json:"image_url"`
}

func main() {
	var (
		query        string
		outputFormat string
		timeout      time.Duration
	)

	flag.StringVar(&query, "query", "", "Search term (default: NEWSAPI_QUERY or \"tesla\")")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Maximum time to wait for a response")
	flag.Parse()

	if outputFormat != "text" && outputFormat != "json" {
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q (expected text or json)\n", outputFormat)
		os.Exit(2)
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewTextLogger()

	cfg, warnings, err := config.LoadNewsAPIConfig()
	for _, warning := range warnings {
		logger.Warn("Configuration fallback applied", slog.String("warning", warning))
	}
	if err != nil {
		logger.Error("failed to load newsapi configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if query != "" {
		cfg.Query = query
	}

	client := httpclient.New(cfg.HTTPClientConfig(), httpclient.WithLogger(logger))
	svc := news.NewService(client, news.SystemClock{}, cfg.APIKey, cfg.Query, news.WithLogger(logger))
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	root, err := svc.FetchNews(ctx)
	if err != nil {
		logger.Error(worker.FailureMessage, slog.String("error", logging.SanitizeError(err)))
		fmt.Fprintln(os.Stderr, worker.FailureMessage)
		os.Exit(1)
	}

	if outputFormat == "json" {
		err = outputJSON(os.Stdout, cfg.Query, root)
	} else {
		err = outputText(os.Stdout, cfg.Query, root)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
		os.Exit(1)
	}
}

// outputText prints the status line followed by one numbered title per article.
func outputText(w io.Writer, query string, root entity.NewsRoot) error {
	if _, err := fmt.Fprintf(w, "News for %q\nstatus=%s totalResults=%d\n\n", query, root.Status, root.TotalResults); err != nil {
		return err
	}
	if len(root.Articles) == 0 {
		_, err := fmt.Fprintln(w, "No articles found.")
		return err
	}
	for i, article := range root.Articles {
		if _, err := fmt.Fprintf(w, "%d. %s\n   %s | %s\n", i+1, article.Title, article.Source.Name, article.URL.String()); err != nil {
			return err
		}
	}
	return nil
}

// outputJSON prints the result as indented JSON.
func outputJSON(w io.Writer, query string, root entity.NewsRoot) error {
	out := HeadlinesOutput{
		Query:        query,
		Status:       root.Status,
		TotalResults: root.TotalResults,
		Articles:     make([]ArticleOutput, 0, len(root.Articles)),
	}
	for _, article := range root.Articles {
		out.Articles = append(out.Articles, ArticleOutput{
			Source:      article.Source.Name,
			Author:      article.Author,
			Title:       article.Title,
			Description: article.Description,
			URL:         article.URL.String(),
			ImageURL:    article.ImageURL.String(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
