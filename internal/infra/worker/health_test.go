package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catchup-news/internal/observability/requestid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func probe(t *testing.T, h http.Handler, path string) (int, healthResponse, http.Header) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode %s response: %v", path, err)
	}
	return rec.Code, body, rec.Header()
}

func TestHealthServer_Liveness(t *testing.T) {
	server := NewHealthServer(":0", discardLogger())

	code, body, header := probe(t, server.Handler(), "/health")

	if code != http.StatusOK {
		t.Errorf("expected status 200, got %d", code)
	}
	if body.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", body.Status)
	}
	if header.Get(requestid.RequestIDHeader) == "" {
		t.Error("expected a request ID header")
	}
}

func TestHealthServer_Readiness(t *testing.T) {
	server := NewHealthServer(":0", discardLogger())
	h := server.Handler()

	code, body, _ := probe(t, h, "/health/ready")
	if code != http.StatusServiceUnavailable || body.Status != "not ready" {
		t.Errorf("expected 503 not ready before SetReady, got %d %q", code, body.Status)
	}

	server.SetReady(true)
	code, body, _ = probe(t, h, "/health/ready")
	if code != http.StatusOK || body.Status != "ok" {
		t.Errorf("expected 200 ok after SetReady, got %d %q", code, body.Status)
	}

	server.SetReady(false)
	code, _, _ = probe(t, h, "/health/ready")
	if code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 after SetReady(false), got %d", code)
	}
}

func TestHealthServer_ReadinessChecks(t *testing.T) {
	server := NewHealthServer(":0", discardLogger())
	server.SetReady(true)

	circuitOpen := false
	server.AddCheck("newsapi_circuit", func() error {
		if circuitOpen {
			return errors.New("circuit open")
		}
		return nil
	})
	h := server.Handler()

	code, body, _ := probe(t, h, "/health/ready")
	if code != http.StatusOK {
		t.Fatalf("expected 200 with passing check, got %d", code)
	}
	if body.Checks["newsapi_circuit"] != "ok" {
		t.Errorf("expected check result 'ok', got %q", body.Checks["newsapi_circuit"])
	}

	circuitOpen = true
	code, body, _ = probe(t, h, "/health/ready")
	if code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 with failing check, got %d", code)
	}
	if body.Status != "degraded" {
		t.Errorf("expected status 'degraded', got %q", body.Status)
	}
	if body.Checks["newsapi_circuit"] != "circuit open" {
		t.Errorf("expected check error in body, got %q", body.Checks["newsapi_circuit"])
	}
}

func TestHealthServer_MethodNotAllowed(t *testing.T) {
	server := NewHealthServer(":0", discardLogger())

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestHealthServer_StartAndShutdown(t *testing.T) {
	server := NewHealthServer("localhost:19191", discardLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	// Wait for server to start
	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://localhost:19191/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("failed to call /health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("expected ErrServerClosed, got %v", err)
		}
	case <-time.After(6 * time.Second):
		t.Fatal("server did not shut down")
	}
}
