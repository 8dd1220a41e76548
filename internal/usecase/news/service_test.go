package news

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catchup-news/internal/domain/entity"
	"catchup-news/internal/observability/logging"
	"catchup-news/internal/observability/requestid"
	"catchup-news/tests/fixtures"
)

// httpClientSpy stores every request and handler so tests decide when and how
// the transport answers.
type httpClientSpy struct {
	mu       sync.Mutex
	requests []*http.Request
	handlers []func(RawResponse)
}

func (s *httpClientSpy) Get(req *http.Request, handle func(RawResponse)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	s.handlers = append(s.handlers, handle)
}

func (s *httpClientSpy) CompleteWithResponse(index int, raw RawResponse) {
	s.mu.Lock()
	handle := s.handlers[index]
	s.mu.Unlock()
	handle(raw)
}

func (s *httpClientSpy) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// recorderStub counts what the service reports.
type recorderStub struct {
	mu         sync.Mutex
	successes  int
	failures   int
	indecisive []string
	released   int
	articles   int
}

func (r *recorderStub) RecordOutcome(success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if success {
		r.successes++
	} else {
		r.failures++
	}
}

func (r *recorderStub) RecordIndecisive(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indecisive = append(r.indecisive, reason)
}

func (r *recorderStub) RecordReleasedDrop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released++
}

func (r *recorderStub) RecordPayload(articles, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles += articles
}

var fixedNow = time.Date(2021, time.May, 2, 10, 0, 0, 0, time.UTC)

func makeSUT(t *testing.T) (*Service, *httpClientSpy, *recorderStub) {
	t.Helper()
	spy := &httpClientSpy{}
	rec := &recorderStub{}
	sut := NewService(spy, ClockFunc(func() time.Time { return fixedNow }), "any-key", "tesla",
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithRecorder(rec))
	return sut, spy, rec
}

func successResponse() RawResponse {
	return RawResponse{Body: fixtures.TeslaNewsBody(), Meta: httpMeta(http.StatusOK)}
}

func TestService_RequestNews_IssuesOneGet(t *testing.T) {
	sut, spy, _ := makeSUT(t)

	sut.RequestNews(context.Background(), func(Result) {})

	require.Equal(t, 1, spy.callCount())
	req := spy.requests[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "https://newsapi.org/v2/everything?q=tesla&from=2021-4-2&apiKey=any-key", req.URL.String())
	assert.NotEmpty(t, requestid.FromContext(req.Context()))
}

func TestService_RequestNews_KeepsCallerRequestID(t *testing.T) {
	sut, spy, _ := makeSUT(t)
	ctx := requestid.WithRequestID(context.Background(), "run-42")

	sut.RequestNews(ctx, func(Result) {})

	assert.Equal(t, "run-42", requestid.FromContext(spy.requests[0].Context()))
}

func TestService_RequestNews_DeliversSuccess(t *testing.T) {
	sut, spy, rec := makeSUT(t)

	var received []Result
	sut.RequestNews(context.Background(), func(r Result) { received = append(received, r) })
	spy.CompleteWithResponse(0, successResponse())

	require.Len(t, received, 1)
	root, err := received[0].Result()
	require.NoError(t, err)
	assert.True(t, fixtures.ExpectedNewsRoot().Equal(root))
	assert.Equal(t, 1, rec.successes)
	assert.Equal(t, 2, rec.articles)
}

func TestService_RequestNews_DeliversFailure(t *testing.T) {
	sut, spy, rec := makeSUT(t)
	transportErr := errors.New("any error")

	var received []Result
	sut.RequestNews(context.Background(), func(r Result) { received = append(received, r) })
	spy.CompleteWithResponse(0, RawResponse{Err: transportErr})

	require.Len(t, received, 1)
	assert.Equal(t, OutcomeFailure, received[0].Kind())
	assert.ErrorIs(t, received[0].Err(), transportErr)
	assert.Equal(t, 1, rec.failures)
}

func TestService_RequestNews_DropsIndecisive(t *testing.T) {
	responses := map[string]RawResponse{
		"nothing at all":          {},
		"invalid body with 201":   {Body: invalidJSON, Meta: httpMeta(201)},
		"body without meta":       {Body: fixtures.TeslaNewsBody()},
		"body with non-http meta": {Body: fixtures.TeslaNewsBody(), Meta: nonHTTPMeta()},
		"invalid body with 300":   {Body: invalidJSON, Meta: httpMeta(300)},
	}

	for name, raw := range responses {
		t.Run(name, func(t *testing.T) {
			sut, spy, rec := makeSUT(t)

			calls := 0
			sut.RequestNews(context.Background(), func(Result) { calls++ })
			spy.CompleteWithResponse(0, raw)

			assert.Zero(t, calls)
			assert.Len(t, rec.indecisive, 1)
		})
	}
}

func TestService_RequestNews_TwoDecisiveCallbacksCompleteTwice(t *testing.T) {
	sut, spy, _ := makeSUT(t)
	transportErr := errors.New("any error")

	var kinds []OutcomeKind
	sut.RequestNews(context.Background(), func(r Result) { kinds = append(kinds, r.Kind()) })
	spy.CompleteWithResponse(0, successResponse())
	spy.CompleteWithResponse(0, RawResponse{Err: transportErr})

	assert.Equal(t, []OutcomeKind{OutcomeSuccess, OutcomeFailure}, kinds)
	assert.Equal(t, 1, spy.callCount())
}

func TestService_RequestNews_IndecisiveThenDecisive(t *testing.T) {
	sut, spy, _ := makeSUT(t)

	calls := 0
	sut.RequestNews(context.Background(), func(Result) { calls++ })
	spy.CompleteWithResponse(0, RawResponse{Body: invalidJSON, Meta: httpMeta(300)})
	spy.CompleteWithResponse(0, successResponse())

	assert.Equal(t, 1, calls)
}

func TestService_RequestNews_DropsAfterClose(t *testing.T) {
	sut, spy, rec := makeSUT(t)

	calls := 0
	sut.RequestNews(context.Background(), func(Result) { calls++ })
	sut.Close()
	spy.CompleteWithResponse(0, successResponse())
	spy.CompleteWithResponse(0, RawResponse{Err: errors.New("any error")})

	assert.Zero(t, calls)
	assert.Equal(t, 2, rec.released)
	assert.True(t, sut.Closed())
}

func TestService_RequestNews_DropsAfterContextCancel(t *testing.T) {
	sut, spy, rec := makeSUT(t)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	sut.RequestNews(ctx, func(Result) { calls++ })
	cancel()
	spy.CompleteWithResponse(0, successResponse())

	assert.Zero(t, calls)
	assert.Equal(t, 1, rec.released)
}

func TestService_RequestNews_ClosedBeforeRequest(t *testing.T) {
	sut, spy, _ := makeSUT(t)
	sut.Close()
	sut.Close()

	sut.RequestNews(context.Background(), func(Result) { t.Fatal("unexpected completion") })

	assert.Zero(t, spy.callCount())
}

func TestService_RequestNews_URLBuildFailure(t *testing.T) {
	spy := &httpClientSpy{}
	sut := NewService(spy, ClockFunc(func() time.Time {
		return time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	}), "k", "q", WithRecorder(&recorderStub{}))

	sut.RequestNews(context.Background(), func(Result) { t.Fatal("unexpected completion") })
	assert.Zero(t, spy.callCount())

	_, err := sut.FetchNews(context.Background())
	assert.ErrorIs(t, err, ErrSearchWindowUndefined)
}

func TestService_RequestNews_RedactsAPIKeyInLogs(t *testing.T) {
	var buf bytes.Buffer
	spy := &httpClientSpy{}
	sut := NewService(spy, ClockFunc(func() time.Time { return fixedNow }), "super-secret", "tesla",
		WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		WithRecorder(&recorderStub{}))

	sut.RequestNews(context.Background(), func(Result) {})

	assert.Contains(t, buf.String(), "apiKey=REDACTED")
	assert.NotContains(t, buf.String(), "super-secret")
}

func TestService_FetchNews(t *testing.T) {
	t.Run("returns first decisive outcome", func(t *testing.T) {
		sut, spy, _ := makeSUT(t)

		go func() {
			for spy.callCount() == 0 {
				time.Sleep(time.Millisecond)
			}
			spy.CompleteWithResponse(0, RawResponse{Body: invalidJSON, Meta: httpMeta(500)})
			spy.CompleteWithResponse(0, successResponse())
		}()

		root, err := sut.FetchNews(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ok", root.Status)
	})

	t.Run("returns transport error", func(t *testing.T) {
		sut, spy, _ := makeSUT(t)
		transportErr := errors.New("connection refused")

		go func() {
			for spy.callCount() == 0 {
				time.Sleep(time.Millisecond)
			}
			spy.CompleteWithResponse(0, RawResponse{Err: transportErr})
		}()

		root, err := sut.FetchNews(context.Background())
		assert.ErrorIs(t, err, transportErr)
		assert.Equal(t, entity.NewsRoot{}, root)
	})

	t.Run("returns context error when nothing decisive arrives", func(t *testing.T) {
		sut, _, _ := makeSUT(t)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := sut.FetchNews(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("returns ErrServiceClosed on close", func(t *testing.T) {
		sut, spy, _ := makeSUT(t)

		go func() {
			for spy.callCount() == 0 {
				time.Sleep(time.Millisecond)
			}
			sut.Close()
		}()

		_, err := sut.FetchNews(context.Background())
		assert.ErrorIs(t, err, ErrServiceClosed)
	})
}

func TestService_RequestNews_ConcurrentCallersGetOwnOutcome(t *testing.T) {
	sut, spy, _ := makeSUT(t)

	var mu sync.Mutex
	got := map[string][]Result{}
	record := func(caller string) func(Result) {
		return func(r Result) {
			mu.Lock()
			defer mu.Unlock()
			got[caller] = append(got[caller], r)
		}
	}

	var wg sync.WaitGroup
	for _, caller := range []string{"caller-a", "caller-b"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sut.RequestNews(requestid.WithRequestID(context.Background(), caller), record(caller))
		}()
	}
	wg.Wait()
	require.Equal(t, 2, spy.callCount(), "each caller issues its own GET")

	index := map[string]int{}
	for i, req := range spy.requests {
		index[requestid.FromContext(req.Context())] = i
	}
	require.Len(t, index, 2)

	transportErr := errors.New("connection reset")
	spy.CompleteWithResponse(index["caller-b"], RawResponse{Err: transportErr})
	spy.CompleteWithResponse(index["caller-a"], successResponse())

	require.Len(t, got["caller-a"], 1)
	require.Len(t, got["caller-b"], 1)
	assert.Equal(t, OutcomeSuccess, got["caller-a"][0].Kind())
	assert.True(t, fixtures.ExpectedNewsRoot().Equal(got["caller-a"][0].Value()))
	assert.Equal(t, OutcomeFailure, got["caller-b"][0].Kind())
	assert.ErrorIs(t, got["caller-b"][0].Err(), transportErr)
}

func TestService_RequestNews_PassesRequestLoggerToTransport(t *testing.T) {
	sut, spy, _ := makeSUT(t)
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	sut.RequestNews(context.Background(), func(Result) {})

	require.Equal(t, 1, spy.callCount())
	assert.NotSame(t, fallback, logging.FromContext(spy.requests[0].Context(), fallback))
}
