package playcricket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func newTestClient(maxRetries int, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		Timeout:        2 * time.Second,
		MaxRetries:     maxRetries,
		RetryBackoff:   time.Millisecond,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClient_FetchTables_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("user-agent") != defaultUserAgent {
			t.Errorf("unexpected user agent: %q", r.Header.Get("user-agent"))
		}
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(scorecardHTML))
	}))
	defer server.Close()

	tables, err := newTestClient(2, resilience.CircuitBreakerConfig{}).FetchTables(context.Background(), server.URL+"/match/1")
	if err != nil {
		t.Fatalf("fetch tables: %v", err)
	}
	if len(tables) != 5 {
		t.Fatalf("unexpected table count: %d", len(tables))
	}
	if calls.Load() != 2 {
		t.Fatalf("expected one retry, got %d calls", calls.Load())
	}
}

func TestClient_FetchTables_DoesNotRetryNotFound(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "no such match", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(3, resilience.CircuitBreakerConfig{}).FetchTables(context.Background(), server.URL)
	if err == nil {
		t.Fatalf("expected error for 404")
	}
	if errors.Is(err, errPlayCricketTransient) {
		t.Fatalf("404 must not be transient: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single call, got %d", calls.Load())
	}
}

func TestClient_FetchTables_CircuitOpens(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		if _, err := client.FetchTables(context.Background(), server.URL); !errors.Is(err, errPlayCricketTransient) {
			t.Fatalf("expected transient error, got %v", err)
		}
	}

	_, err := client.FetchTables(context.Background(), server.URL)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open circuit to map to ErrDependencyUnavailable, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("open circuit must not reach the server, got %d calls", calls.Load())
	}
}

func TestClient_FetchTables_RejectsRelativeURL(t *testing.T) {
	t.Parallel()

	_, err := newTestClient(0, resilience.CircuitBreakerConfig{}).FetchTables(context.Background(), "/match/1")
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClient_FetchTables_RejectsOversizedPage(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("<html><body><table><tr><td>1</td></tr></table>"))
		_, _ = w.Write([]byte(strings.Repeat(" ", maxPageBytes)))
	}))
	defer server.Close()

	_, err := newTestClient(2, resilience.CircuitBreakerConfig{}).FetchTables(context.Background(), server.URL+"/match/big")
	if !errors.Is(err, errPageTooLarge) {
		t.Fatalf("expected errPageTooLarge, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("oversized page must not be retried, got %d calls", calls.Load())
	}
}

func TestNewClient_TracesDefaultTransport(t *testing.T) {
	t.Parallel()

	client := newTestClient(0, resilience.CircuitBreakerConfig{})
	if _, ok := client.httpClient.Transport.(*otelhttp.Transport); !ok {
		t.Fatalf("expected otelhttp transport, got %T", client.httpClient.Transport)
	}

	custom := &http.Client{}
	if got := NewClient(ClientConfig{HTTPClient: custom, Logger: logging.NewNop()}); got.httpClient != custom {
		t.Fatalf("expected injected http client to be kept")
	}
}
