package playcricket

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	maxPageBytes        = 8 << 20
	defaultUserAgent    = "fantasy-cricket/1.0"
	defaultRetryBackoff = time.Second
)

var (
	errPlayCricketTransient = crerr.New("playcricket transient failure")
	errPageTooLarge         = crerr.New("playcricket page too large")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	Timeout        time.Duration
	MaxRetries     int
	UserAgent      string
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client downloads match scorecard pages and splits them into tables.
type Client struct {
	httpClient   *http.Client
	maxRetries   int
	userAgent    string
	retryBackoff time.Duration
	logger       *logging.Logger
	guard        *resilience.Guard
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	logger = logger.Named("playcricket")
	breaker := cfg.CircuitBreaker
	if breaker.OnStateChange == nil {
		breaker.OnStateChange = func(from, to resilience.CircuitState) {
			logger.Warn("playcricket circuit breaker state changed", "from", from, "to", to)
		}
	}

	return &Client{
		httpClient:   httpClient,
		maxRetries:   max(cfg.MaxRetries, 0),
		userAgent:    userAgent,
		retryBackoff: backoff,
		logger:       logger,
		guard:        resilience.NewGuard(breaker),
	}
}

// FetchTables downloads pageURL and returns its tables in document order.
func (c *Client) FetchTables(ctx context.Context, pageURL string) (scorecard.RawTableSet, error) {
	pageURL = strings.TrimSpace(pageURL)
	parsed, err := url.Parse(pageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: scorecard url %q must be an absolute http(s) url", usecase.ErrInvalidInput, pageURL)
	}

	var tables scorecard.RawTableSet
	err = c.guard.Run(func() error {
		var runErr error
		tables, runErr = c.executeRequest(ctx, pageURL)
		return runErr
	}, isCircuitFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "playcricket circuit breaker rejected request", "state", c.guard.State())
		return nil, fmt.Errorf("%w: scorecard site is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (c *Client) executeRequest(ctx context.Context, pageURL string) (scorecard.RawTableSet, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		tables, err := c.fetchOnce(ctx, pageURL)
		if err == nil {
			return tables, nil
		}
		lastErr = err
		if !stderrors.Is(err, errPlayCricketTransient) {
			return nil, err
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "playcricket request failed", "url", pageURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, pageURL string) (scorecard.RawTableSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "text/html")
	req.Header.Set("user-agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, crerr.Wrapf(errPlayCricketTransient, "send request: %v", err)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxPageBytes+1)); err != nil {
		return nil, crerr.Wrapf(errPlayCricketTransient, "read response body: %v", err)
	}
	if buf.Len() > maxPageBytes {
		return nil, crerr.Wrapf(errPageTooLarge, "%s exceeds %d bytes", pageURL, maxPageBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isRetryableStatus(resp.StatusCode) {
			return nil, crerr.Wrapf(errPlayCricketTransient, "status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
		}
		return nil, crerr.Newf("playcricket status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
	}

	tables, err := ParseTables(bytes.NewReader(buf.B))
	if err != nil {
		return nil, crerr.Wrap(err, "parse scorecard page")
	}
	return tables, nil
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errPlayCricketTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
