package faceit

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/faceit-stats/internal/platform/logging"
	"github.com/riskibarqy/faceit-stats/internal/platform/resilience"
	"github.com/riskibarqy/faceit-stats/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	DefaultBaseURL     = "https://open.faceit.com/data/v4"
	defaultTimeout     = 8 * time.Second
	maxResponseBytes   = 6 << 20
	maxErrorBodyLength = 240
)

var (
	ErrQuotaExceeded = crerr.New("faceit quota exceeded")
	ErrTimeout       = crerr.New("faceit request timeout")
	ErrTransient     = crerr.New("faceit transient failure")
)

var quotaPhrases = []string{"rate limit", "too many requests", "limit exceeded", "unauthorized"}

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Keys           *resilience.KeyRing
	Timeout        time.Duration
	RetriesPerKey  int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client performs authenticated GETs against the FACEIT Data API, rotating
// keys on quota errors and retrying transient failures.
type Client struct {
	httpClient    *fasthttp.Client
	baseURL       string
	keys          *resilience.KeyRing
	timeout       time.Duration
	retriesPerKey int
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
	flight        resilience.Group[Payload]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "faceit-stats",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: time.Minute,
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	keys := cfg.Keys
	if keys == nil {
		keys = resilience.NewKeyRing(nil, resilience.DefaultKeyRingConfig())
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		keys:          keys,
		timeout:       timeout,
		retriesPerKey: max(cfg.RetriesPerKey, 1),
		logger:        logger.Named("faceit"),
		breaker:       resilience.NewCircuitBreakerFromConfig(resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)),
	}
}

func (c *Client) KeyHealth() []resilience.KeyHealth {
	return c.keys.Snapshot()
}

func (c *Client) CircuitStats() resilience.CircuitStats {
	return c.breaker.Stats()
}

// Fetch GETs path with query and returns the decoded JSON object.
//
// Every attempt takes a key from the ring. Quota rejections penalize that key
// and move on; timeouts, network errors, 5xx and malformed bodies are retried
// without touching key health. A 404 ends the loop with usecase.ErrNotFound.
// When all keys × retries attempts fail the last error is returned wrapped in
// usecase.ErrUpstreamExhausted.
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) (Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, crerr.Wrap(err, "faceit request aborted")
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "faceit circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: faceit api is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// The shared call is detached from any single caller; each caller stops
	// waiting on its own context.
	done := make(chan fetchResult, 1)
	go func() {
		payload, err, _ := c.flight.Do(fullURL, func() (Payload, error) {
			return c.sharedFetch(ctx, fullURL)
		})
		done <- fetchResult{payload: payload, err: err}
	}()

	select {
	case res := <-done:
		return res.payload, res.err
	case <-ctx.Done():
		return nil, crerr.Wrap(ctx.Err(), "faceit request aborted")
	}
}

type fetchResult struct {
	payload Payload
	err     error
}

// sharedFetch runs the attempt loop under its own budget (one timeout per
// attempt plus one spare), keeping the caller's values but not its
// cancellation.
func (c *Client) sharedFetch(ctx context.Context, fullURL string) (Payload, error) {
	budget := time.Duration(max(c.keys.Len()*c.retriesPerKey, 1)+1) * c.timeout
	sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), budget)
	defer cancel()

	out, err := c.fetchWithRotation(sharedCtx, fullURL)
	switch {
	case err == nil, stderrors.Is(err, usecase.ErrNotFound):
		c.breaker.RecordSuccess()
	case stderrors.Is(err, usecase.ErrUpstreamExhausted):
		c.breaker.RecordFailure()
	}
	return out, err
}

func (c *Client) fetchWithRotation(ctx context.Context, fullURL string) (Payload, error) {
	maxAttempts := max(c.keys.Len()*c.retriesPerKey, 1)

	var (
		lastErr error
		lastKey string
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, crerr.Wrap(err, "faceit request aborted")
		}

		key := c.keys.Select()
		lastKey = key

		payload, err := c.do(ctx, fullURL, key)
		if err == nil {
			c.keys.ReportSuccess(key)
			return payload, nil
		}
		if stderrors.Is(err, usecase.ErrNotFound) {
			return nil, err
		}

		lastErr = err
		if stderrors.Is(err, ErrQuotaExceeded) {
			c.keys.ReportFailure(key)
			c.logger.WarnContext(ctx, "faceit key rejected",
				"key", resilience.MaskKey(key),
				"attempt", attempt,
				"max_attempts", maxAttempts,
				"error", err,
			)
			continue
		}
		c.logger.DebugContext(ctx, "faceit attempt failed",
			"key", resilience.MaskKey(key),
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"error", err,
		)
	}

	c.logger.WarnContext(ctx, "faceit request failed",
		"attempts", maxAttempts,
		"curl_preview", buildCurlPreview(fullURL, lastKey),
		"error", lastErr,
	)
	return nil, fmt.Errorf("%w: %d attempts: %w", usecase.ErrUpstreamExhausted, maxAttempts, lastErr)
}

// do performs a single attempt under min(now+timeout, ctx deadline).
func (c *Client) do(ctx context.Context, fullURL, key string) (Payload, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, c.classifyTransportError(err, key)
	}

	status := resp.StatusCode()
	body := resp.Body()
	switch {
	case status >= 200 && status < 300:
		var payload Payload
		if err := sonic.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: decode body: %s", ErrTransient, sanitizeKey(err.Error(), key))
		}
		if payload == nil {
			payload = Payload{}
		}
		return payload, nil
	case status == fasthttp.StatusNotFound:
		return nil, fmt.Errorf("%w: faceit status=%d body=%s", usecase.ErrNotFound, status, abbreviateBody(body, key))
	case isQuotaSignal(status, string(body)):
		return nil, fmt.Errorf("%w: faceit status=%d body=%s", ErrQuotaExceeded, status, abbreviateBody(body, key))
	default:
		return nil, fmt.Errorf("%w: faceit status=%d body=%s", ErrTransient, status, abbreviateBody(body, key))
	}
}

func (c *Client) classifyTransportError(err error, key string) error {
	if stderrors.Is(err, fasthttp.ErrTimeout) || stderrors.Is(err, fasthttp.ErrDialTimeout) {
		return fmt.Errorf("%w: request timeout after %d ms", ErrTimeout, c.timeout.Milliseconds())
	}
	text := sanitizeKey(err.Error(), key)
	if isQuotaSignal(0, text) {
		return fmt.Errorf("%w: send request: %s", ErrQuotaExceeded, text)
	}
	return fmt.Errorf("%w: send request: %s", ErrTransient, text)
}

func isQuotaSignal(status int, text string) bool {
	switch status {
	case fasthttp.StatusTooManyRequests, fasthttp.StatusForbidden, fasthttp.StatusUnauthorized:
		return true
	}
	lower := strings.ToLower(text)
	for _, phrase := range quotaPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func sanitizeKey(value, key string) string {
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return value
	}
	return strings.ReplaceAll(value, key, resilience.MaskKey(key))
}

func abbreviateBody(body []byte, key string) string {
	text := sanitizeKey(string(body), key)
	if len(text) <= maxErrorBodyLength {
		return text
	}
	cut := maxErrorBodyLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

func buildCurlPreview(fullURL, key string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -sS -X GET ")
	_, _ = buf.WriteString(shellQuote(fullURL))
	_, _ = buf.WriteString(" -H ")
	_, _ = buf.WriteString(shellQuote("Authorization: Bearer " + resilience.MaskKey(key)))
	_, _ = buf.WriteString(" -H 'Accept: application/json'")
	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}
