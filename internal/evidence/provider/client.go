package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/obelus-labs/veritas-core/internal/fetcher"
	"github.com/obelus-labs/veritas-core/internal/resilience"
)

// client wraps a fetcher.HTTPFetcher with a per-provider throttle cell and
// a circuit breaker, tailored to JSON/XML API calls with query parameters
// and custom headers. Every provider enforces a minimum inter-request
// interval per provider.
type client struct {
	http      *fetcher.HTTPFetcher
	breaker   *resilience.CircuitBreaker
	log       *zap.Logger
	userAgent string
}

// newClient builds a client throttled to one request every minInterval
// (spec.md §4.3 default 1s, 3s for academic/filing providers), delegating
// transport, retry, and backoff to fetcher.HTTPFetcher.
func newClient(minInterval time.Duration, userAgent string, log *zap.Logger) *client {
	if log == nil {
		log = zap.NewNop()
	}
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:      userAgent,
		Timeout:        20 * time.Second,
		MaxRetries:     3,
		DefaultLimiter: rate.NewLimiter(rate.Every(minInterval), 1),
	})
	return &client{
		http:      f,
		breaker:   resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig()),
		log:       log,
		userAgent: userAgent,
	}
}

// getJSON throttles, issues a GET with the given query params, and decodes
// the JSON body into out. Every failure is returned as an error — callers
// at the Provider.Search boundary are responsible for swallowing it.
func (c *client) getJSON(ctx context.Context, rawURL string, params url.Values, headers map[string]string, out any) error {
	body, err := c.getBody(ctx, rawURL, params, headers)
	if err != nil {
		return err
	}
	defer body.Close() //nolint:errcheck
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return eris.Wrap(err, "provider: decode json")
	}
	return nil
}

// getText throttles, issues a GET, and returns the raw body as a string.
func (c *client) getText(ctx context.Context, rawURL string, params url.Values, headers map[string]string) (string, error) {
	body, err := c.getBody(ctx, rawURL, params, headers)
	if err != nil {
		return "", err
	}
	defer body.Close() //nolint:errcheck
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", eris.Wrap(err, "provider: read body")
	}
	return string(raw), nil
}

// postJSON throttles, POSTs the given JSON payload, and returns the raw
// response body.
func (c *client) postJSON(ctx context.Context, rawURL string, payload []byte) ([]byte, error) {
	return resilience.ExecuteVal(ctx, c.breaker, func(ctx context.Context) ([]byte, error) {
		raw, err := c.http.PostJSON(ctx, rawURL, payload, nil)
		if err != nil {
			c.log.Debug("provider post failed", zap.String("url", rawURL), zap.Error(err))
			return nil, err
		}
		return raw, nil
	})
}

func (c *client) getBody(ctx context.Context, rawURL string, params url.Values, headers map[string]string) (io.ReadCloser, error) {
	return resilience.ExecuteVal(ctx, c.breaker, func(ctx context.Context) (io.ReadCloser, error) {
		body, err := c.http.Get(ctx, rawURL, params, headers)
		if err != nil {
			c.log.Debug("provider get failed", zap.String("url", rawURL), zap.Error(err))
			return nil, err
		}
		return body, nil
	})
}
