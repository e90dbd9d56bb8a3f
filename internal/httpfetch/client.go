package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/raysh454/kumo/internal/interfaces"
	"github.com/raysh454/kumo/internal/logging"
	"github.com/raysh454/kumo/internal/model"
)

// Client performs single-attempt GET requests. It carries no per-call state,
// so one Client may be shared across goroutines.
type Client struct {
	cfg    Config
	logger interfaces.Logger
}

// NewClient creates a Client with the given defaults. A nil logger disables
// logging.
func NewClient(cfg Config, logger interfaces.Logger) *Client {
	defaults := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		cfg:    cfg,
		logger: logger.With(interfaces.Field{Key: "component", Value: "httpfetch"}),
	}
}

// Fetch performs exactly one blocking GET of rawURL and returns the
// normalized result. HTTP error statuses are results, not errors; transport
// failures are returned to the caller unchanged apart from %w wrapping. A
// timeout while a proxy is configured is logged once, with credentials
// stripped from the proxy address, before the error is returned.
func (c *Client) Fetch(ctx context.Context, rawURL string, cfg RequestConfig) (*model.FetchResult, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}

	client, err := c.newHTTPClient(rawURL, cfg.Proxy, timeout)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.cfg.UserAgent)
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	requestID := uuid.NewString()[:8]
	c.logger.Debug("sending http request",
		interfaces.Field{Key: "request_id", Value: requestID},
		interfaces.Field{Key: "url", Value: rawURL},
		interfaces.Field{Key: "proxy", Value: model.RedactProxy(cfg.Proxy)})

	resp, err := client.Do(req)
	if err != nil {
		if cfg.Proxy != "" && isTimeout(err) {
			c.logger.Warn("timeout fetching through proxy",
				interfaces.Field{Key: "request_id", Value: requestID},
				interfaces.Field{Key: "url", Value: rawURL},
				interfaces.Field{Key: "proxy", Value: model.RedactProxy(cfg.Proxy)})
		}
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	cookies := make(map[string]string, len(resp.Cookies()))
	for _, ck := range resp.Cookies() {
		cookies[ck.Name] = ck.Value
	}

	return &model.FetchResult{
		Content:    string(body),
		StatusCode: resp.StatusCode,
		URL:        resp.Request.URL.String(),
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		Reason:     http.StatusText(resp.StatusCode),
		Cookies:    cookies,
	}, nil
}

// newHTTPClient builds the per-call client. With a proxy configured the
// standard-TLS proxy transport is used; direct https targets get the
// impersonating transport; plain http gets a direct transport.
func (c *Client) newHTTPClient(rawURL, proxy string, timeout time.Duration) (*http.Client, error) {
	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %s: %w", model.RedactProxy(proxy), err)
		}
		return &http.Client{Timeout: timeout, Transport: newProxyTransport(proxyURL, timeout)}, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if parsed.Scheme == "https" {
		return &http.Client{Timeout: timeout, Transport: newImpersonatingTransport(timeout)}, nil
	}
	return &http.Client{Timeout: timeout, Transport: newPlainTransport(timeout)}, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
