// internal/printer/client.go
package printer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Some firmware refuses requests from unknown clients, so the fetch
// identifies itself as a desktop browser.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/70.0.3538.77 Safari/537.36"

// DefaultTimeout bounds the single status-document request when no timeout
// is configured.
const DefaultTimeout = 30 * time.Second

// Client fetches and extracts telemetry from one configured printer
// endpoint. Each call issues a single GET with no retries; a failed request
// surfaces as a *NetworkError so the caller can distinguish connectivity
// problems from device-compatibility ones.
type Client struct {
	url        string
	httpClient *http.Client
}

// ClientConfig holds configuration for a printer client.
type ClientConfig struct {
	// URL is the full status-document URL (see NormalizeEndpoint).
	URL string

	// Timeout bounds the HTTP request (default: 30s).
	Timeout time.Duration
}

// NewClient creates a client for the given endpoint.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// URL returns the endpoint this client queries.
func (c *Client) URL() string { return c.url }

// FetchReading performs the GET and feeds the response body into the
// extraction engine. Errors are either *NetworkError or *ParseError.
func (c *Client) FetchReading(ctx context.Context) (*Reading, error) {
	doc, err := c.fetchDocument(ctx)
	if err != nil {
		return nil, err
	}
	return ExtractReading(doc)
}

// fetchDocument retrieves the raw status document. The body is treated as
// UTF-8-ish text regardless of the declared encoding.
func (c *Client) fetchDocument(ctx context.Context) (string, error) {
	slog.Debug("fetching status document", "url", c.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", &NetworkError{URL: c.url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &NetworkError{URL: c.url, Err: fmt.Errorf("printer returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{URL: c.url, Err: err}
	}

	slog.Debug("received status document", "bytes", len(body))
	return string(body), nil
}
