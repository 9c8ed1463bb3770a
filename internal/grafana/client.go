package grafana

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/grafops/grafimport/internal/log"
)

const DefaultTimeout = 30 * time.Second

// Config carries the connection settings shared by every fetch.
type Config struct {
	// BaseURL is the root of the Grafana instance, e.g. https://grafana.example.com
	BaseURL string
	// Token is a service account bearer token, passed through verbatim.
	Token string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client performs single, unpaginated GETs against the Grafana HTTP API.
// It does not retry and does not follow auth flows; a non-2xx status or an
// unreachable host is surfaced as an error for the caller to isolate.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultClient()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	httpClient.Timeout = timeout

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL: base,
		token:   cfg.Token,
		http:    httpClient,
		logger:  logger,
	}, nil
}

// ListFolders returns the folders with a usable UID plus the count of
// records dropped for lacking one.
func (c *Client) ListFolders(ctx context.Context) ([]Folder, int, error) {
	raw, err := c.get(ctx, "/api/folders")
	if err != nil {
		return nil, 0, err
	}
	return decodeFolders(raw)
}

func (c *Client) ListDataSources(ctx context.Context) ([]DataSource, int, error) {
	raw, err := c.get(ctx, "/api/datasources")
	if err != nil {
		return nil, 0, err
	}
	return decodeDataSources(raw)
}

func (c *Client) SearchDashboards(ctx context.Context) ([]DashboardHit, int, error) {
	raw, err := c.get(ctx, "/api/search?type=dash-db")
	if err != nil {
		return nil, 0, err
	}
	return decodeDashboardHits(raw)
}

// GetDashboard fetches the full dashboard body for one search hit.
func (c *Client) GetDashboard(ctx context.Context, uid string) (json.RawMessage, error) {
	raw, err := c.get(ctx, "/api/dashboards/uid/"+url.PathEscape(uid))
	if err != nil {
		return nil, err
	}
	return decodeDashboard(raw)
}

func (c *Client) ListContactPoints(ctx context.Context) ([]ContactPoint, int, error) {
	raw, err := c.get(ctx, "/api/v1/provisioning/contact-points")
	if err != nil {
		return nil, 0, err
	}
	return decodeContactPoints(raw)
}

func (c *Client) ListAlertRules(ctx context.Context) ([]AlertRule, int, error) {
	raw, err := c.get(ctx, "/api/v1/provisioning/alert-rules")
	if err != nil {
		return nil, 0, err
	}
	return decodeAlertRules(raw)
}

// get performs exactly one HTTP GET and returns the raw body on any 2xx.
// Non-2xx responses are decoded into an APIError, keeping the server's own
// message when the body carries one.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.LogAttrs(ctx, log.LevelTrace, "HTTP request failed",
			slog.String("method", http.MethodGet),
			slog.String("url", reqURL),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return nil, &ConnectivityError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectivityError{URL: reqURL, Err: err}
	}

	c.logger.LogAttrs(ctx, log.LevelTrace, "HTTP response",
		slog.String("method", http.MethodGet),
		slog.String("url", reqURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.Int("content_length", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil {
			apiErr.Message = envelope.Message
		}
		return nil, apiErr
	}

	return body, nil
}
