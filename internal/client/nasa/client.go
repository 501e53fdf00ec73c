// Package nasa talks to the NASA SVS dial-a-moon service: the hourly
// moon-info tables and the pre-rendered hi-res moon frames they index.
package nasa

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/lunaclock/luna/internal/xhttp"
)

const defaultBaseURL = "https://svs.gsfc.nasa.gov"

type Client struct {
	MoonInfo MoonInfoService
	Images   ImageService

	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

type clientConfig struct {
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *slog.Logger
}

type Option func(*clientConfig)

func WithBaseURL(baseURL string) Option {
	return func(cfg *clientConfig) { cfg.baseURL = baseURL }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

// WithLimiter overrides the default request limiter. The SVS servers
// are a shared public resource; bulk fetches should stay polite.
func WithLimiter(l *rate.Limiter) Option {
	return func(cfg *clientConfig) { cfg.limiter = l }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func New(opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: 60 * time.Second,
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Client{
		baseURL:    cfg.baseURL,
		httpClient: &http.Client{Transport: xhttp.NewTransport(), Timeout: cfg.timeout},
		limiter:    cfg.limiter,
		logger:     cfg.logger,
	}

	c.MoonInfo = &moonInfoService{client: c}
	c.Images = &imageService{client: c}

	return c
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer func() { _ = resp.Body.Close() }()
		return nil, parseAPIError(resp)
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, result any) error {
	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := go_json.NewDecoder(bytes.NewReader(body)).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
