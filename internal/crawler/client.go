package crawler

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage = "zh-CN,zh;q=0.9,en;q=0.8"
	defaultAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// sleep is swappable in tests.
var sleep = time.Sleep

// ClientConfig bounds the client's retry and pacing behavior.
type ClientConfig struct {
	MaxRetries     int           `mapstructure:"max-retries"`
	BackoffMin     time.Duration `mapstructure:"backoff-min"`
	BackoffMax     time.Duration `mapstructure:"backoff-max"`
	RequestsPerSec float64       `mapstructure:"requests-per-sec"`
	UserAgents     []string      `mapstructure:"user-agents"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// Client fetches pages with per-host rate limiting, rotating User-Agent
// headers and bounded retries with randomized backoff. It is the only
// blocking actor in the system; everything downstream consumes in-memory
// batches.
type Client struct {
	HTTPClient *http.Client

	cfg     ClientConfig
	limiter *hostLimiter
	rng     *rand.Rand
	logger  *zap.Logger
}

func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BackoffMin <= 0 {
		cfg.BackoffMin = 2 * time.Second
	}
	if cfg.BackoffMax < cfg.BackoffMin {
		cfg.BackoffMax = cfg.BackoffMin + 3*time.Second
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 0.5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if len(cfg.UserAgents) == 0 {
		cfg.UserAgents = []string{defaultAgent}
	}

	return &Client{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		limiter:    newHostLimiter(cfg.RequestsPerSec, 1),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:     logger,
	}
}

// Get fetches rawURL with the query applied, retrying up to MaxRetries times
// with a randomized delay between attempts.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values, extra http.Header) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff()
			c.logger.Info("retrying request",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)
			if err := waitFor(ctx, delay); err != nil {
				return nil, err
			}
		}

		if err := c.limiter.waitURL(ctx, rawURL); err != nil {
			return nil, err
		}

		body, err := c.fetch(ctx, rawURL, query, extra)
		if err == nil {
			return body, nil
		}

		lastErr = err
		c.logger.Warn("request failed",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", c.cfg.MaxRetries),
			zap.Error(err),
		)
	}

	return nil, fmt.Errorf("all %d attempts failed for %s: %w", c.cfg.MaxRetries, rawURL, lastErr)
}

func (c *Client) fetch(ctx context.Context, rawURL string, query url.Values, extra http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Accept-Encoding", "gzip")
	for key, values := range extra {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}

	return io.ReadAll(body)
}

// GetJSON fetches and decodes a JSON payload.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, extra http.Header, v any) error {
	body, err := c.Get(ctx, rawURL, query, extra)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing JSON from %s: %w", rawURL, err)
	}
	return nil
}

// GetDocument fetches a page and parses it for selector queries.
func (c *Client) GetDocument(ctx context.Context, rawURL string, query url.Values) (*goquery.Document, error) {
	body, err := c.Get(ctx, rawURL, query, nil)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

func (c *Client) userAgent() string {
	return c.cfg.UserAgents[c.rng.Intn(len(c.cfg.UserAgents))]
}

func (c *Client) backoff() time.Duration {
	span := c.cfg.BackoffMax - c.cfg.BackoffMin
	if span <= 0 {
		return c.cfg.BackoffMin
	}
	return c.cfg.BackoffMin + time.Duration(c.rng.Int63n(int64(span)))
}

// waitFor sleeps for d but returns early when the context is canceled.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
