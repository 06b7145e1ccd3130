package api

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/rickgao/kalshi-bot/internal/auth"
)

// Default per-second request ceilings (Kalshi Basic tier).
const (
	DefaultReadRatePerSec  = 10.0
	DefaultWriteRatePerSec = 5.0
)

// Client provides access to the Kalshi REST API. Requests are signed with
// the configured credentials and throttled by per-class token buckets.
type Client struct {
	baseURL    string
	creds      *auth.Credentials
	httpClient *http.Client
	logger     *slog.Logger

	// Token buckets, one per request class. Reads and writes have
	// separate exchange-imposed ceilings.
	readLimiter  *rate.Limiter
	writeLimiter *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client. Credentials may be nil for
// unauthenticated market-data access.
func NewClient(baseURL string, creds *auth.Credentials, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		readLimiter:  newBucket(DefaultReadRatePerSec),
		writeLimiter: newBucket(DefaultWriteRatePerSec),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// newBucket builds a token bucket that refills continuously at perSec and
// caps at perSec, allowing short bursts up to capacity while keeping the
// long-run rate at or below the ceiling.
func newBucket(perSec float64) *rate.Limiter {
	burst := int(math.Ceil(perSec))
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSec), burst)
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimits sets the per-second ceilings for read and write requests.
func WithRateLimits(readPerSec, writePerSec float64) ClientOption {
	return func(c *Client) {
		c.readLimiter = newBucket(readPerSec)
		c.writeLimiter = newBucket(writePerSec)
	}
}
