// Package client provides the HTTP transport for the place-search service
// with request rate limiting, shared quota tracking, and error
// classification.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/places-client/pkg/logging"
	"github.com/Sternrassler/places-client/pkg/ratelimit"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// Prometheus metrics for client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "places_requests_total",
		Help: "Total requests by endpoint and HTTP status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "places_request_duration_seconds",
		Help:    "Request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "places_errors_total",
		Help: "Total transport and decode errors by class",
	}, []string{"class"})

	upstreamStatusTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "places_upstream_status_total",
		Help: "Total responses by endpoint and upstream status field",
	}, []string{"endpoint", "status"})
)

const (
	// DefaultBaseURL is the root of the place-search endpoints.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default request rate (requests per second).
	DefaultRateLimit = 10

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "places-client/1.0"
)

// Client is the transport shared by every query. It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	quota   *ratelimit.Tracker
	config  Config
	logger  zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// APIKey is sent as the key parameter on every request (REQUIRED).
	APIKey string

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// Redis enables the shared quota tracker. Optional.
	Redis *redis.Client

	// QuotaCooldown is how long requests are refused after OVER_QUERY_LIMIT.
	// Zero uses ratelimit.DefaultCooldown.
	QuotaCooldown time.Duration

	// UserAgent header.
	UserAgent string

	// RateLimit in requests per second. Zero disables client-side limiting.
	RateLimit int

	// Timeout for a single HTTP request.
	Timeout time.Duration

	// Logger replaces the default component logger. Optional.
	Logger *zerolog.Logger
}

// Response is a raw successful response.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:    apiKey,
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
		RateLimit: DefaultRateLimit,
		Timeout:   DefaultTimeout,
	}
}

// New creates a new client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("rate_limit must be >= 0 (got %d)", cfg.RateLimit)
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be >= 0 (got %s)", cfg.Timeout)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	logger := logging.NewLogger("places-client")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}

	var quota *ratelimit.Tracker
	if cfg.Redis != nil {
		quota = ratelimit.NewTrackerWithCooldown(cfg.Redis, logger, cfg.QuotaCooldown)
	}

	return &Client{
		http:    httpClient,
		limiter: limiter,
		quota:   quota,
		config:  cfg,
		logger:  logger,
	}, nil
}

// Get performs a GET request to endpoint (relative to the base URL, e.g.
// "textsearch/json"). The API key is added to query. Non-2xx responses are
// returned as *TransportError.
func (c *Client) Get(ctx context.Context, endpoint string, query Query) (*Response, error) {
	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Check the shared quota
	if c.quota != nil {
		allowed, err := c.quota.ShouldAllowRequest(ctx)
		if err != nil {
			// The service enforces its own quota; an unavailable store only
			// loses the early refusal.
			c.logger.Error().Err(err).Msg("Quota check failed")
		} else if !allowed {
			requestsTotal.WithLabelValues(endpoint, "quota_blocked").Inc()
			errorsTotal.WithLabelValues(string(ErrorClassQuota)).Inc()
			return nil, &TransportError{
				Endpoint:   endpoint,
				ErrorClass: ErrorClassQuota,
				Message:    "request refused",
				Err:        ErrQuotaCooldown,
			}
		}
	}

	// Step 2: Wait for the rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &TransportError{
			Endpoint:   endpoint,
			ErrorClass: ErrorClassNetwork,
			Message:    "wait for rate limiter",
			Err:        err,
		}
	}

	// Step 3: Build the query string in parameter order, key last
	rawQuery := query.With("key", c.config.APIKey).Encode()

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("params", len(query)).
		Msg("Executing request")

	// Step 4: Execute. A query string already in the URL is sent as-is.
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/" + strings.TrimLeft(endpoint, "/") + "?" + rawQuery)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return nil, &TransportError{
			Endpoint:   endpoint,
			ErrorClass: ErrorClassNetwork,
			Message:    "request failed",
			Err:        err,
		}
	}

	statusCode := resp.StatusCode()
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()

	// Step 5: Classify HTTP errors
	if statusCode < 200 || statusCode >= 300 {
		errClass := classifyStatus(statusCode)
		errorsTotal.WithLabelValues(string(errClass)).Inc()

		event := c.logger.Error()
		if errClass == ErrorClassQuota {
			event = c.logger.Warn()
		}
		event.
			Str("endpoint", endpoint).
			Int("status_code", statusCode).
			Str("error_class", string(errClass)).
			Msg("Request error")

		return nil, &TransportError{
			Endpoint:   endpoint,
			StatusCode: statusCode,
			ErrorClass: errClass,
			Message:    resp.Status(),
		}
	}

	return &Response{
		StatusCode:  statusCode,
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}, nil
}

// GetJSON performs Get and decodes the body into out. A body that does not
// decode is returned as *DecodeError. The status field of the body, if any,
// is recorded with the quota tracker.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query Query, out any) error {
	resp, err := c.Get(ctx, endpoint, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		errorsTotal.WithLabelValues("decode").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Response decode failed")
		return &DecodeError{Endpoint: endpoint, Body: resp.Body, Err: err}
	}

	c.recordStatus(ctx, endpoint, gjson.GetBytes(resp.Body, "status").String())
	return nil
}

func (c *Client) recordStatus(ctx context.Context, endpoint, status string) {
	if status == "" {
		return
	}
	upstreamStatusTotal.WithLabelValues(endpoint, status).Inc()

	if c.quota == nil {
		return
	}
	if err := c.quota.RecordStatus(ctx, status); err != nil {
		c.logger.Error().Err(err).Str("status", status).Msg("Failed to record quota state")
	}
}

// Quota returns the quota tracker, or nil when Redis is not configured.
func (c *Client) Quota() *ratelimit.Tracker {
	return c.quota
}

// HTTPClient returns the underlying *http.Client (for testing).
func (c *Client) HTTPClient() *http.Client {
	return c.http.GetClient()
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}
