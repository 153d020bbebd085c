package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := DefaultConfig("test-key")
	cfg.BaseURL = baseURL
	cfg.RateLimit = 0

	c, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			config:      DefaultConfig("key"),
			expectError: false,
		},
		{
			name:        "zero values get defaults",
			config:      Config{APIKey: "key"},
			expectError: false,
		},
		{
			name:        "missing api key",
			config:      DefaultConfig(""),
			expectError: true,
			errorMsg:    "api key is required",
		},
		{
			name: "negative rate limit",
			config: Config{
				APIKey:    "key",
				RateLimit: -1,
			},
			expectError: true,
			errorMsg:    "rate_limit must be >= 0 (got -1)",
		},
		{
			name: "negative timeout",
			config: Config{
				APIKey:  "key",
				Timeout: -time.Second,
			},
			expectError: true,
			errorMsg:    "timeout must be >= 0 (got -1s)",
		},
		{
			name: "relative base url",
			config: Config{
				APIKey:  "key",
				BaseURL: "maps/api/place",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got nil")
					return
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Errorf("Error message = %q, want %q", err.Error(), tt.errorMsg)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
					return
				}
				if client == nil {
					t.Error("Client is nil")
				}
				if client.Quota() != nil {
					t.Error("Quota tracker should be nil without Redis")
				}
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("key")

	if cfg.APIKey != "key" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "key")
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.RateLimit <= 0 {
		t.Errorf("RateLimit = %d, should be > 0", cfg.RateLimit)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Redis != nil {
		t.Error("Redis should be nil by default")
	}
}

func TestGet_AddsKeyAndUserAgent(t *testing.T) {
	var received *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL+"/")

	query := Query{{Name: "query", Value: "coffee"}}
	resp, err := c.Get(context.Background(), "textsearch/json", query)
	require.NoError(t, err)

	require.NotNil(t, received)
	assert.Equal(t, "/textsearch/json", received.URL.Path)
	assert.Equal(t, "coffee", received.URL.Query().Get("query"))
	assert.Equal(t, "test-key", received.URL.Query().Get("key"))
	assert.Equal(t, DefaultUserAgent, received.Header.Get("User-Agent"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.JSONEq(t, `{"status":"OK"}`, string(resp.Body))

	// The caller's query is not modified.
	assert.Len(t, query, 1)
}

func TestGet_PreservesParameterOrder(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	query := Query{
		{Name: "query", Value: "coffee & cake"},
		{Name: "location", Value: "46.7749,7.1"},
		{Name: "radius", Value: "500"},
		{Name: "language", Value: "de"},
	}
	_, err := c.Get(context.Background(), "textsearch/json", query)
	require.NoError(t, err)

	assert.Equal(t, "query=coffee+%26+cake&location=46.7749%2C7.1&radius=500&language=de&key=test-key", rawQuery)
}

func TestQuery_Encode(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{name: "empty", query: nil, want: ""},
		{name: "insertion order", query: Query{{"z", "1"}, {"a", "2"}}, want: "z=1&a=2"},
		{name: "escaped", query: Query{{"input", "Museum of Art"}}, want: "input=Museum+of+Art"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}

	base := Query{{"a", "1"}}
	extended := base.With("key", "k")
	assert.Equal(t, "a=1&key=k", extended.Encode())
	assert.Len(t, base, 1)
}

func TestNew_UsesConfiguredLogger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	cfg := DefaultConfig("test-key")
	cfg.BaseURL = server.URL
	cfg.RateLimit = 0
	cfg.Logger = &logger
	c, err := New(cfg)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Get(context.Background(), "textsearch/json", nil)
	require.Error(t, err)

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"message":"Request error"`)
	assert.Contains(t, buf.String(), `"status_code":500`)
}

func TestGet_HTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantClass  ErrorClass
		retryable  bool
	}{
		{name: "bad request", statusCode: http.StatusBadRequest, wantClass: ErrorClassClient, retryable: false},
		{name: "forbidden", statusCode: http.StatusForbidden, wantClass: ErrorClassClient, retryable: false},
		{name: "too many requests", statusCode: http.StatusTooManyRequests, wantClass: ErrorClassQuota, retryable: true},
		{name: "server error", statusCode: http.StatusInternalServerError, wantClass: ErrorClassServer, retryable: true},
		{name: "unavailable", statusCode: http.StatusServiceUnavailable, wantClass: ErrorClassServer, retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			c := newTestClient(t, server.URL)

			_, err := c.Get(context.Background(), "details/json", nil)

			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.statusCode, te.StatusCode)
			assert.Equal(t, tt.wantClass, te.ErrorClass)
			assert.Equal(t, "details/json", te.Endpoint)
			assert.Equal(t, tt.retryable, te.Retryable())
		})
	}
}

func TestGet_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	c := newTestClient(t, baseURL)

	_, err := c.Get(context.Background(), "textsearch/json", nil)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ErrorClassNetwork, te.ErrorClass)
	assert.True(t, te.Retryable())
}

func TestGet_ContextCancelledBeforeRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	cfg := DefaultConfig("key")
	cfg.BaseURL = server.URL
	c, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Get(ctx, "textsearch/json", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, requests)
}

func TestGetJSON_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	var out struct {
		Status string `json:"status"`
	}
	err := c.GetJSON(context.Background(), "textsearch/json", nil, &out)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "textsearch/json", de.Endpoint)
	assert.Equal(t, "<html>maintenance</html>", string(de.Body))

	var te *TransportError
	assert.False(t, errors.As(err, &te), "decode failure must not be a transport error")
}

func TestGetJSON_Decodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	var out struct {
		Status  string            `json:"status"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "nearbysearch/json", nil, &out))
	assert.Equal(t, "ZERO_RESULTS", out.Status)
	assert.Empty(t, out.Results)
}

func TestGetJSON_QuotaCooldown(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{"status":"OVER_QUERY_LIMIT","error_message":"quota","results":[]}`))
	}))
	defer server.Close()

	cfg := DefaultConfig("key")
	cfg.BaseURL = server.URL
	cfg.Redis = redisClient
	cfg.QuotaCooldown = time.Minute
	c, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, c.Quota())

	ctx := context.Background()
	var out map[string]any

	// The upstream status is data, not an error.
	require.NoError(t, c.GetJSON(ctx, "textsearch/json", nil, &out))
	assert.Equal(t, 1, requests)

	// The next request is refused without reaching the service.
	err = c.GetJSON(ctx, "textsearch/json", nil, &out)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ErrorClassQuota, te.ErrorClass)
	assert.ErrorIs(t, err, ErrQuotaCooldown)
	assert.False(t, te.Retryable())
	assert.Equal(t, 1, requests)

	// After the cool-down requests flow again.
	mr.FastForward(2 * time.Minute)
	require.NoError(t, c.GetJSON(ctx, "textsearch/json", nil, &out))
	assert.Equal(t, 2, requests)
}

func TestGet_QuotaStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer redisClient.Close()
	mr.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer server.Close()

	cfg := DefaultConfig("key")
	cfg.BaseURL = server.URL
	cfg.Redis = redisClient
	c, err := New(cfg)
	require.NoError(t, err)

	var out map[string]any
	assert.NoError(t, c.GetJSON(context.Background(), "details/json", nil, &out))
}

func TestGet_WithGock(t *testing.T) {
	defer gock.Off()

	c := newTestClient(t, "https://places.example.com/api")
	gock.InterceptClient(c.HTTPClient())
	defer gock.RestoreClient(c.HTTPClient())

	gock.New("https://places.example.com").
		Get("/api/photo").
		MatchParam("photo_reference", "ref-1").
		MatchParam("maxwidth", "400").
		MatchParam("key", "test-key").
		Reply(200).
		SetHeader("Content-Type", "image/jpeg").
		BodyString("jpeg-bytes")

	query := Query{
		{Name: "photo_reference", Value: "ref-1"},
		{Name: "maxwidth", Value: "400"},
	}

	resp, err := c.Get(context.Background(), "photo", query)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", resp.ContentType)
	assert.Equal(t, "jpeg-bytes", string(resp.Body))
	assert.True(t, gock.IsDone())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvLegacyAPIKey, "legacy-key")
	t.Setenv(EnvBaseURL, "http://localhost:9999/place")
	t.Setenv(EnvUserAgent, "TestApp/1.0")
	t.Setenv(EnvRateLimit, "5")
	t.Setenv(EnvTimeout, "5s")
	t.Setenv(EnvRedisURL, "")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "legacy-key", cfg.APIKey)
	assert.Equal(t, "http://localhost:9999/place", cfg.BaseURL)
	assert.Equal(t, "TestApp/1.0", cfg.UserAgent)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Nil(t, cfg.Redis)

	t.Setenv(EnvAPIKey, "primary-key")
	cfg, err = ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "primary-key", cfg.APIKey)
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "rate limit", key: EnvRateLimit, value: "fast"},
		{name: "timeout", key: EnvTimeout, value: "soon"},
		{name: "redis url", key: EnvRedisURL, value: "://nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvRateLimit, "")
			t.Setenv(EnvTimeout, "")
			t.Setenv(EnvRedisURL, "")
			t.Setenv(tt.key, tt.value)

			_, err := ConfigFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestConfigFromEnv_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv(EnvRedisURL, "redis://"+mr.Addr()+"/0")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	require.NotNil(t, cfg.Redis)
	defer cfg.Redis.Close()

	assert.NoError(t, cfg.Redis.Ping(context.Background()).Err())
}
