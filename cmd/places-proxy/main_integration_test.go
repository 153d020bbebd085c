//go:build integration

package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/Sternrassler/places-client/internal/testutil"
	"github.com/Sternrassler/places-client/pkg/places"
	"github.com/Sternrassler/places-client/pkg/search"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := redisC.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := redisC.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		redisC.Terminate(ctx)
	}

	return redisClient, cleanup
}

func TestReadyEndpoint_Integration(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	h, _ := setupServer(t, redisClient)

	resp := get(t, h, "/ready")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	redisClient.Close()

	resp = get(t, h, "/ready")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", resp.StatusCode)
	}
}

func TestSearchText_QuotaSharedThroughRedis_Integration(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	opts := redisClient.Options()
	mock := testutil.NewMockPlaces()
	defer mock.Close()
	mock.SetResponse(search.EndpointTextSearch, testutil.NewStatusResponse(places.StatusOverQueryLimit, "quota"))

	setCLIEnv(t, mock.URL())
	t.Setenv("REDIS_URL", "redis://"+opts.Addr)

	// The first query records OVER_QUERY_LIMIT and succeeds with that status.
	out, err := runCLI(t, "search", "text", "coffee")
	if err != nil {
		t.Fatalf("first query failed: %v", err)
	}
	t.Logf("first query: %s", out)

	// A fresh process sees the cool-down and never reaches the service.
	if _, err := runCLI(t, "search", "text", "coffee"); err == nil {
		t.Fatal("expected quota cool-down error on second query")
	}
	if got := mock.GetRequestCount(); got != 1 {
		t.Errorf("Expected 1 upstream request, got %d", got)
	}
}
