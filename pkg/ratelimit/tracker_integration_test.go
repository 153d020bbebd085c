//go:build integration

package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a Redis container and returns a client.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	cleanup := func() {
		client.Close()
		redisContainer.Terminate(ctx)
	}

	return client, cleanup
}

func TestTracker_Integration_GetState(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	tracker := NewTracker(redisClient, logger)
	ctx := context.Background()

	state, err := tracker.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if !state.IsHealthy {
		t.Error("Default state should be healthy")
	}

	if err := tracker.RecordStatus(ctx, StatusOverQueryLimit); err != nil {
		t.Fatalf("RecordStatus() error = %v", err)
	}

	state, err = tracker.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState() after update error = %v", err)
	}
	if state.IsHealthy {
		t.Error("State after OVER_QUERY_LIMIT should not be healthy")
	}
	if state.ExceededCount != 1 {
		t.Errorf("ExceededCount = %d, want 1", state.ExceededCount)
	}

	tolerance := 5 * time.Second
	if d := state.TimeUntilReset(); d < DefaultCooldown-tolerance || d > DefaultCooldown {
		t.Errorf("TimeUntilReset = %v, want approximately %v", d, DefaultCooldown)
	}
}

func TestTracker_Integration_SharedAcrossInstances(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	first := NewTracker(redisClient, logger)
	second := NewTracker(redisClient, logger)
	ctx := context.Background()

	if err := first.RecordStatus(ctx, StatusOverQueryLimit); err != nil {
		t.Fatalf("RecordStatus() error = %v", err)
	}

	allowed, err := second.ShouldAllowRequest(ctx)
	if err != nil {
		t.Fatalf("ShouldAllowRequest() error = %v", err)
	}
	if allowed {
		t.Error("second tracker allowed a request during the cool-down")
	}
}

func TestTracker_Integration_CooldownExpires(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	tracker := NewTrackerWithCooldown(redisClient, logger, 2*time.Second)
	ctx := context.Background()

	if err := tracker.RecordStatus(ctx, StatusOverQueryLimit); err != nil {
		t.Fatalf("RecordStatus() error = %v", err)
	}

	allowed, err := tracker.ShouldAllowRequest(ctx)
	if err != nil {
		t.Fatalf("ShouldAllowRequest() error = %v", err)
	}
	if allowed {
		t.Error("ShouldAllowRequest() = true, want false during cool-down")
	}

	time.Sleep(3 * time.Second)

	allowed, err = tracker.ShouldAllowRequest(ctx)
	if err != nil {
		t.Fatalf("ShouldAllowRequest() error = %v", err)
	}
	if !allowed {
		t.Error("ShouldAllowRequest() = false, want true after cool-down")
	}
}
