package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for quota tracking.
var (
	quotaExceededTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "places_quota_exceeded_total",
		Help: "Total number of OVER_QUERY_LIMIT responses seen",
	})

	quotaBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "places_quota_blocks_total",
		Help: "Total number of requests refused during a quota cool-down",
	})

	quotaBlocked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "places_quota_blocked",
		Help: "1 while a quota cool-down is active",
	})
)

// Tracker records upstream quota exhaustion and gates requests.
// It is safe for concurrent use.
type Tracker struct {
	redis    *redis.Client
	logger   zerolog.Logger
	cooldown time.Duration
}

// NewTracker creates a tracker with DefaultCooldown.
func NewTracker(redisClient *redis.Client, logger zerolog.Logger) *Tracker {
	return NewTrackerWithCooldown(redisClient, logger, DefaultCooldown)
}

// NewTrackerWithCooldown creates a tracker with a custom cool-down.
func NewTrackerWithCooldown(redisClient *redis.Client, logger zerolog.Logger, cooldown time.Duration) *Tracker {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Tracker{
		redis:    redisClient,
		logger:   logger.With().Str("component", "quota").Logger(),
		cooldown: cooldown,
	}
}

// Cooldown returns the configured cool-down.
func (t *Tracker) Cooldown() time.Duration {
	return t.cooldown
}

// GetState retrieves the quota state from Redis.
// Returns a healthy state if nothing has been recorded.
func (t *Tracker) GetState(ctx context.Context) (*QuotaState, error) {
	state := &QuotaState{}

	blockedUntil, err := t.redis.Get(ctx, RedisKeyBlockedUntil).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get blocked until: %w", err)
	}
	if err == nil {
		state.BlockedUntil = time.UnixMilli(blockedUntil)
	}

	count, err := t.redis.Get(ctx, RedisKeyExceededCount).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get exceeded count: %w", err)
	}
	state.ExceededCount = count

	lastStatus, err := t.redis.Get(ctx, RedisKeyLastStatus).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get last status: %w", err)
	}
	state.LastStatus = lastStatus

	lastUpdate, err := t.redis.Get(ctx, RedisKeyLastUpdate).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get last update: %w", err)
	}
	if err == nil {
		state.LastUpdate = time.UnixMilli(lastUpdate)
	}

	state.UpdateHealth()
	return state, nil
}

// RecordStatus stores the upstream status of a response. OVER_QUERY_LIMIT
// starts a cool-down; OK ends any cool-down early.
func (t *Tracker) RecordStatus(ctx context.Context, status string) error {
	if status == "" {
		return nil
	}

	now := time.Now()
	pipe := t.redis.TxPipeline()
	pipe.Set(ctx, RedisKeyLastStatus, status, 0)
	pipe.Set(ctx, RedisKeyLastUpdate, now.UnixMilli(), 0)

	switch status {
	case StatusOverQueryLimit:
		blockedUntil := now.Add(t.cooldown)
		pipe.Set(ctx, RedisKeyBlockedUntil, blockedUntil.UnixMilli(), t.cooldown)
		pipe.Incr(ctx, RedisKeyExceededCount)
	case StatusOK:
		pipe.Del(ctx, RedisKeyBlockedUntil)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store quota state in redis: %w", err)
	}

	switch status {
	case StatusOverQueryLimit:
		quotaExceededTotal.Inc()
		quotaBlocked.Set(1)
		t.logger.Warn().
			Str("status", status).
			Dur("cooldown", t.cooldown).
			Msg("Upstream quota exceeded - requests will be refused")
	case StatusOK:
		quotaBlocked.Set(0)
		t.logger.Debug().Str("status", status).Msg("Quota state updated")
	}

	return nil
}

// ShouldAllowRequest reports whether a request may be sent now.
func (t *Tracker) ShouldAllowRequest(ctx context.Context) (bool, error) {
	state, err := t.GetState(ctx)
	if err != nil {
		return false, fmt.Errorf("get quota state: %w", err)
	}

	// A block written longer ago than one cool-down cannot be one this
	// tracker produced, so it is ignored.
	if state.NeedsBlock() && state.IsStale(t.cooldown) {
		t.logger.Debug().
			Time("blocked_until", state.BlockedUntil).
			Time("last_update", state.LastUpdate).
			Msg("Ignoring stale quota block")
		quotaBlocked.Set(0)
		return true, nil
	}

	if state.NeedsBlock() {
		t.logger.Warn().
			Int("exceeded_count", state.ExceededCount).
			Dur("wait_duration", state.TimeUntilReset()).
			Msg("Quota cool-down active - refusing request")

		quotaBlocksTotal.Inc()
		return false, nil
	}

	quotaBlocked.Set(0)
	return true, nil
}

// Reset clears all quota state.
func (t *Tracker) Reset(ctx context.Context) error {
	if err := t.redis.Del(ctx, RedisKeyBlockedUntil, RedisKeyExceededCount, RedisKeyLastStatus, RedisKeyLastUpdate).Err(); err != nil {
		return fmt.Errorf("reset quota state: %w", err)
	}
	quotaBlocked.Set(0)
	return nil
}
