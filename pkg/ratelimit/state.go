// Package ratelimit tracks the upstream quota of the place-search service.
// When the service answers OVER_QUERY_LIMIT the key is out of quota, and
// further requests only burn more of it. The tracker records a cool-down in
// Redis so every client instance sharing the key backs off together.
package ratelimit

import (
	"time"
)

// Redis keys for quota state storage.
const (
	RedisKeyBlockedUntil  = "places:quota:blocked_until"
	RedisKeyExceededCount = "places:quota:exceeded_count"
	RedisKeyLastStatus    = "places:quota:last_status"
	RedisKeyLastUpdate    = "places:quota:last_update"
)

// DefaultCooldown is how long requests are refused after OVER_QUERY_LIMIT.
const DefaultCooldown = 60 * time.Second

// Upstream status codes the tracker reacts to.
const (
	StatusOK             = "OK"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
)

// QuotaState is the shared view of the key's quota.
type QuotaState struct {
	// BlockedUntil is the end of the current cool-down. Zero when not blocked.
	BlockedUntil time.Time `json:"blocked_until"`

	// ExceededCount is how many OVER_QUERY_LIMIT responses have been seen.
	ExceededCount int `json:"exceeded_count"`

	// LastStatus is the most recent upstream status recorded.
	LastStatus string `json:"last_status"`

	// LastUpdate is when the state was last written.
	LastUpdate time.Time `json:"last_update"`

	// IsHealthy is false while a cool-down is active.
	IsHealthy bool `json:"is_healthy"`
}

// IsStale returns true if the state is older than maxAge.
func (s *QuotaState) IsStale(maxAge time.Duration) bool {
	return time.Since(s.LastUpdate) > maxAge
}

// NeedsBlock returns true while the cool-down is active.
func (s *QuotaState) NeedsBlock() bool {
	return !s.BlockedUntil.IsZero() && time.Now().Before(s.BlockedUntil)
}

// TimeUntilReset returns the remaining cool-down, or 0.
func (s *QuotaState) TimeUntilReset() time.Duration {
	if s.BlockedUntil.IsZero() {
		return 0
	}
	duration := time.Until(s.BlockedUntil)
	if duration < 0 {
		return 0
	}
	return duration
}

// UpdateHealth recomputes IsHealthy.
func (s *QuotaState) UpdateHealth() {
	s.IsHealthy = !s.NeedsBlock()
}
