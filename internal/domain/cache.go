package domain

import (
	"context"
	"time"
)

// Cache defines the interface for caching operations.
// Supports two-phase caching: local LRU (Community) + Redis (Pro).
// All methods require tenantID for strict multi-tenancy isolation.
type Cache interface {
	// Get retrieves a value from cache.
	// Returns nil, nil if key not found.
	Get(ctx context.Context, tenantID string, key string) ([]byte, error)

	// Set stores a value in cache with expiration.
	Set(ctx context.Context, tenantID string, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache.
	Delete(ctx context.Context, tenantID string, key string) error

	// GetProfile retrieves a memoized fiscal profile by input tuple.
	GetProfile(ctx context.Context, tenantID string, key string) (*FiscalProfile, error)

	// SetProfile memoizes a fiscal profile under its input-tuple key.
	SetProfile(ctx context.Context, tenantID string, key string, profile *FiscalProfile, ttl time.Duration) error

	// Health check
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}

// ProfileCacheKey builds the memoization key for a fiscal profile
// resolution input tuple.
func ProfileCacheKey(envelope EnvelopeCode, audience Audience, perBancaire bool) string {
	key := "profile:" + string(envelope) + ":" + string(audience)
	if perBancaire {
		return key + ":bancaire"
	}
	return key + ":assurance"
}

// CacheConfig holds configuration for cache initialization.
type CacheConfig struct {
	// Type is the cache type: "memory" or "redis"
	Type string

	// Local LRU cache settings (Community tier)
	LocalMaxSize int
	LocalTTL     time.Duration

	// Redis settings (Pro tier)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Two-phase settings
	EnableTwoPhase bool // If true, check local first, then Redis
}
