// Package cache provides content-addressed caching for computed layouts.
//
// Packing engines are deterministic for a given input (and seed), so a
// layout can be cached under a hash of the request that produced it. The
// package ships three backends: a file cache for CLI usage, a redis cache
// for server deployments, and a null cache for disabling caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores computed layouts keyed by request hash.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means the
	// entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKey builds a cache key for an engine invocation from the engine
// name and the serialized request. Identical requests map to identical
// keys regardless of field ordering in the original JSON, because the
// caller passes a canonical re-marshaled payload.
func LayoutKey(engine string, payload any) string {
	return hashKey("layout:"+engine, payload)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
