// Package cache stores serialized assessments so repeated runs against the
// same address and context skip the reasoning call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for assessment caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for one reasoning call. The rendered context is
// part of the key: any change in retrieval invalidates the cached answer.
func Key(address, mdl, context string) string {
	h := sha256.New()
	h.Write([]byte(address))
	h.Write([]byte{0})
	h.Write([]byte(mdl))
	h.Write([]byte{0})
	h.Write([]byte(context))
	return "bouwvrij:v1:" + hex.EncodeToString(h.Sum(nil))
}
