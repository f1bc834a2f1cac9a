package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// tokenHashLen is the fixed number of hex characters of the credential's
// SHA-256 digest used as a cache key. The raw credential is never a key.
const tokenHashLen = 16

// TokenHash returns the cache key for a bearer credential.
func TokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])[:tokenHashLen]
}

// Cache is an in-process cache of verified identities keyed by credential
// hash. A hit skips JWT re-validation for the TTL window; eviction via
// Invalidate forces re-verification on the next request.
type Cache struct {
	c   *ristretto.Cache[string, *Identity]
	ttl time.Duration
}

// NewCache creates an identity cache holding up to maxEntries identities.
func NewCache(maxEntries int64, ttl time.Duration) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, *Identity]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c, ttl: ttl}, nil
}

// Get retrieves a cached identity by credential hash.
func (c *Cache) Get(tokenHash string) (*Identity, bool) {
	return c.c.Get(tokenHash)
}

// Set stores a verified identity under its credential hash.
func (c *Cache) Set(tokenHash string, ident *Identity) {
	c.c.SetWithTTL(tokenHash, ident, 1, c.ttl)
}

// Invalidate evicts the identity for one credential hash.
func (c *Cache) Invalidate(tokenHash string) {
	c.c.Del(tokenHash)
}

// Wait blocks until pending writes are applied. Ristretto applies sets
// asynchronously; callers that read-after-write (tests) need this.
func (c *Cache) Wait() {
	c.c.Wait()
}

// Close shuts down the cache and releases resources.
func (c *Cache) Close() {
	c.c.Close()
}
