package session

import (
	"sync"
	"time"
)

type cachedToken struct {
	accessToken string
	expiresAt   int64
}

// TokenCache is a process-wide map from user id to the user's current
// access token and its expiry. It is not persistent: after
// a restart every session pays one refresh cycle, which the middleware
// treats as an ordinary cache miss.
type TokenCache struct {
	mu     sync.RWMutex
	tokens map[string]cachedToken
}

// NewTokenCache creates an empty token cache.
func NewTokenCache() *TokenCache {
	return &TokenCache{tokens: make(map[string]cachedToken)}
}

// Put overwrites the cache entry for userID.
func (c *TokenCache) Put(userID, accessToken string, expiresAt int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[userID] = cachedToken{accessToken: accessToken, expiresAt: expiresAt}
}

// Get returns the cached token for userID if one exists and has not
// expired. Expired entries are reported as absent but kept in place;
// the next Put overwrites them.
func (c *TokenCache) Get(userID string) (accessToken string, expiresAt int64, ok bool) {
	c.mu.RLock()
	entry, exists := c.tokens[userID]
	c.mu.RUnlock()

	if !exists || entry.expiresAt <= time.Now().Unix() {
		return "", 0, false
	}
	return entry.accessToken, entry.expiresAt, true
}

// Delete evicts the cache entry for userID. Used on logout.
func (c *TokenCache) Delete(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tokens, userID)
}
