package auth

import (
	"sync"
	"time"
)

// TokenBlacklist records revoked access tokens until they expire on their own.
type TokenBlacklist interface {
	// IsRevoked checks whether the token has been revoked.
	IsRevoked(token string) (bool, error)
	// Revoke marks the token revoked until exp, after which it may be forgotten.
	Revoke(token string, exp time.Time) error
}

// MemoryBlacklist keeps revoked tokens in process memory. A background sweep
// drops entries once their expiry passes.
type MemoryBlacklist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewMemoryBlacklist creates a MemoryBlacklist and starts its sweeper.
func NewMemoryBlacklist() *MemoryBlacklist {
	bl := &MemoryBlacklist{
		revoked: make(map[string]time.Time),
	}
	go bl.sweep(5 * time.Minute)
	return bl
}

func (bl *MemoryBlacklist) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		bl.DropExpired()
	}
}

// DropExpired removes entries whose expiry has passed. Expired tokens fail
// validation anyway, the entry only wastes memory.
func (bl *MemoryBlacklist) DropExpired() {
	bl.mu.Lock()
	defer bl.mu.Unlock()

	now := time.Now()
	for token, exp := range bl.revoked {
		if exp.Before(now) {
			delete(bl.revoked, token)
		}
	}
}

// IsRevoked implements TokenBlacklist.
func (bl *MemoryBlacklist) IsRevoked(token string) (bool, error) {
	bl.mu.RLock()
	defer bl.mu.RUnlock()

	_, revoked := bl.revoked[token]
	return revoked, nil
}

// Revoke implements TokenBlacklist.
func (bl *MemoryBlacklist) Revoke(token string, exp time.Time) error {
	bl.mu.Lock()
	defer bl.mu.Unlock()

	bl.revoked[token] = exp
	return nil
}
