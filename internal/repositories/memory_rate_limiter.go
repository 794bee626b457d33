package repository

import (
	"context"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-demo/internal/config"
)

// MemoryRateLimiter keeps a sliding window of login attempts per account in
// process memory. Accounts whose window has fully expired are dropped by
// Sweep.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	cfg      config.RateConfig
	now      func() time.Time
}

func NewMemoryRateLimitRepo(cfg config.RateConfig) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		attempts: make(map[string][]time.Time),
		cfg:      cfg,
		now:      time.Now,
	}
}

// prune drops attempts at or before windowStart and forgets the account when
// none remain.
func (m *MemoryRateLimiter) prune(username string, windowStart time.Time) []time.Time {
	kept := m.attempts[username][:0]
	for _, at := range m.attempts[username] {
		if at.After(windowStart) {
			kept = append(kept, at)
		}
	}

	if len(kept) == 0 {
		delete(m.attempts, username)
		return nil
	}
	m.attempts[username] = kept

	return kept
}

func (m *MemoryRateLimiter) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	kept := append(m.prune(username, now.Add(-m.cfg.WindowSize)), now)
	m.attempts[username] = kept

	attempts := int64(len(kept))
	if attempts > m.cfg.MaxAttempts {
		retryAfter := max(kept[0].Add(m.cfg.WindowSize).Sub(now), 0)
		return false, 0, int(retryAfter.Seconds()), nil
	}

	return true, int(m.cfg.MaxAttempts - attempts), 0, nil
}

func (m *MemoryRateLimiter) ResetLoginAttempts(ctx context.Context, username string) error {
	m.mu.Lock()
	delete(m.attempts, username)
	m.mu.Unlock()

	return nil
}

// Tracked reports how many accounts currently hold attempts.
func (m *MemoryRateLimiter) Tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.attempts)
}

// Sweep forgets every account whose attempts have all left the window and
// returns how many were dropped.
func (m *MemoryRateLimiter) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	windowStart := m.now().Add(-m.cfg.WindowSize)
	before := len(m.attempts)
	for username := range m.attempts {
		m.prune(username, windowStart)
	}

	return before - len(m.attempts)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *MemoryRateLimiter) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
