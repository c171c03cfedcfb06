package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Policy describes one token bucket: MaxTokens burst, refilled by RefillRate
// tokens every RefillTime.
type Policy struct {
	MaxTokens  int
	RefillRate int
	RefillTime time.Duration
}

// PerMinute allows n actions per minute with a burst of n.
func PerMinute(n int) Policy {
	if n <= 0 {
		n = 1
	}
	return Policy{
		MaxTokens:  n,
		RefillRate: 1,
		RefillTime: time.Minute / time.Duration(n),
	}
}

type TokenBucket struct {
	tokens     int
	policy     Policy
	lastRefill time.Time
	lastUsed   time.Time
	mutex      sync.Mutex
}

func newTokenBucket(policy Policy, now time.Time) *TokenBucket {
	return &TokenBucket{
		tokens:     policy.MaxTokens,
		policy:     policy,
		lastRefill: now,
		lastUsed:   now,
	}
}

// allow consumes a token if one is available; otherwise it reports how long
// until the next refill.
func (tb *TokenBucket) allow(now time.Time) (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.lastUsed = now
	elapsed := now.Sub(tb.lastRefill)
	if refills := int(elapsed / tb.policy.RefillTime); refills > 0 {
		tb.tokens += refills * tb.policy.RefillRate
		if tb.tokens > tb.policy.MaxTokens {
			tb.tokens = tb.policy.MaxTokens
		}
		tb.lastRefill = tb.lastRefill.Add(time.Duration(refills) * tb.policy.RefillTime)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	return false, tb.lastRefill.Add(tb.policy.RefillTime).Sub(now)
}

func (tb *TokenBucket) idleSince() time.Time {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	return tb.lastUsed
}

// RateLimiter keeps one bucket per (key, action) pair.
type RateLimiter struct {
	buckets  map[string]*TokenBucket
	policies map[string]Policy
	fallback Policy
	now      func() time.Time
	mutex    sync.RWMutex
}

func NewRateLimiter(fallback Policy) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*TokenBucket),
		policies: make(map[string]Policy),
		fallback: fallback,
		now:      time.Now,
	}
}

// SetPolicy overrides the fallback policy for one action.
func (rl *RateLimiter) SetPolicy(action string, policy Policy) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.policies[action] = policy
}

func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	id := key + ":" + action
	now := rl.now()

	rl.mutex.RLock()
	bucket, exists := rl.buckets[id]
	rl.mutex.RUnlock()

	if !exists {
		rl.mutex.Lock()
		if bucket, exists = rl.buckets[id]; !exists {
			policy, ok := rl.policies[action]
			if !ok {
				policy = rl.fallback
			}
			bucket = newTokenBucket(policy, now)
			rl.buckets[id] = bucket
		}
		rl.mutex.Unlock()
	}

	return bucket.allow(now)
}

// Cleanup removes buckets unused for longer than idle.
func (rl *RateLimiter) Cleanup(idle time.Duration) int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	removed := 0
	for id, bucket := range rl.buckets {
		if now.Sub(bucket.idleSince()) > idle {
			delete(rl.buckets, id)
			removed++
		}
	}
	return removed
}

// StartCleanupRoutine prunes idle buckets every interval until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-ctx.Done():
				return
			}
		}
	}()
}
