package api

import (
	"strconv"
	"sync"
	"time"
)

// attemptLimiter is a sliding-window counter keyed by caller. Profiles use it
// to bound how often they can trigger a full recompute.
type attemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{
		attempts: make(map[string][]time.Time),
	}
}

// allow records an attempt at now unless limit attempts already fall inside
// the window. When refused it reports how long until the oldest one expires.
func (limiter *attemptLimiter) allow(key string, now time.Time, limit int, window time.Duration) (bool, time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	pruned := limiter.pruneLocked(key, now, window)
	if len(pruned) >= limit {
		return false, pruned[0].Add(window).Sub(now)
	}
	limiter.attempts[key] = append(pruned, now)
	return true, 0
}

func (limiter *attemptLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.attempts[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-window)
	pruned := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}

	if len(pruned) == 0 {
		delete(limiter.attempts, key)
		return []time.Time{}
	}

	limiter.attempts[key] = pruned
	return pruned
}

func profileLimiterKey(profileID uint) string {
	return "profile:" + strconv.FormatUint(uint64(profileID), 10)
}
