package api

import (
	"testing"
	"time"
)

func TestAttemptLimiterWindow(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter()
	key := profileLimiterKey(7)
	window := time.Hour
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	if allowed, _ := limiter.allow(key, now.Add(-2*time.Hour), 1, window); !allowed {
		t.Fatal("expected first attempt to be allowed")
	}
	if allowed, _ := limiter.allow(key, now.Add(-30*time.Minute), 1, window); !allowed {
		t.Fatal("expected old attempt to be pruned from active window")
	}

	allowed, retryAfter := limiter.allow(key, now, 1, window)
	if allowed {
		t.Fatal("expected one recent attempt to hit limit 1")
	}
	if retryAfter != 30*time.Minute {
		t.Fatalf("expected retry after 30m, got %s", retryAfter)
	}

	if allowed, _ := limiter.allow(profileLimiterKey(8), now, 1, window); !allowed {
		t.Fatal("expected other profiles to keep their own window")
	}
}
