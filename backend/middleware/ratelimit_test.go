package middleware

import (
	"fmt"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("203.0.113.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("203.0.113.1") {
		t.Error("request over the limit should be denied")
	}

	// Other keys are tracked independently.
	if !limiter.Allow("203.0.113.2") {
		t.Error("different key should be allowed")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	limiter := NewRateLimiter(2, 50*time.Millisecond)

	if !limiter.Allow("key") || !limiter.Allow("key") {
		t.Fatal("first two requests should be allowed")
	}
	if limiter.Allow("key") {
		t.Fatal("third request should be denied")
	}

	time.Sleep(60 * time.Millisecond)

	if !limiter.Allow("key") {
		t.Error("request after the window should be allowed")
	}
}

func TestRateLimiterBoundedKeys(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)

	// Far more keys than the cache holds; older entries are evicted
	// instead of accumulating.
	for i := 0; i < rateLimiterSize*2; i++ {
		limiter.Allow(fmt.Sprintf("key-%d", i))
	}

	if limiter.cache.Len() > rateLimiterSize {
		t.Errorf("cache holds %d keys, want at most %d", limiter.cache.Len(), rateLimiterSize)
	}
}
