//go:build integration

package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lumeo/lumeo/internal/cache"
	"github.com/lumeo/lumeo/internal/testutil"
)

func newRateLimitCache(t *testing.T) (context.Context, *cache.Cache) {
	t.Helper()
	ctx := context.Background()

	redisURL := testutil.RequireEnv(t, "REDIS_URL")
	cacheClient, err := cache.New(ctx, redisURL)
	if err != nil {
		t.Skipf("Skipping integration test: Redis not available: %v", err)
	}
	t.Cleanup(cacheClient.Close)

	if err := testutil.FlushRedis(ctx, cacheClient.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, cacheClient
}

// TestUserRateLimitConcurrency verifies per-user rate limiting under
// concurrent load.
func TestUserRateLimitConcurrency(t *testing.T) {
	ctx, cacheClient := newRateLimitCache(t)

	userID := "user-concurrent"
	rpm := 10 // Low limit to trigger easily
	burst := 5

	var allowed, rejected int64

	// Spawn 20 concurrent goroutines, each making 3 requests
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 3; j++ {
				result, err := cacheClient.CheckUserRateLimit(ctx, userID, rpm, burst)
				if err != nil {
					t.Errorf("CheckUserRateLimit error: %v", err)
					return
				}
				if result.Allowed {
					atomic.AddInt64(&allowed, 1)
				} else {
					atomic.AddInt64(&rejected, 1)
				}
			}
		}()
	}

	wg.Wait()

	total := allowed + rejected
	t.Logf("Concurrency test: %d allowed, %d rejected (total: %d)", allowed, rejected, total)

	// We expect roughly burst amount to be allowed initially
	// With 60 requests total and 10 RPM (burst 5), most should be rejected
	if allowed > int64(burst+rpm) {
		t.Errorf("Too many requests allowed: %d (expected <= %d)", allowed, burst+rpm)
	}

	if rejected == 0 {
		t.Error("Expected some requests to be rejected")
	}
}

// TestIPRateLimitConcurrency verifies IP-based rate limiting concurrency.
func TestIPRateLimitConcurrency(t *testing.T) {
	ctx, cacheClient := newRateLimitCache(t)

	testIP := "192.168.1.100"
	rps := 5
	burst := 3

	var allowed, rejected int64
	var wg sync.WaitGroup

	// 30 concurrent requests
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, _ := cacheClient.CheckIPRateLimit(ctx, testIP, rps, burst)
			if result.Allowed {
				atomic.AddInt64(&allowed, 1)
			} else {
				atomic.AddInt64(&rejected, 1)
			}
		}()
	}

	wg.Wait()

	t.Logf("IP rate limit: %d allowed, %d rejected", allowed, rejected)

	if rejected == 0 {
		t.Error("Expected some requests to be rejected")
	}
}

// TestUnlimitedPlanSkipsRedis verifies the unlimited tier short-circuits.
func TestUnlimitedPlanSkipsRedis(t *testing.T) {
	ctx, cacheClient := newRateLimitCache(t)

	for i := 0; i < 100; i++ {
		result, err := cacheClient.CheckUserRateLimit(ctx, "user-unlimited", 0, 0)
		if err != nil {
			t.Fatalf("CheckUserRateLimit error: %v", err)
		}
		if !result.Allowed {
			t.Fatal("unlimited tier rejected a request")
		}
	}
}
