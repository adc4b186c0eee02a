package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_Basic(t *testing.T) {
	limiter := NewRateLimiter(2)

	if qps := limiter.GetQPS(); qps != 2 {
		t.Errorf("expected QPS 2, got %d", qps)
	}

	// 桶大小等于QPS,前两个请求应立即通过
	if !limiter.Allow() || !limiter.Allow() {
		t.Error("burst of two requests should be allowed")
	}
	if limiter.Allow() {
		t.Error("third immediate request should be throttled")
	}
}

func TestRateLimiter_NoLimit(t *testing.T) {
	limiter := NewRateLimiter(0)

	if qps := limiter.GetQPS(); qps != 0 {
		t.Errorf("expected QPS 0 (unlimited), got %d", qps)
	}

	for i := 0; i < 100; i++ {
		if !limiter.Allow() {
			t.Fatal("unlimited limiter should allow all requests")
		}
	}
}

func TestRateLimiter_SetQPS(t *testing.T) {
	limiter := NewRateLimiter(10)

	limiter.SetQPS(40)
	if qps := limiter.GetQPS(); qps != 40 {
		t.Errorf("expected QPS 40 after SetQPS, got %d", qps)
	}

	limiter.SetQPS(-1)
	if qps := limiter.GetQPS(); qps != 0 {
		t.Errorf("expected QPS 0 after SetQPS(-1), got %d", qps)
	}
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	limiter := NewRateLimiter(1)

	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first wait should not error: %v", err)
	}

	// 下一个令牌约1秒后才可用,50ms的超时必然失败
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("second wait should fail once the context deadline is shorter than the refill interval")
	}
}

func TestRateLimiter_StartsWithFullBucket(t *testing.T) {
	limiter := NewRateLimiter(5)

	for i := 0; i < 5; i++ {
		if !limiter.Allow() {
			t.Fatalf("request %d should use the initial burst", i+1)
		}
	}
	if limiter.Allow() {
		t.Error("request beyond the burst should be throttled")
	}
}
