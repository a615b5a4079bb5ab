// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package middleware_test

import (
	"fmt"
	"testing"

	"github.com/colly23421/seo-ai-audit/internal/middleware"
)

func TestRateLimiterAllowsDistinctTargets(t *testing.T) {
	limiter := middleware.NewInMemoryRateLimiter()

	for i := 0; i < 3; i++ {
		result := limiter.CheckAndRecord("1.2.3.4", fmt.Sprintf("https://site%d.example", i))
		if !result.Allowed {
			t.Fatalf("request %d unexpectedly denied: %s", i, result.Reason)
		}
	}
}

func TestRateLimiterBlocksRepeatTarget(t *testing.T) {
	limiter := middleware.NewInMemoryRateLimiter()

	first := limiter.CheckAndRecord("1.2.3.4", "https://example.com")
	if !first.Allowed {
		t.Fatalf("first request denied: %s", first.Reason)
	}

	repeat := limiter.CheckAndRecord("1.2.3.4", "https://EXAMPLE.com")
	if repeat.Allowed {
		t.Fatal("expected immediate repeat of same target to be denied")
	}
	if repeat.Reason != "anti_repeat" {
		t.Errorf("expected reason anti_repeat, got %q", repeat.Reason)
	}
	if repeat.WaitSeconds < 1 {
		t.Errorf("expected positive wait, got %d", repeat.WaitSeconds)
	}
}

func TestRateLimiterCapsPerIP(t *testing.T) {
	limiter := middleware.NewInMemoryRateLimiter()

	for i := 0; i < middleware.RateLimitMaxRequests; i++ {
		result := limiter.CheckAndRecord("9.9.9.9", fmt.Sprintf("https://site%d.example", i))
		if !result.Allowed {
			t.Fatalf("request %d unexpectedly denied", i)
		}
	}

	overflow := limiter.CheckAndRecord("9.9.9.9", "https://overflow.example")
	if overflow.Allowed {
		t.Fatal("expected request over the cap to be denied")
	}
	if overflow.Reason != "rate_limit" {
		t.Errorf("expected reason rate_limit, got %q", overflow.Reason)
	}

	// A different client is unaffected.
	other := limiter.CheckAndRecord("8.8.4.4", "https://fresh.example")
	if !other.Allowed {
		t.Error("expected different IP to be allowed")
	}
}
