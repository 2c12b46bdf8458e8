// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Limit classes. Audit creation is expensive (outbound fetch fan-out);
// reads are cheap.
const (
	ClassAudit = "audit"
	ClassRead  = "read"
)

type limitRule struct {
	max    int
	window time.Duration
}

var limitRules = map[string]limitRule{
	ClassAudit: {max: 10, window: time.Minute},
	ClassRead:  {max: 60, window: time.Minute},
}

type RateLimitResult struct {
	Allowed     bool
	WaitSeconds int
}

type RateLimiter interface {
	CheckAndRecord(ip, class string) RateLimitResult
}

// InMemoryRateLimiter tracks request timestamps per IP and class.
type InMemoryRateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
}

func NewInMemoryRateLimiter() *InMemoryRateLimiter {
	limiter := &InMemoryRateLimiter{
		requests: make(map[string][]time.Time),
	}

	go limiter.cleanupLoop()

	return limiter
}

func (l *InMemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-time.Minute)
		for key, stamps := range l.requests {
			l.requests[key] = pruneOld(stamps, cutoff)
			if len(l.requests[key]) == 0 {
				delete(l.requests, key)
			}
		}
		l.mu.Unlock()
	}
}

func pruneOld(stamps []time.Time, cutoff time.Time) []time.Time {
	result := stamps[:0]
	for _, s := range stamps {
		if !s.Before(cutoff) {
			result = append(result, s)
		}
	}
	return result
}

func (l *InMemoryRateLimiter) CheckAndRecord(ip, class string) RateLimitResult {
	rule, ok := limitRules[class]
	if !ok {
		return RateLimitResult{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := class + ":" + ip
	now := time.Now()
	l.requests[key] = pruneOld(l.requests[key], now.Add(-rule.window))
	stamps := l.requests[key]

	if len(stamps) >= rule.max {
		wait := int(stamps[0].Add(rule.window).Sub(now).Seconds()) + 1
		if wait < 1 {
			wait = 1
		}
		return RateLimitResult{Allowed: false, WaitSeconds: wait}
	}

	l.requests[key] = append(stamps, now)
	return RateLimitResult{Allowed: true}
}

// RateLimit guards a route group with the given limit class.
func RateLimit(limiter RateLimiter, class string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		result := limiter.CheckAndRecord(clientIP, class)

		if !result.Allowed {
			traceID, _ := c.Get("trace_id")
			slog.Info("Rate limit triggered",
				"trace_id", traceID,
				"ip", clientIP,
				"class", class,
				"wait_seconds", result.WaitSeconds,
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":     fmt.Sprintf("Rate limit reached. Please wait %d seconds before trying again.", result.WaitSeconds),
				"code":      "RATE_LIMITED",
				"retryable": true,
			})
			return
		}

		c.Next()
	}
}
