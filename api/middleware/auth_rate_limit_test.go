package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeLimiter struct {
	counts map[string]int64
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{counts: make(map[string]int64)}
}

func (f *fakeLimiter) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	f.counts[key]++
	return f.counts[key], nil
}

func TestAuthRateLimitBlocksIPAfterLimit(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	limiter := newFakeLimiter()
	mw := AuthRateLimit(policy, limiter, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
		req.RemoteAddr = "203.0.113.9:1234"
		resp := httptest.NewRecorder()
		mw(handler).ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
	req.RemoteAddr = "203.0.113.9:1234"
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", resp.Code)
	}
}

func TestAuthRateLimitCountsEmailAcrossIPs(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	limiter := newFakeLimiter()
	mw := AuthRateLimit(policy, limiter, nil)
	var bodySeen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := make([]byte, 64)
		n, _ := r.Body.Read(payload)
		bodySeen = string(payload[:n])
		w.WriteHeader(http.StatusOK)
	})

	first := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"Ada@Example.com"}`))
	first.RemoteAddr = "203.0.113.1:1000"
	firstResp := httptest.NewRecorder()
	mw(handler).ServeHTTP(firstResp, first)
	if firstResp.Code != http.StatusOK {
		t.Fatalf("expected first attempt allowed, got %d", firstResp.Code)
	}
	if !strings.Contains(bodySeen, "Ada@Example.com") {
		t.Fatalf("handler should see the original body, got %q", bodySeen)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ada@example.com"}`))
	second.RemoteAddr = "198.51.100.7:2000"
	secondResp := httptest.NewRecorder()
	mw(handler).ServeHTTP(secondResp, second)
	if secondResp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for same email from another ip, got %d", secondResp.Code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	mw := AuthRateLimit(policy, newFakeLimiter(), nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", resp.Code)
	}
}
