package ratelimit

import (
	"testing"
	"time"
)

func newTestLimiter(limit int, window time.Duration) (*MemoryLimiter, *time.Time) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	l := &MemoryLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		now:     func() time.Time { return now },
		stopCh:  make(chan struct{}),
	}
	return l, &now
}

func TestMemoryLimiterRejectsOverLimit(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("request over limit should be rejected")
	}
	// other clients keep their own budget
	if !l.Allow("5.6.7.8") {
		t.Fatal("different client should be allowed")
	}
}

func TestMemoryLimiterResetsAfterWindow(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)

	l.Allow("c")
	l.Allow("c")
	if l.Allow("c") {
		t.Fatal("third request inside window should be rejected")
	}

	*now = now.Add(time.Minute + time.Second)
	if !l.Allow("c") {
		t.Fatal("request after window elapse should be allowed again")
	}
}

func TestMemoryLimiterZeroLimitDisabled(t *testing.T) {
	l, _ := newTestLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !l.Allow("c") {
			t.Fatal("disabled limiter must always allow")
		}
	}
}
