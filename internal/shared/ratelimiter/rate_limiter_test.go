package ratelimiter

import (
	"testing"
	"time"
)

// TestWaitIfNeeded_UnderLimit は制限内の呼び出しがブロックしないことを検証します。
func TestWaitIfNeeded_UnderLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(5, time.Second)

	start := time.Now()
	for i := 0; i < 5; i++ {
		rl.WaitIfNeeded()
	}
	elapsed := time.Since(start)

	if elapsed > 100*time.Millisecond {
		t.Errorf("expected no blocking under the limit, took %v", elapsed)
	}
}

// TestWaitIfNeeded_OverLimit は制限超過の呼び出しが次のウィンドウまでブロックすることを検証します。
func TestWaitIfNeeded_OverLimit(t *testing.T) {
	t.Parallel()

	interval := 300 * time.Millisecond
	rl := NewRateLimiter(2, interval)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	start := time.Now()
	rl.WaitIfNeeded() // third call must sleep out the window
	elapsed := time.Since(start)

	if elapsed < 100*time.Millisecond {
		t.Errorf("expected the call over the limit to block, took %v", elapsed)
	}
}

// TestWaitIfNeeded_ResetsAfterInterval はウィンドウ経過後にカウントがリセットされることを検証します。
func TestWaitIfNeeded_ResetsAfterInterval(t *testing.T) {
	t.Parallel()

	interval := 100 * time.Millisecond
	rl := NewRateLimiter(1, interval)

	rl.WaitIfNeeded()
	time.Sleep(interval + 20*time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded() // fresh window, must not block
	elapsed := time.Since(start)

	if elapsed > 50*time.Millisecond {
		t.Errorf("expected no blocking in a fresh window, took %v", elapsed)
	}
}
