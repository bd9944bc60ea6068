// Package leaktest checks that background workers shut down cleanly in tests.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settlePoll    = 10 * time.Millisecond
	settleTimeout = 2 * time.Second
)

// GoroutineChecker records the goroutine count at creation and compares later
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker creates a new checker and records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settlePoll)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test when more than tolerance goroutines outlive the checked code.
// Goroutines still winding down get up to settleTimeout to exit.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after := settle(g.before+tolerance, settleTimeout)
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if it leaves goroutines behind
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until at most target goroutines remain, failing on timeout
func WaitForGoroutines(t *testing.T, target int, timeout time.Duration) {
	t.Helper()

	if n := settle(target, timeout); n > target {
		t.Errorf("Timeout waiting for goroutines: target=%d, current=%d", target, n)
	}
}

// settle polls until the goroutine count drops to target or the timeout passes
func settle(target int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(settlePoll)
	}
}
