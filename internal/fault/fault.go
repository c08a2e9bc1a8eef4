// Package fault provides deterministic allocation failure injection.
//
// Every allocating constructor in cairo asks Fail before it allocates a
// handle or grows handle-owned storage. Tests arm the injector with Inject
// to make exactly one future allocation fail, which is the only way to reach
// the out-of-memory paths of a garbage collected runtime.
package fault

import "sync/atomic"

// countdown holds the number of allocations left until the injected failure.
// Zero means no failure is armed.
var countdown atomic.Int64

// Inject arms the injector so that the n-th subsequent allocation fails.
// Inject(0) disarms it.
func Inject(n int) {
	if n < 0 {
		n = 0
	}
	countdown.Store(int64(n))
}

// Reset disarms the injector.
func Reset() {
	countdown.Store(0)
}

// Fail reports whether the current allocation must fail.
// It is safe for concurrent use; exactly one caller observes the failure.
func Fail() bool {
	for {
		c := countdown.Load()
		if c <= 0 {
			return false
		}
		if countdown.CompareAndSwap(c, c-1) {
			return c == 1
		}
	}
}
