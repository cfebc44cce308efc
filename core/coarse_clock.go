package core

import (
	"sync"
	"sync/atomic"
	"time"
)

const coarseClockTick = 500 * time.Microsecond

var (
	coarseClockOnce sync.Once
	coarseNow       atomic.Pointer[time.Time]
)

// StartCoarseClock starts a background goroutine caching time.Now() every
// 500µs. Calling it more than once is harmless; the goroutine is started
// exactly once and lives for the rest of the process.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		coarseNow.Store(&t)
		go func() {
			ticker := time.NewTicker(coarseClockTick)
			for range ticker.C {
				t := time.Now()
				coarseNow.Store(&t)
			}
		}()
	})
}

// CoarseNow returns the most recently cached time. The cached value keeps its
// monotonic reading, so elapsed-time arithmetic on it never goes backwards.
// It starts the clock on first use.
func CoarseNow() time.Time {
	if p := coarseNow.Load(); p != nil {
		return *p
	}
	StartCoarseClock()
	return *coarseNow.Load()
}
