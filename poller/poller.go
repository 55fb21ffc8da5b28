// Package poller runs the single long-running worker that keeps the
// status cache fresh while connected, the way envsrv.Envmon drives a
// periodic refresh on a ticker with a cooperative shutdown flag.
package poller

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Worker periodically calls Refresh at the configured cadence. Pacing it
// with a rate.Limiter rather than a bare time.Ticker means a caller's own
// forced refresh doesn't cause the next scheduled tick to fire early —
// the limiter's token bucket already accounts for the time that elapsed.
type Worker struct {
	Refresh func()
	limiter *rate.Limiter
	period  time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// New builds a Worker that invokes refresh roughly once per period.
func New(period time.Duration, refresh func()) *Worker {
	return &Worker{
		Refresh: refresh,
		limiter: rate.NewLimiter(rate.Every(period), 1),
		period:  period,
	}
}

// Start launches the background refresh loop. Calling Start while already
// running is a no-op.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.stopped = make(chan struct{})

	go w.run(ctx)
}

// Stop cooperatively halts the background loop and waits for it to exit.
// Calling Stop when not running is a no-op.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	stopped := w.stopped
	w.cancel = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.stopped)
	for {
		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		w.Refresh()
	}
}
