package poller

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorker_RefreshesWhileRunning(t *testing.T) {
	var calls int32
	w := New(5*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	w.Start()
	time.Sleep(40 * time.Millisecond)
	w.Stop()

	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestWorker_StopHaltsFurtherRefreshes(t *testing.T) {
	var calls int32
	w := New(2*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	w.Start()
	time.Sleep(10 * time.Millisecond)
	w.Stop()
	after := atomic.LoadInt32(&calls)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&calls))
}

func TestWorker_StartIsIdempotent(t *testing.T) {
	w := New(time.Millisecond, func() {})
	w.Start()
	w.Start()
	w.Stop()
}

func TestWorker_StopWithoutStartIsNoOp(t *testing.T) {
	w := New(time.Millisecond, func() {})
	w.Stop()
}
