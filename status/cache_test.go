package status

import (
	"errors"
	"testing"
	"time"

	"github.com/bdube/pslrtether/protocol"
	"github.com/bdube/pslrtether/values"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCache_FirstReadFansOutEveryTopic(t *testing.T) {
	c := New(func() (protocol.Snapshot, error) {
		return protocol.Snapshot{CurrentISO: 400}, nil
	}, time.Second)

	snap, diff, gen, ok := c.Read(false)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), gen)
	assert.Equal(t, uint32(400), snap.CurrentISO)
	for _, topic := range Topics {
		assert.True(t, diff.Changed(topic), "topic %s should fan out on first read", topic)
	}
}

func TestCache_UnchangedFieldDoesNotFanOut(t *testing.T) {
	calls := 0
	c := New(func() (protocol.Snapshot, error) {
		calls++
		return protocol.Snapshot{CurrentISO: 400, FixedISO: 400}, nil
	}, time.Second)

	c.Read(true)
	_, diff, _, ok := c.Read(true)
	assert.True(t, ok)
	assert.False(t, diff.Changed("iso"))
	assert.Equal(t, 2, calls)
}

func TestCache_ChangedFieldFansOutOnce(t *testing.T) {
	n := 0
	c := New(func() (protocol.Snapshot, error) {
		n++
		return protocol.Snapshot{CurrentISO: uint32(400 * n)}, nil
	}, time.Second)

	c.Read(true)
	_, diff, _, ok := c.Read(true)
	assert.True(t, ok)
	assert.True(t, diff.Changed("iso"))
}

func TestCache_RefreshFailureClearsCurrent(t *testing.T) {
	first := true
	c := New(func() (protocol.Snapshot, error) {
		if first {
			first = false
			return protocol.Snapshot{CurrentISO: 400}, nil
		}
		return protocol.Snapshot{}, errors.New("device gone")
	}, time.Second)

	c.Read(true)
	_, _, _, ok := c.Read(true)
	assert.False(t, ok)

	_, ok = c.Peek()
	assert.False(t, ok, "a failed refresh must clear the cached snapshot")
}

func TestCache_StaleReadTriggersRefreshNotForced(t *testing.T) {
	calls := 0
	c := New(func() (protocol.Snapshot, error) {
		calls++
		return protocol.Snapshot{CurrentISO: 400}, nil
	}, time.Millisecond)

	c.Read(false)
	time.Sleep(5 * time.Millisecond)
	c.Read(false)
	assert.Equal(t, 2, calls)
}

func TestCache_FreshReadServedWithoutRefresh(t *testing.T) {
	calls := 0
	c := New(func() (protocol.Snapshot, error) {
		calls++
		return protocol.Snapshot{CurrentISO: 400}, nil
	}, time.Hour)

	c.Read(false)
	c.Read(false)
	assert.Equal(t, 1, calls)
}

func TestDiffSnapshots_MatchesFieldByFieldComparison(t *testing.T) {
	prev := protocol.Snapshot{ExposureMode: values.ExposureModeAV}
	cur := protocol.Snapshot{ExposureMode: values.ExposureModeTV}

	d := diffSnapshots(&prev, &cur)
	assert.True(t, d.Changed("exposure_mode"))

	if diff := cmp.Diff(prev.ExposureMode, cur.ExposureMode); diff == "" {
		t.Fatal("expected snapshots to differ in exposure mode")
	}
}
