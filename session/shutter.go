package session

import (
	"time"

	"github.com/bdube/pslrtether/internal/util"
	"github.com/bdube/pslrtether/protocol"
	"github.com/bdube/pslrtether/values"
)

// InvalidBufferIndex is returned by ExecuteShutter when the shot could
// not be resolved to a buffer index, matching the vendor library's
// InvalidBufferIndex sentinel.
const InvalidBufferIndex = -1

// minShutterWaitFraction scales the 30 s maximum shutter time into the
// fallback sleep used when the pre-shot shutter speed is the invalid
// rational: 30s * 0.1 + shutterWaitPad (500ms).
const minShutterWaitFraction = 0.1
const shutterWaitPad = 500 * time.Millisecond

// ExecuteShutter fires the shutter and resolves which buffer index the
// resulting image landed in. It refuses bulb mode and a disconnected or
// unreadable session, returning InvalidBufferIndex in either case.
func (c *Controller) ExecuteShutter() int {
	if c.State() != StateConnected {
		return InvalidBufferIndex
	}

	pre, ok := c.readAndFire(true)
	if !ok {
		return InvalidBufferIndex
	}
	if pre.ExposureMode == values.ExposureModeB {
		return InvalidBufferIndex
	}

	if !c.execute(protocol.EncodeShutter()) {
		return InvalidBufferIndex
	}

	time.Sleep(shutterWait(pre.CurrentShutterSpeed))

	if c.Capability().LimitedModel {
		return 0
	}

	post, ok := c.readAndFire(true)
	if !ok {
		return InvalidBufferIndex
	}

	newMask := (post.BufferMask ^ pre.BufferMask) & post.BufferMask
	idx, exact := singleSetBit(newMask)
	if !exact {
		return InvalidBufferIndex
	}
	return idx
}

func shutterWait(shutterSpeed values.Rational[uint32]) time.Duration {
	if shutterSpeed.IsInvalid() {
		return util.SecsToDuration(30*minShutterWaitFraction) + shutterWaitPad
	}
	return util.SecsToDuration(shutterSpeed.ToFloat()) + shutterWaitPad
}

// singleSetBit reports the index of mask's single set bit, or (0, false)
// if mask has zero or more than one bit set.
func singleSetBit(mask uint32) (idx int, exact bool) {
	if mask == 0 || mask&(mask-1) != 0 {
		return 0, false
	}
	for i := 0; i < 32; i++ {
		if mask&(1<<uint(i)) != 0 {
			return i, true
		}
	}
	return 0, false
}

// ExecuteFocus drives autofocus and returns the row-major indices of the
// points that ended up focused, releasing the transport mutex during the
// settle sleep so observers and the poller can proceed.
func (c *Controller) ExecuteFocus() []int {
	if c.State() != StateConnected {
		return nil
	}
	if !c.execute(protocol.EncodeFocus()) {
		return nil
	}

	time.Sleep(300 * time.Millisecond)

	snap, ok := c.readAndFire(true)
	if !ok {
		return nil
	}
	return values.DecodeBitmap(snap.FocusedAFBitmap, c.Capability().AFRemap)
}

// ExecuteDustRemoval triggers the sensor dust removal cycle.
func (c *Controller) ExecuteDustRemoval() bool {
	if c.State() != StateConnected {
		return false
	}
	return c.execute(protocol.EncodeDustRemoval())
}
