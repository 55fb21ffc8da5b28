package session

import (
	"fmt"

	"github.com/bdube/pslrtether/internal/util"
	"github.com/bdube/pslrtether/protocol"
	"github.com/bdube/pslrtether/scsi"
	"github.com/bdube/pslrtether/values"
)

func intToAFSelectionMode(mode int) values.AFPointSelectionMode {
	return values.AFPointSelectionMode(mode)
}

// isoSteps returns the ISO step table for the connected model given the
// snapshot's custom_sensitivity_steps field, clipped to the model's
// extended ISO bounds. This is the parallel of the vendor library's
// getISOSteps, supplemented from original_source per SPEC_FULL.md.
func (c *Controller) isoSteps(s protocol.Snapshot) []uint32 {
	rec := c.Capability()
	return values.ISOSteps(s.CustomSensitivitySteps, rec.ExtendedISOMin, rec.ExtendedISOMax)
}

// GetISOSteps returns the valid fixed-ISO values for the connected model,
// forcing a status refresh to pick up the camera's current step
// granularity.
func (c *Controller) GetISOSteps() []uint32 {
	snap, ok := c.readAndFire(true)
	if !ok {
		return nil
	}
	return c.isoSteps(snap)
}

// GetApertureLimits returns the connected lens's aperture range as an
// internal/util.Limiter, so callers get Clamp/Check for free the same way
// the rest of this codebase bounds a float range.
func (c *Controller) GetApertureLimits() (util.Limiter, bool) {
	snap, ok := c.readAndFire(true)
	if !ok {
		return util.Limiter{}, false
	}
	return util.Limiter{Min: snap.LensMinAperture.ToFloat(), Max: snap.LensMaxAperture.ToFloat()}, true
}

// GetExtendedISOLimits returns the connected model's extended ISO bounds
// from its capability record.
func (c *Controller) GetExtendedISOLimits() (min, max uint32) {
	rec := c.Capability()
	return rec.ExtendedISOMin, rec.ExtendedISOMax
}

// GetJPEGPropertyLimits returns the ±offset range JPEG tone parameters
// (tone/saturation/hue/contrast/sharpness) accept for the connected
// model.
func (c *Controller) GetJPEGPropertyLimits() (offset int) {
	return c.Capability().JPEGPropertyOffset()
}

// whiteBalanceAdjustLimiter is the fixed [-7, +7] WB adjustment range every
// model shares.
var whiteBalanceAdjustLimiter = util.Limiter{Min: -7, Max: 7}

// GetWhiteBalanceAdjustmentLimits returns the fixed WB adjustment range.
func (c *Controller) GetWhiteBalanceAdjustmentLimits() util.Limiter {
	return whiteBalanceAdjustLimiter
}

// GetBatteryVoltages returns the connected body's populated battery cell
// readings, in volts.
func (c *Controller) GetBatteryVoltages() ([]float64, bool) {
	snap, ok := c.readAndFire(true)
	if !ok {
		return nil, false
	}
	return values.BatteryVoltages(snap.BatteryRaw), true
}

// GetFirmware returns the camera's firmware version string, read directly
// over the transport (it is not part of the status snapshot).
func (c *Controller) GetFirmware() (string, error) {
	if c.State() != StateConnected {
		return "", fmt.Errorf("session: not connected")
	}

	c.transportMu.Lock()
	resp := make([]byte, 16)
	_, err := c.transport.Execute(protocol.EncodeReadDSPInfo(), resp, scsi.DirectionFromDevice, scsi.DefaultTimeout)
	c.transportMu.Unlock()

	if err != nil {
		c.noteDeviceGone(err)
		return "", fmt.Errorf("session: read firmware: %w", err)
	}
	return protocol.DecodeDSPInfo(resp)
}

// GetLensType returns an identifier for the attached lens, derived from the
// status snapshot's lens_id pair. No per-lens-ID name table is available,
// so this reports the raw pair rather than a human-readable lens name; a
// lens_id pair of (0, 0) means no lens is mounted.
func (c *Controller) GetLensType() (string, bool) {
	snap, ok := c.readAndFire(true)
	if !ok {
		return "", false
	}
	if snap.LensIDPrimary == 0 && snap.LensIDSecondary == 0 {
		return "no lens", true
	}
	return fmt.Sprintf("%d-%d", snap.LensIDPrimary, snap.LensIDSecondary), true
}
