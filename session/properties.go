package session

import (
	"github.com/bdube/pslrtether/internal/util"
	"github.com/bdube/pslrtether/protocol"
	"github.com/bdube/pslrtether/scsi"
	"github.com/bdube/pslrtether/values"
)

// writeProperty implements the canonical property-write shape: force a
// refresh, bail out as a no-op if the new value already matches, consult
// validate for capability-table membership, then issue the set CDB under
// the transport mutex. Every failure mode — no-op, invalid, I/O failure —
// collapses to a single false return, matching the vendor's write
// semantics exactly.
func (c *Controller) writeProperty(noOp func(protocol.Snapshot) bool, valid func(protocol.Snapshot) bool, cdb []byte) bool {
	snap, ok := c.readAndFire(true)
	if !ok {
		return false
	}
	if noOp(snap) {
		return false
	}
	if valid != nil && !valid(snap) {
		return false
	}
	if !c.execute(cdb) {
		return false
	}
	c.readAndFire(true)
	return true
}

// execute sends cdb under the transport mutex and reports whether it
// succeeded, translating a device-gone failure into the reconnect path.
func (c *Controller) execute(cdb []byte) bool {
	c.transportMu.Lock()
	_, err := c.transport.Execute(cdb, nil, scsi.DirectionToDevice, scsi.DefaultTimeout)
	c.transportMu.Unlock()

	if err != nil {
		if scsi.IsDeviceGone(err) {
			go c.handleDeviceGone()
		}
		return false
	}
	return true
}

// SetFixedISO sets a fixed ISO value if it is a member of the current
// capability ISO step table.
func (c *Controller) SetFixedISO(v uint32) bool {
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return s.FixedISO == v },
		func(s protocol.Snapshot) bool {
			for _, step := range c.isoSteps(s) {
				if step == v {
					return true
				}
			}
			return false
		},
		protocol.EncodeSetFixedISO(v),
	)
}

// SetAutoISORange sets the camera's auto-ISO bounds.
func (c *Controller) SetAutoISORange(lo, hi uint32) bool {
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return s.AutoISOMin == lo && s.AutoISOMax == hi },
		nil,
		protocol.EncodeSetAutoISORange(lo, hi),
	)
}

// SetAperture sets the lens aperture, rejecting a value outside the
// connected lens's min/max range.
func (c *Controller) SetAperture(num, den uint32) bool {
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return s.CurrentAperture.Num == num && s.CurrentAperture.Den == den },
		func(s protocol.Snapshot) bool {
			limiter := util.Limiter{Min: s.LensMinAperture.ToFloat(), Max: s.LensMaxAperture.ToFloat()}
			return limiter.Check(float64(num) / float64(den))
		},
		protocol.EncodeSetAperture(num, den),
	)
}

// SetShutter sets the shutter speed.
func (c *Controller) SetShutter(num, den uint32) bool {
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return s.CurrentShutterSpeed.Num == num && s.CurrentShutterSpeed.Den == den },
		nil,
		protocol.EncodeSetShutter(num, den),
	)
}

// SetExposureCompensation sets the exposure compensation rational.
func (c *Controller) SetExposureCompensation(num, den int32) bool {
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return s.ExposureCompensation.Num == num && s.ExposureCompensation.Den == den },
		nil,
		protocol.EncodeSetEC(num, den),
	)
}

// SetAFMode sets the autofocus drive mode.
func (c *Controller) SetAFMode(mode int) bool {
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return int(s.AFMode) == mode },
		func(protocol.Snapshot) bool { return mode >= 0 && mode <= 3 },
		protocol.EncodeSetAFMode(mode),
	)
}

// SetAFPointSelection sets the AF point selection mode, encoded for the
// connected model's AF point count. The wire ordinal the capability table
// resolves the mode to is what goes out on the CDB, not the mode ordinal
// itself — the two only coincide for the 27-point table's identity cases.
func (c *Controller) SetAFPointSelection(mode int) bool {
	wire, ok := c.Capability().AFPointSelectionToWire(intToAFSelectionMode(mode))
	if !ok {
		return false
	}
	return c.writeProperty(
		func(s protocol.Snapshot) bool {
			return c.Capability().AFPointSelectionFromWire(s.AFPointSelectionWire) == intToAFSelectionMode(mode)
		},
		nil,
		protocol.EncodeSetAFPointSelection(wire),
	)
}

// SelectAFPoints sets the active AF point bitmap from row-major indices.
func (c *Controller) SelectAFPoints(indices []int) bool {
	mask := values.EncodeBitmap(indices, c.Capability().AFRemap)
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return s.SelectedAFBitmap == mask },
		nil,
		protocol.EncodeSelectAFPoints(mask),
	)
}

// SetJPEGTone/Saturation/Hue/Contrast/Sharpness set the JPEG tone
// parameters; a value outside the connected model's ±offset range is
// rejected (false, no CDB sent).

func (c *Controller) SetJPEGTone(v int) bool {
	return c.setJPEGProperty(v,
		func(s protocol.Snapshot) int { return s.JPEGImageTone },
		protocol.EncodeSetJPEGTone,
	)
}

func (c *Controller) SetSaturation(v int) bool {
	return c.setJPEGProperty(v,
		func(s protocol.Snapshot) int { return s.JPEGSaturation },
		protocol.EncodeSetSaturation,
	)
}

func (c *Controller) SetHue(v int) bool {
	return c.setJPEGProperty(v,
		func(s protocol.Snapshot) int { return s.JPEGHue },
		protocol.EncodeSetHue,
	)
}

func (c *Controller) SetContrast(v int) bool {
	return c.setJPEGProperty(v,
		func(s protocol.Snapshot) int { return s.JPEGContrast },
		protocol.EncodeSetContrast,
	)
}

func (c *Controller) SetSharpness(v int) bool {
	return c.setJPEGProperty(v,
		func(s protocol.Snapshot) int { return s.JPEGSharpness },
		protocol.EncodeSetSharpness,
	)
}

func (c *Controller) setJPEGProperty(v int, current func(protocol.Snapshot) int, encode func(int) []byte) bool {
	offset := c.Capability().JPEGPropertyOffset()
	wire := offset + v
	limiter := util.Limiter{Min: float64(-offset), Max: float64(offset)}
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return current(s) == wire },
		func(protocol.Snapshot) bool { return limiter.Check(float64(v)) },
		encode(wire),
	)
}

// SetAEMeteringMode sets the AE metering pattern.
func (c *Controller) SetAEMeteringMode(mode int) bool {
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return int(s.AEMeteringMode) == mode },
		func(protocol.Snapshot) bool { return mode >= 0 && mode <= 2 },
		protocol.EncodeSetAEMetering(mode),
	)
}

// SetWhiteBalance sets the white balance preset.
func (c *Controller) SetWhiteBalance(mode int) bool {
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return int(s.WhiteBalanceMode) == mode },
		func(protocol.Snapshot) bool { return mode >= 0 && mode <= 17 },
		protocol.EncodeSetWhiteBalance(mode),
	)
}

// SetWhiteBalanceAdjustment sets the WB adjustment offsets, each in
// [-7, +7].
func (c *Controller) SetWhiteBalanceAdjustment(mode, mg, ba int) bool {
	mgRaw := mg + 7
	baRaw := ba + 7
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return s.WBAdjustMG == mgRaw && s.WBAdjustBA == baRaw },
		func(protocol.Snapshot) bool {
			return whiteBalanceAdjustLimiter.Check(float64(mg)) && whiteBalanceAdjustLimiter.Check(float64(ba))
		},
		protocol.EncodeSetWBAdjust(mode, mgRaw, baRaw),
	)
}

// SetFlashMode sets the flash firing mode.
func (c *Controller) SetFlashMode(mode int) bool {
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return int(s.FlashMode) == mode },
		func(protocol.Snapshot) bool { return mode >= 0 && mode <= 10 },
		protocol.EncodeSetFlashMode(mode),
	)
}

// SetFlashExposureCompensation sets the flash EC, in 1/256-EV units.
func (c *Controller) SetFlashExposureCompensation(v int32) bool {
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return s.FlashExposureCompensation == v },
		nil,
		protocol.EncodeSetFlashEC(v),
	)
}

// SetReleaseMode sets the shutter release/drive mode.
func (c *Controller) SetReleaseMode(mode int) bool {
	return c.writeProperty(
		func(s protocol.Snapshot) bool { return int(s.ReleaseMode) == mode },
		func(protocol.Snapshot) bool { return mode >= 0 && mode <= 8 },
		protocol.EncodeSetReleaseMode(mode),
	)
}
