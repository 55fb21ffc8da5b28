package session

import (
	"github.com/bdube/pslrtether/observer"
	"github.com/bdube/pslrtether/protocol"
	"github.com/bdube/pslrtether/status"
	"github.com/bdube/pslrtether/values"
)

// pollAndFire is the status.Cache read the background poller drives: it
// forces nothing (force=false, so it only refreshes once the cache is
// stale), then fans out every topic the resulting diff marks changed.
func (c *Controller) pollAndFire() {
	c.readAndFire(false)
}

func (c *Controller) readAndFire(force bool) (protocol.Snapshot, bool) {
	snap, diff, _, ok := c.cache.Read(force)
	if !ok {
		return protocol.Snapshot{}, false
	}
	observer.FireTopics(c.registry, status.Topics,
		func(topic string) bool { return diff.Changed(topic) },
		func(topic string) any { return c.topicValue(topic, snap) },
	)
	return snap, true
}

// topicValue extracts the value a topic's subscribers receive from snap.
// It is a method rather than a free function because af_point_selection_mode
// must be decoded through the connected model's capability.Record.
func (c *Controller) topicValue(topic string, snap protocol.Snapshot) any {
	switch topic {
	case "exposure_mode":
		return snap.ExposureMode
	case "iso":
		return snap.CurrentISO
	case "aperture":
		return snap.CurrentAperture
	case "shutter_time":
		return snap.CurrentShutterSpeed
	case "exposure_compensation":
		return snap.ExposureCompensation
	case "battery":
		return snap.BatteryRaw
	case "focal_length":
		return snap.Zoom
	case "exposure_value":
		return values.ExposureValue(snap.CurrentAperture.ToFloat(), snap.CurrentShutterSpeed.ToFloat())
	case "af_mode":
		return snap.AFMode
	case "af_point_selection_mode":
		return c.Capability().AFPointSelectionFromWire(snap.AFPointSelectionWire)
	case "selected_af_points":
		return snap.SelectedAFBitmap
	case "color_dynamics":
		return snap.JPEGImageTone
	case "saturation":
		return snap.JPEGSaturation
	case "hue":
		return snap.JPEGHue
	case "contrast":
		return snap.JPEGContrast
	case "sharpness":
		return snap.JPEGSharpness
	case "ae_metering":
		return snap.AEMeteringMode
	case "wb_mode":
		return snap.WhiteBalanceMode
	case "wb_adjust":
		return [2]int{snap.WBAdjustMG, snap.WBAdjustBA}
	case "flash_mode":
		return snap.FlashMode
	case "flash_ec":
		return snap.FlashExposureCompensation
	case "shake_reduction":
		return snap.ShakeReduction
	case "release_mode":
		return snap.ReleaseMode
	default:
		return nil
	}
}

// RegisterConnection subscribes to connect/disconnect transitions; the
// callback receives true on connect, false on disconnect or device-gone.
func (c *Controller) RegisterConnection(cb func(bool)) observer.ID {
	return c.registry.Register("connection", func(v any) { cb(v.(bool)) })
}

// Unregister removes a subscription returned by any Register* method.
func (c *Controller) Unregister(id observer.ID) {
	c.registry.Unregister(id)
}

// RegisterExposureMode subscribes to exposure mode changes.
func (c *Controller) RegisterExposureMode(cb func(any)) observer.ID {
	return c.registry.Register("exposure_mode", cb)
}

// RegisterISO subscribes to current-ISO changes.
func (c *Controller) RegisterISO(cb func(any)) observer.ID {
	return c.registry.Register("iso", cb)
}

// RegisterAperture subscribes to current-aperture changes.
func (c *Controller) RegisterAperture(cb func(any)) observer.ID {
	return c.registry.Register("aperture", cb)
}

// RegisterShutterTime subscribes to current-shutter-speed changes.
func (c *Controller) RegisterShutterTime(cb func(any)) observer.ID {
	return c.registry.Register("shutter_time", cb)
}

// RegisterExposureCompensation subscribes to exposure compensation changes.
func (c *Controller) RegisterExposureCompensation(cb func(any)) observer.ID {
	return c.registry.Register("exposure_compensation", cb)
}

// RegisterBattery subscribes to battery reading changes.
func (c *Controller) RegisterBattery(cb func(any)) observer.ID {
	return c.registry.Register("battery", cb)
}

// RegisterFocalLength subscribes to zoom/focal-length changes.
func (c *Controller) RegisterFocalLength(cb func(any)) observer.ID {
	return c.registry.Register("focal_length", cb)
}

// RegisterExposureValue subscribes to the derived exposure-value changes.
func (c *Controller) RegisterExposureValue(cb func(any)) observer.ID {
	return c.registry.Register("exposure_value", cb)
}

// RegisterAFMode subscribes to autofocus drive mode changes.
func (c *Controller) RegisterAFMode(cb func(any)) observer.ID {
	return c.registry.Register("af_mode", cb)
}

// RegisterAFPointSelectionMode subscribes to AF point selection mode changes.
func (c *Controller) RegisterAFPointSelectionMode(cb func(any)) observer.ID {
	return c.registry.Register("af_point_selection_mode", cb)
}

// RegisterSelectedAFPoints subscribes to the selected AF point bitmap.
func (c *Controller) RegisterSelectedAFPoints(cb func(any)) observer.ID {
	return c.registry.Register("selected_af_points", cb)
}

// RegisterColorDynamics subscribes to JPEG image tone changes.
func (c *Controller) RegisterColorDynamics(cb func(any)) observer.ID {
	return c.registry.Register("color_dynamics", cb)
}

// RegisterSaturation subscribes to JPEG saturation changes.
func (c *Controller) RegisterSaturation(cb func(any)) observer.ID {
	return c.registry.Register("saturation", cb)
}

// RegisterHue subscribes to JPEG hue changes.
func (c *Controller) RegisterHue(cb func(any)) observer.ID {
	return c.registry.Register("hue", cb)
}

// RegisterContrast subscribes to JPEG contrast changes.
func (c *Controller) RegisterContrast(cb func(any)) observer.ID {
	return c.registry.Register("contrast", cb)
}

// RegisterSharpness subscribes to JPEG sharpness changes.
func (c *Controller) RegisterSharpness(cb func(any)) observer.ID {
	return c.registry.Register("sharpness", cb)
}

// RegisterAEMetering subscribes to AE metering mode changes.
func (c *Controller) RegisterAEMetering(cb func(any)) observer.ID {
	return c.registry.Register("ae_metering", cb)
}

// RegisterWhiteBalanceMode subscribes to white balance preset changes.
func (c *Controller) RegisterWhiteBalanceMode(cb func(any)) observer.ID {
	return c.registry.Register("wb_mode", cb)
}

// RegisterWhiteBalanceAdjust subscribes to WB adjustment offset changes.
func (c *Controller) RegisterWhiteBalanceAdjust(cb func(any)) observer.ID {
	return c.registry.Register("wb_adjust", cb)
}

// RegisterFlashMode subscribes to flash mode changes.
func (c *Controller) RegisterFlashMode(cb func(any)) observer.ID {
	return c.registry.Register("flash_mode", cb)
}

// RegisterFlashExposureCompensation subscribes to flash EC changes.
func (c *Controller) RegisterFlashExposureCompensation(cb func(any)) observer.ID {
	return c.registry.Register("flash_ec", cb)
}

// RegisterShakeReduction subscribes to shake reduction state changes.
func (c *Controller) RegisterShakeReduction(cb func(any)) observer.ID {
	return c.registry.Register("shake_reduction", cb)
}

// RegisterReleaseMode subscribes to release/drive mode changes.
func (c *Controller) RegisterReleaseMode(cb func(any)) observer.ID {
	return c.registry.Register("release_mode", cb)
}
