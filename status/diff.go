package status

import "github.com/bdube/pslrtether/protocol"

// Topics lists the fan-out topics in declaration order; this is also the
// order diffSnapshots walks them, and the order the observer registry
// fans out across topics for a given generation.
var Topics = []string{
	"exposure_mode",
	"iso",
	"aperture",
	"shutter_time",
	"exposure_compensation",
	"battery",
	"focal_length",
	"exposure_value",
	"af_mode",
	"af_point_selection_mode",
	"selected_af_points",
	"color_dynamics",
	"saturation",
	"hue",
	"contrast",
	"sharpness",
	"ae_metering",
	"wb_mode",
	"wb_adjust",
	"flash_mode",
	"flash_ec",
	"shake_reduction",
	"release_mode",
}

// diffSnapshots reports which topics changed between prev and cur. A nil
// prev (first successful read) is treated as "everything changed" so the
// very first reading still fans out once per topic.
func diffSnapshots(prev, cur *protocol.Snapshot) Diff {
	d := make(Diff, len(Topics))
	changed := func(same bool) bool { return prev == nil || !same }

	d["exposure_mode"] = changed(prev != nil && prev.ExposureMode == cur.ExposureMode)
	d["iso"] = changed(prev != nil && prev.FixedISO == cur.FixedISO && prev.CurrentISO == cur.CurrentISO &&
		prev.AutoISOMin == cur.AutoISOMin && prev.AutoISOMax == cur.AutoISOMax)
	d["aperture"] = changed(prev != nil && prev.CurrentAperture.Equal(cur.CurrentAperture))
	d["shutter_time"] = changed(prev != nil && prev.CurrentShutterSpeed.Equal(cur.CurrentShutterSpeed))
	d["exposure_compensation"] = changed(prev != nil && prev.ExposureCompensation.Equal(cur.ExposureCompensation))
	d["battery"] = changed(prev != nil && prev.BatteryRaw == cur.BatteryRaw)
	d["focal_length"] = changed(prev != nil && prev.Zoom.Equal(cur.Zoom))
	d["exposure_value"] = changed(prev != nil && prev.CurrentAperture.Equal(cur.CurrentAperture) && prev.CurrentShutterSpeed.Equal(cur.CurrentShutterSpeed))
	d["af_mode"] = changed(prev != nil && prev.AFMode == cur.AFMode)
	d["af_point_selection_mode"] = changed(prev != nil && prev.AFPointSelectionWire == cur.AFPointSelectionWire)
	d["selected_af_points"] = changed(prev != nil && prev.SelectedAFBitmap == cur.SelectedAFBitmap)
	d["color_dynamics"] = changed(prev != nil && prev.JPEGImageTone == cur.JPEGImageTone)
	d["saturation"] = changed(prev != nil && prev.JPEGSaturation == cur.JPEGSaturation)
	d["hue"] = changed(prev != nil && prev.JPEGHue == cur.JPEGHue)
	d["contrast"] = changed(prev != nil && prev.JPEGContrast == cur.JPEGContrast)
	d["sharpness"] = changed(prev != nil && prev.JPEGSharpness == cur.JPEGSharpness)
	d["ae_metering"] = changed(prev != nil && prev.AEMeteringMode == cur.AEMeteringMode)
	d["wb_mode"] = changed(prev != nil && prev.WhiteBalanceMode == cur.WhiteBalanceMode)
	d["wb_adjust"] = changed(prev != nil && prev.WBAdjustMG == cur.WBAdjustMG && prev.WBAdjustBA == cur.WBAdjustBA)
	d["flash_mode"] = changed(prev != nil && prev.FlashMode == cur.FlashMode)
	d["flash_ec"] = changed(prev != nil && prev.FlashExposureCompensation == cur.FlashExposureCompensation)
	d["shake_reduction"] = changed(prev != nil && prev.ShakeReduction == cur.ShakeReduction)
	d["release_mode"] = changed(prev != nil && prev.ReleaseMode == cur.ReleaseMode)

	return d
}

// Changed reports whether topic is marked changed in d. A nil Diff (no
// refresh occurred, or reading served from cache) changed nothing.
func (d Diff) Changed(topic string) bool {
	return d != nil && d[topic]
}
