// Package protocol is the stateless vendor command codec: it turns
// logical operations into CDB byte patterns and opaque payloads, and
// decodes the camera's responses back into the types in package values.
// The operation ids and CDB layouts in cdb.go are this package's own
// internally consistent table; they are not the vendor's numbering.
package protocol

import "github.com/bdube/pslrtether/values"

// Snapshot is the full decoded status record the camera reports on a
// get-status transaction. It is immutable once constructed; a refresh
// always produces a new Snapshot rather than mutating an old one.
type Snapshot struct {
	ExposureMode             values.ExposureMode
	AFMode                   values.AFMode
	// AFPointSelectionWire is the raw wire ordinal for AF point selection.
	// Its meaning is model-dependent (capability.Record.AFPointCount), so
	// decoding it into values.AFPointSelectionMode requires the connected
	// model's capability.Record and happens one layer up, in session.
	AFPointSelectionWire     int
	SelectedAFBitmap         uint32
	FocusedAFBitmap          uint32
	CurrentISO               uint32
	FixedISO                 uint32
	AutoISOMin               uint32
	AutoISOMax               uint32
	CurrentAperture          values.Rational[uint32]
	LensMinAperture          values.Rational[uint32]
	LensMaxAperture          values.Rational[uint32]
	CurrentShutterSpeed      values.Rational[uint32]
	ExposureCompensation     values.Rational[int32]
	FlashExposureCompensation int32 // signed, 1/256-EV units
	AEMeteringMode           values.AEMeteringMode
	WhiteBalanceMode         values.WhiteBalanceMode
	WBAdjustMG               int
	WBAdjustBA               int
	FlashMode                values.FlashMode
	Zoom                     values.Rational[uint32]
	ImageFormat              int
	JPEGQuality              int
	JPEGResolution           int
	JPEGImageTone            int
	JPEGSaturation           int
	JPEGHue                  int
	JPEGContrast             int
	JPEGSharpness            int
	LensIDPrimary            int
	LensIDSecondary          int
	BatteryRaw               [4]uint16
	ShakeReduction           bool
	BufferMask               uint32
	CustomEVSteps            values.CustomSensitivitySteps
	CustomSensitivitySteps   values.CustomSensitivitySteps
	ReleaseMode              values.ReleaseMode
}
