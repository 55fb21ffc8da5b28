package values

import "math"

// minShutterSeconds is the shortest shutter time this formula treats as
// nonzero; below it the denominator is too close to zero to trust and EV
// is reported as 0 rather than +Inf.
const minShutterSeconds = 1e-6

// ExposureValue computes EV = log2(aperture^2 / shutterSeconds), returning 0
// when shutterSeconds is at or below minShutterSeconds. ISO-normalised EV is
// a documented alternative in the vendor's own notes but is not computed
// here.
func ExposureValue(aperture, shutterSeconds float64) float64 {
	if shutterSeconds <= minShutterSeconds {
		return 0
	}
	return math.Log2(aperture * aperture / shutterSeconds)
}
