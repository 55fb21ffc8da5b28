package values

// CustomSensitivitySteps selects which of the three hard-coded ISO tables
// applies; it mirrors the camera's own custom_sensitivity_steps /
// custom_ev_steps status fields.
type CustomSensitivitySteps int

const (
	SensitivityStepsDefault CustomSensitivitySteps = iota
	SensitivityStepsEV1
	SensitivityStepsEV1_2
)

var isoTable1EV = []uint32{
	80, 100, 125, 160, 200, 250, 320, 400, 500, 640, 800, 1000, 1250, 1600, 2000, 2500,
	3200, 4000, 5000, 6400, 8000, 10000, 12800, 16000, 20000, 25600, 32000, 40000, 51200,
	64000, 80000, 102400,
}

var isoTableHalfEV = []uint32{
	100, 140, 200, 280, 400, 560, 800, 1100, 1600, 2200, 3200, 4500, 6400, 9000, 12800,
	18000, 25600, 36000, 51200, 72000, 102400,
}

var isoTableDefault = []uint32{
	100, 200, 400, 800, 1600, 3200, 6400, 12800, 25600, 51200, 102400,
}

// ISOSteps returns the ISO table for the given step selector, clipped to
// the connected model's extended ISO range [extMin, extMax]. Since the
// camera cannot distinguish base from extended ISO being in effect, the
// extended range is always used for clipping, matching the vendor
// implementation.
func ISOSteps(steps CustomSensitivitySteps, extMin, extMax uint32) []uint32 {
	var table []uint32
	switch steps {
	case SensitivityStepsEV1:
		table = isoTable1EV
	case SensitivityStepsEV1_2:
		table = isoTableHalfEV
	default:
		table = isoTableDefault
	}

	minIdx := 0
	maxIdx := len(table) - 1
	for i, v := range table {
		if v < extMin {
			minIdx = i + 1
		}
		if v <= extMax {
			maxIdx = i
		}
	}
	if minIdx > maxIdx {
		return nil
	}

	out := make([]uint32, maxIdx-minIdx+1)
	copy(out, table[minIdx:maxIdx+1])
	return out
}
