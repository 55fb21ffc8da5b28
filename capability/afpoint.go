package capability

import "github.com/bdube/pslrtether/values"

// afPointSelection11 maps the wire ordinal to AFPointSelectionMode for an
// 11-point model; all other ordinals decode to invalid.
var afPointSelection11 = map[int]values.AFPointSelectionMode{
	0: values.AFPointSelectionAuto5,
	1: values.AFPointSelectionSelect1,
	2: values.AFPointSelectionSpot,
	3: values.AFPointSelectionAuto11,
}

var afPointSelection11Inverse = func() map[values.AFPointSelectionMode]int {
	m := make(map[values.AFPointSelectionMode]int, len(afPointSelection11))
	for wire, mode := range afPointSelection11 {
		m[mode] = wire
	}
	return m
}()

// AFPointSelectionFromWire decodes the wire ordinal for this model's AF
// point count. The 27-point model's decode is the identity mapping; the
// 11-point model uses the small four-entry table above.
func (r Record) AFPointSelectionFromWire(wire int) values.AFPointSelectionMode {
	if r.AFPointCount == 11 {
		if mode, ok := afPointSelection11[wire]; ok {
			return mode
		}
		return values.AFPointSelectionInvalid
	}
	switch values.AFPointSelectionMode(wire) {
	case values.AFPointSelectionSpot, values.AFPointSelectionSelect1,
		values.AFPointSelectionSelect9, values.AFPointSelectionSelect25,
		values.AFPointSelectionSelect27, values.AFPointSelectionAuto9,
		values.AFPointSelectionAuto27, values.AFPointSelectionAuto5,
		values.AFPointSelectionAuto11:
		return values.AFPointSelectionMode(wire)
	default:
		return values.AFPointSelectionInvalid
	}
}

// AFPointSelectionToWire encodes mode to the wire ordinal for this model's
// AF point count. ok is false when the 11-point model is given a mode
// outside its four-entry table; the 27-point model's encode never fails.
//
// The 27-point model's encode is intentionally asymmetric with its decode:
// it only recognizes AUTO_9, SELECT_1, SPOT and AUTO_27, mapping everything
// else to SELECT_1's wire value. This mirrors the camera's own behavior
// exactly and is not a bug to be fixed.
func (r Record) AFPointSelectionToWire(mode values.AFPointSelectionMode) (wire int, ok bool) {
	if r.AFPointCount == 11 {
		wire, ok = afPointSelection11Inverse[mode]
		return wire, ok
	}
	switch mode {
	case values.AFPointSelectionAuto9:
		return 0, true
	case values.AFPointSelectionSelect1:
		return 1, true
	case values.AFPointSelectionSpot:
		return 2, true
	case values.AFPointSelectionAuto27:
		return 3, true
	default:
		return 1, true
	}
}
