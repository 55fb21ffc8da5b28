package values

// wbAdjustOffset is fixed by the vendor protocol: the raw wire range [0, 14]
// maps to the user-visible range [-7, +7].
const wbAdjustOffset = 7

// WBAdjustToWire encodes a user-visible white-balance adjustment in
// [-7, +7] to its raw wire value in [0, 14].
func WBAdjustToWire(v int) int {
	return v + wbAdjustOffset
}

// WBAdjustFromWire is the inverse of WBAdjustToWire.
func WBAdjustFromWire(raw int) int {
	return raw - wbAdjustOffset
}
