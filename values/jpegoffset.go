package values

// JPEGPropertyOffset returns the offset for a model advertising levels odd
// integer property levels: offset = (levels-1)/2. JPEG tone/saturation/hue/
// contrast/sharpness are all centred at this offset on the wire.
func JPEGPropertyOffset(levels int) int {
	return (levels - 1) / 2
}

// JPEGPropertyToWire converts a user-visible signed value to its wire
// encoding given the model's offset.
func JPEGPropertyToWire(signed, offset int) int {
	return offset + signed
}

// JPEGPropertyFromWire is the inverse of JPEGPropertyToWire.
func JPEGPropertyFromWire(wire, offset int) int {
	return wire - offset
}
