package capability

import (
	"testing"

	"github.com/bdube/pslrtether/values"
	"github.com/stretchr/testify/assert"
)

func TestLookup_UnknownModelFallsBackToDefault(t *testing.T) {
	r := Lookup("some camera nobody has seen")
	assert.Equal(t, defaultRecord, r)
}

func TestLookup_KnownModel(t *testing.T) {
	r := Lookup("K-3")
	assert.Equal(t, 27, r.AFPointCount)
	assert.False(t, r.LimitedModel)
}

func TestJPEGPropertyOffset(t *testing.T) {
	r := Lookup("K-3")
	assert.Equal(t, 4, r.JPEGPropertyOffset())
}

func TestAFPointSelection11_TableAndInverse(t *testing.T) {
	r := Lookup("K-5")
	assert.Equal(t, values.AFPointSelectionAuto5, r.AFPointSelectionFromWire(0))
	assert.Equal(t, values.AFPointSelectionSelect1, r.AFPointSelectionFromWire(1))
	assert.Equal(t, values.AFPointSelectionSpot, r.AFPointSelectionFromWire(2))
	assert.Equal(t, values.AFPointSelectionAuto11, r.AFPointSelectionFromWire(3))
	assert.Equal(t, values.AFPointSelectionInvalid, r.AFPointSelectionFromWire(99))

	wire, ok := r.AFPointSelectionToWire(values.AFPointSelectionSpot)
	assert.True(t, ok)
	assert.Equal(t, 2, wire)

	_, ok = r.AFPointSelectionToWire(values.AFPointSelectionAuto27)
	assert.False(t, ok, "27-point-only mode has no 11-point wire encoding")
}

func TestAFPointSelection27_EncodeAsymmetry(t *testing.T) {
	r := Lookup("K-3")

	assert.Equal(t, values.AFPointSelectionAuto9, r.AFPointSelectionFromWire(int(values.AFPointSelectionAuto9)))

	wire, ok := r.AFPointSelectionToWire(values.AFPointSelectionAuto9)
	assert.True(t, ok)
	assert.Equal(t, 0, wire)

	wire, ok = r.AFPointSelectionToWire(values.AFPointSelectionSelect1)
	assert.True(t, ok)
	assert.Equal(t, 1, wire)

	wire, ok = r.AFPointSelectionToWire(values.AFPointSelectionSpot)
	assert.True(t, ok)
	assert.Equal(t, 2, wire)

	wire, ok = r.AFPointSelectionToWire(values.AFPointSelectionAuto27)
	assert.True(t, ok)
	assert.Equal(t, 3, wire)

	wire, ok = r.AFPointSelectionToWire(values.AFPointSelectionSelect9)
	assert.True(t, ok)
	assert.Equal(t, 1, wire, "unrecognized 27-point modes collapse to SELECT_1's wire value")
}

func TestWireBufferType_PEFAndDNGAreFixed(t *testing.T) {
	r := Lookup("K-3")
	assert.Equal(t, 0, r.WireBufferType(ImageFormatPEF, 0))
	assert.Equal(t, 1, r.WireBufferType(ImageFormatDNG, 0))
}

func TestWireBufferType_JPEGAddsQuality(t *testing.T) {
	r := Lookup("K-3")
	assert.Equal(t, jpegBufferTypeBase, r.WireBufferType(ImageFormatJPEG, 0))
	assert.Equal(t, jpegBufferTypeBase+3, r.WireBufferType(ImageFormatJPEG, 3))
}
