package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestExposureModeFromWire_UnknownOrdinalIsInvalid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.IntRange(-100, 100).Draw(t, "v")
		mode := ExposureModeFromWire(v)
		if v >= 0 && v <= 8 {
			assert.Equal(t, ExposureMode(v), mode)
		} else {
			assert.Equal(t, ExposureModeInvalid, mode)
		}
	})
}

func TestWhiteBalanceModeFromWire_UnknownOrdinalIsInvalid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.IntRange(-50, 50).Draw(t, "v")
		mode := WhiteBalanceModeFromWire(v)
		if v >= 0 && v <= 17 {
			assert.Equal(t, WhiteBalanceMode(v), mode)
		} else {
			assert.Equal(t, WhiteBalanceInvalid, mode)
		}
	})
}

func TestColorDynamicsModeFromWire_UnknownOrdinalIsInvalid(t *testing.T) {
	assert.Equal(t, ColorDynamicsInvalid, ColorDynamicsModeFromWire(-1))
	assert.Equal(t, ColorDynamicsInvalid, ColorDynamicsModeFromWire(13))
	assert.Equal(t, ColorDynamicsNatural, ColorDynamicsModeFromWire(0))
}
