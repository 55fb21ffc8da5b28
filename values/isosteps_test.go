package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestISOSteps_DefaultTableClipping(t *testing.T) {
	got := ISOSteps(SensitivityStepsDefault, 200, 51200)
	assert.Equal(t, []uint32{200, 400, 800, 1600, 3200, 6400, 12800, 25600, 51200}, got)
}

func TestISOSteps_1EVTableFullRange(t *testing.T) {
	got := ISOSteps(SensitivityStepsEV1, 80, 102400)
	assert.Len(t, got, 32)
	assert.Equal(t, uint32(80), got[0])
	assert.Equal(t, uint32(102400), got[len(got)-1])
}

func TestISOSteps_NarrowRangeCanBeEmpty(t *testing.T) {
	got := ISOSteps(SensitivityStepsDefault, 200000, 300000)
	assert.Nil(t, got)
}
