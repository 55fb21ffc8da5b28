package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatteryVoltages_SkipsZeroEntries(t *testing.T) {
	got := BatteryVoltages([4]uint16{760, 0, 755, 0})
	assert.Len(t, got, 2)
	assert.InDeltaSlice(t, []float64{7.6, 7.55}, got, 1e-9)
}

func TestBatteryVoltages_AllZero(t *testing.T) {
	assert.Nil(t, BatteryVoltages([4]uint16{0, 0, 0, 0}))
}
