package values

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExposureValue_KnownVector(t *testing.T) {
	ev := ExposureValue(4.0, 1.0/125.0)
	assert.InDelta(t, math.Log2(2000), ev, 1e-9)
	assert.InDelta(t, 10.966, ev, 1e-3)
}

func TestExposureValue_ZeroBelowThreshold(t *testing.T) {
	assert.Equal(t, 0.0, ExposureValue(4.0, 1e-7))
	assert.Equal(t, 0.0, ExposureValue(4.0, 0))
}
