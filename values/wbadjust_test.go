package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestWBAdjustRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.IntRange(-7, 7).Draw(t, "v")
		raw := WBAdjustToWire(v)
		assert.GreaterOrEqual(t, raw, 0)
		assert.LessOrEqual(t, raw, 14)
		assert.Equal(t, v, WBAdjustFromWire(raw))
	})
}
