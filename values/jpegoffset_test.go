package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestJPEGPropertyOffset(t *testing.T) {
	assert.Equal(t, 2, JPEGPropertyOffset(5))
	assert.Equal(t, 4, JPEGPropertyOffset(9))
}

func TestJPEGPropertyRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		levels := rapid.IntRange(1, 99).Filter(func(n int) bool { return n%2 == 1 }).Draw(t, "levels")
		offset := JPEGPropertyOffset(levels)
		s := rapid.IntRange(-offset, offset).Draw(t, "s")

		wire := JPEGPropertyToWire(s, offset)
		assert.Equal(t, s, JPEGPropertyFromWire(wire, offset))
	})
}
