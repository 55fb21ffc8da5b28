package values

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRational_InvalidSentinel(t *testing.T) {
	r := InvalidRational[int32]()
	assert.True(t, r.IsInvalid())
	assert.True(t, r.Equal(InvalidRational[int32]()))
}

func TestRational_NaNQuotientInequality(t *testing.T) {
	a := NewRational[int32](1, 0)
	b := NewRational[int32](1, 0)
	assert.False(t, a.IsInvalid())
	assert.True(t, math.IsNaN(a.ToFloat()))
	assert.False(t, a.Equal(b), "a NaN-quotient rational must never equal itself")
}

func TestRational_EqualityMatchesCrossMultiplication(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int32Range(1, 1000).Draw(t, "a")
		b := rapid.Int32Range(1, 1000).Draw(t, "b")
		c := rapid.Int32Range(1, 1000).Draw(t, "c")
		d := rapid.Int32Range(1, 1000).Draw(t, "d")

		r1 := NewRational(a, b)
		r2 := NewRational(c, d)

		crossEqual := int64(a)*int64(d) == int64(b)*int64(c)
		assert.Equal(t, crossEqual, r1.Equal(r2))
	})
}
