package values

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRemap27_IsAPermutationOfRowMajorIndices(t *testing.T) {
	seen := make(map[int]bool, 27)
	for _, idx := range Remap27 {
		assert.False(t, seen[idx], "row-major index %d produced by more than one wire bit", idx)
		seen[idx] = true
	}
	assert.Len(t, seen, 27)
	for i := 0; i < 27; i++ {
		assert.True(t, seen[i], "row-major index %d never produced by any wire bit", i)
	}
}

func TestDecodeBitmap27_KnownVectors(t *testing.T) {
	assert.Equal(t, []int{10}, DecodeBitmap(1<<1, Remap27))
	assert.Equal(t, []int{16}, DecodeBitmap(1<<0, Remap27))
}

func TestEncodeBitmap27_KnownVectors(t *testing.T) {
	assert.Equal(t, uint32(1<<1), EncodeBitmap([]int{10}, Remap27))
	assert.Equal(t, uint32(1<<0), EncodeBitmap([]int{16}, Remap27))
}

func TestBitmapRoundTrip11Point(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		mask := uint32(rapid.IntRange(0, (1<<11)-1).Draw(t, "mask"))
		decoded := DecodeBitmap(mask, Identity11)
		reencoded := EncodeBitmap(decoded, Identity11)
		assert.Equal(t, mask, reencoded)
	})
}

func TestBitmapRoundTrip27Point(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		mask := uint32(rapid.IntRange(0, (1<<27)-1).Draw(t, "mask"))
		decoded := DecodeBitmap(mask, Remap27)
		reencoded := EncodeBitmap(decoded, Remap27)
		assert.Equal(t, mask, reencoded)
		assert.True(t, sort.IntsAreSorted(decoded))
	})
}
