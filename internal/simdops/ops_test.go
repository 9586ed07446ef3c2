package simdops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor_ReturnsMatchingOps(t *testing.T) {
	assert.Same(t, Float32Ops(), For[float32]())
	assert.Same(t, Float64Ops(), For[float64]())
}

func TestOps_Float32(t *testing.T) {
	ops := For[float32]()
	a := []float32{1, 2, 3, 4, 5}
	b := []float32{-1, -2, -3, -4, -5}

	assert.InDelta(t, float32(15), ops.Sum(a), 1e-6)
	assert.InDelta(t, float32(-55), ops.DotProductUnsafe(a, b), 1e-5)

	scaled := make([]float32, len(a))
	ops.Scale(scaled, a, 0.5)
	assert.InDeltaSlice(t, []float32{0.5, 1, 1.5, 2, 2.5}, scaled, 1e-6)

	dst := make([]float32, 2*len(a))
	ops.Interleave2(dst, a, b)
	assert.Equal(t, []float32{1, -1, 2, -2, 3, -3, 4, -4, 5, -5}, dst)
}

func TestOps_Float64(t *testing.T) {
	ops := For[float64]()
	a := []float64{0.5, 0.25, 0.125}

	assert.InDelta(t, 0.875, ops.Sum(a), 1e-12)
	assert.InDelta(t, 0.25+0.0625+0.015625, ops.DotProductUnsafe(a, a), 1e-12)
}

func TestEpsilon(t *testing.T) {
	e32 := Epsilon[float32]()
	e64 := Epsilon[float64]()

	require.Equal(t, math.Nextafter32(1, 2)-1, e32)
	require.Equal(t, math.Nextafter(1, 2)-1, e64)
	assert.Greater(t, float64(e32), e64)
}

func TestInfo(t *testing.T) {
	assert.NotEmpty(t, Info())
}
