package simdops

import (
	"testing"

	"github.com/tphakala/simd/f32"
)

// blockFrames is a typical host block size.
const blockFrames = 512

func newBlock(scale float32) []float32 {
	a := make([]float32, blockFrames)
	for i := range a {
		a[i] = float32(i) * scale
	}
	return a
}

// BenchmarkDirectF32DotProduct measures direct SIMD call overhead.
func BenchmarkDirectF32DotProduct(b *testing.B) {
	a, c := newBlock(0.01), newBlock(0.02)

	b.ReportAllocs()
	for b.Loop() {
		_ = f32.DotProductUnsafe(a, c)
	}
}

// BenchmarkIndirectF32DotProduct measures indirect call through Ops struct.
func BenchmarkIndirectF32DotProduct(b *testing.B) {
	ops := For[float32]()
	a, c := newBlock(0.01), newBlock(0.02)

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(a, c)
	}
}

// BenchmarkDirectF32Interleave2 measures stereo interleaving without indirection.
func BenchmarkDirectF32Interleave2(b *testing.B) {
	left, right := newBlock(0.01), newBlock(-0.01)
	dst := make([]float32, 2*blockFrames)

	b.ReportAllocs()
	for b.Loop() {
		f32.Interleave2(dst, left, right)
	}
}

// BenchmarkIndirectF32Interleave2 measures stereo interleaving through Ops.
func BenchmarkIndirectF32Interleave2(b *testing.B) {
	ops := Float32Ops()
	left, right := newBlock(0.01), newBlock(-0.01)
	dst := make([]float32, 2*blockFrames)

	b.ReportAllocs()
	for b.Loop() {
		ops.Interleave2(dst, left, right)
	}
}
