// Package noise provides the deterministic pseudo-random source used by the
// crossing detector for perturbation noise and chaos gating.
package noise

import (
	"math"
	"math/bits"
	"math/rand/v2"
)

// SplitMix64 and xoshiro256+ constants.
const (
	splitMixGamma = 0x9e3779b97f4a7c15
	splitMixMul1  = 0xbf58476d1ce4e5b9
	splitMixMul2  = 0x94d049bb133111eb

	xoshiroShift  = 17
	xoshiroRotate = 45
)

// DefaultSeed is the seed every effect instance starts from.
const DefaultSeed uint64 = 69_420

// largestBelowOne is the biggest float64 strictly less than 1.
var largestBelowOne = math.Nextafter(1, 0)

// Xoshiro256Plus is the xoshiro256+ generator. It is fast and non-cryptographic.
// The state is expanded from a 64-bit seed with SplitMix64, so two generators
// built from the same seed produce identical sequences.
type Xoshiro256Plus struct {
	s    [4]uint64
	seed uint64
}

var _ rand.Source = (*Xoshiro256Plus)(nil)

// NewXoshiro256Plus creates a generator seeded from seed.
func NewXoshiro256Plus(seed uint64) *Xoshiro256Plus {
	x := &Xoshiro256Plus{}
	x.Seed(seed)
	return x
}

// Seed resets the generator state from seed.
func (x *Xoshiro256Plus) Seed(seed uint64) {
	x.seed = seed
	sm := seed
	for i := range x.s {
		sm += splitMixGamma
		z := sm
		z = (z ^ (z >> 30)) * splitMixMul1
		z = (z ^ (z >> 27)) * splitMixMul2
		x.s[i] = z ^ (z >> 31)
	}
}

// Uint64 returns the next 64 random bits.
func (x *Xoshiro256Plus) Uint64() uint64 {
	result := x.s[0] + x.s[3]
	t := x.s[1] << xoshiroShift

	x.s[2] ^= x.s[0]
	x.s[3] ^= x.s[1]
	x.s[1] ^= x.s[2]
	x.s[0] ^= x.s[3]

	x.s[2] ^= t
	x.s[3] = bits.RotateLeft64(x.s[3], xoshiroRotate)

	return result
}

// Generator draws uniform values from a rand.Source.
type Generator struct {
	src  rand.Source
	base *Xoshiro256Plus // non-nil when the generator owns a reseedable source
}

// NewGenerator creates a generator over a fresh xoshiro256+ source.
func NewGenerator(seed uint64) *Generator {
	x := NewXoshiro256Plus(seed)
	return &Generator{src: x, base: x}
}

// NewGeneratorFrom wraps an arbitrary source.
// Reset has no effect on generators built this way.
func NewGeneratorFrom(src rand.Source) *Generator {
	return &Generator{src: src}
}

// Uniform01 returns a value in [0, 1), computed as a 64-bit draw divided by
// the largest uint64.
func (g *Generator) Uniform01() float64 {
	u := float64(g.src.Uint64()) / float64(math.MaxUint64)
	if u >= 1 {
		return largestBelowOne
	}
	return u
}

// Reset restores the initial sequence of an owned source.
func (g *Generator) Reset() {
	if g.base != nil {
		g.base.Seed(g.base.seed)
	}
}
