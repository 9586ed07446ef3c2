// Package testutil provides reusable test helper functions for glitch effect tests.
package testutil

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-audio-glitch/internal/simdops"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance   = 1e-10
	Float32Tolerance   = 1e-6
	FrequencyTolerance = 0.02 // relative
)

// testSeed seeds the signal generators so tests are repeatable.
const testSeed = 0x5eed

// Sine returns n samples of a sine wave at freq Hz.
func Sine[F simdops.Float](n int, freq, sampleRate, amplitude float64) []F {
	out := make([]F, n)
	omega := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = F(amplitude * math.Sin(omega*float64(i)))
	}
	return out
}

// Noise returns n samples of uniform white noise in [-amplitude, amplitude).
func Noise[F simdops.Float](n int, amplitude float64) []F {
	rng := rand.New(rand.NewPCG(testSeed, 0))
	out := make([]F, n)
	for i := range out {
		out[i] = F(amplitude * (2*rng.Float64() - 1))
	}
	return out
}

// Ramp returns n distinct samples start, start+step, ...
func Ramp[F simdops.Float](n int, start, step float64) []F {
	out := make([]F, n)
	for i := range out {
		out[i] = F(start + step*float64(i))
	}
	return out
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F simdops.Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange[F simdops.Float](t *testing.T, s []F, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if f < minVal || f > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, f, minVal, maxVal)
		}
	}
	return true
}

// AssertAllZero verifies that every element is exactly 0.
func AssertAllZero[F simdops.Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero sample", "s[%d]=%v", i, v)
		}
	}
	return true
}

// AssertSameMultiset verifies that got is a permutation of want.
func AssertSameMultiset[F simdops.Float](t *testing.T, want, got []F, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return false
	}
	counts := make(map[F]int, len(want))
	for _, v := range want {
		counts[v]++
	}
	for i, v := range got {
		counts[v]--
		if counts[v] < 0 {
			return assert.Fail(t, "unexpected sample", "got[%d]=%v not in input (or duplicated)", i, v)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertMonotonicNonIncreasing verifies s[i] <= s[i-1] for all i.
func AssertMonotonicNonIncreasing(t *testing.T, s []int, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] > s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%d > s[%d]=%d", i, s[i], i-1, s[i-1])
		}
	}
	return true
}
