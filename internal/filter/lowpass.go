// Package filter provides the sensing filter that conditions the detector input.
package filter

import (
	"math"

	"github.com/tphakala/go-audio-glitch/internal/simdops"
)

const (
	// nyquistDivisor converts a sample rate to its Nyquist frequency.
	nyquistDivisor = 2.0
)

// Lowpass advances a one-pole low-pass filter by one sample.
//
//	y = prev + (dt / (1/cutoffHz)) * (x - prev)
//
// The filter keeps no state; the caller owns prev. A cutoff of 0 makes the
// coefficient 0 and the filter holds prev. Cutoffs above the sample rate
// make the coefficient exceed 1 and the filter overshoots, which the glitch
// effect tolerates.
func Lowpass[F simdops.Float](x, cutoffHz, dt, prev F) F {
	return prev + (dt/(1/cutoffHz))*(x-prev)
}

// SensingCutoff maps the normalized sensing filter control (0..1) to a
// cutoff in Hz: ((1 - sensingLP) * nyquist)^0.75.
//
// The fractional power is taken as a double square root of the cube so that
// a non-negative base always yields a non-negative cutoff.
func SensingCutoff(sensingLP, sampleRate float64) float64 {
	cut := (1 - sensingLP) * (sampleRate / nyquistDivisor)
	if cut <= 0 || math.IsNaN(cut) {
		return 0
	}
	return math.Sqrt(math.Sqrt(cut * cut * cut))
}
