package engine

import (
	"github.com/tphakala/go-audio-glitch/internal/noise"
	"github.com/tphakala/go-audio-glitch/internal/simdops"
)

// Sign maps x to -1, 0 or +1.
func Sign[F simdops.Float](x F) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Crossing reports whether the sensing value crosses the biased previous
// value: sign(x) > sign(prev + ε + bias). ε keeps a zero threshold on the
// positive side so ties resolve the same way every time.
func Crossing[F simdops.Float](x, prev, bias F) bool {
	return Sign(x) > Sign(prev+simdops.Epsilon[F]()+bias)
}

// Detector decides, sample by sample, whether a crossing happened.
// It draws exactly two uniform values per call (perturbation, then chaos), so
// the noise sequence does not depend on the signal.
type Detector[F simdops.Float] struct {
	rng *noise.Generator
}

// NewDetector creates a detector drawing from rng.
func NewDetector[F simdops.Float](rng *noise.Generator) *Detector[F] {
	return &Detector[F]{rng: rng}
}

// Detect perturbs xSns by perturb*uniform01, tests it against prev and bias,
// then suppresses the result with probability chaos.
// It returns the perturbed sensing value, which becomes the next prev.
func (d *Detector[F]) Detect(xSns, prev, bias, perturb F, chaos float64) (F, bool) {
	xSns += perturb * F(d.rng.Uniform01())

	detected := Crossing(xSns, prev, bias)
	if d.rng.Uniform01() < chaos {
		detected = false
	}

	return xSns, detected
}
