package engine

import (
	"math"

	"github.com/tphakala/go-audio-glitch/internal/filter"
)

// Controls holds the five normalized (0..1) parameter values as set by a host.
type Controls struct {
	Division  float64
	Bias      float64
	Chaos     float64
	Perturb   float64
	SensingLP float64
}

// Settings are the operating values derived from Controls for one block.
type Settings struct {
	Divisions int     // segment count N in [MinDivisions, MaxSegments]
	Bias      float64 // threshold bias B
	Chaos     float64 // suppression probability C
	Perturb   float64 // noise amplitude P
	CutoffHz  float64 // sensing filter cutoff
}

// MapControls converts raw controls to operating settings at sampleRate.
func MapControls(c Controls, sampleRate float64) Settings {
	return Settings{
		Divisions: DivisionCount(c.Division),
		Bias:      BiasThreshold(c.Bias),
		Chaos:     ChaosProbability(c.Chaos),
		Perturb:   PerturbAmplitude(c.Perturb),
		CutoffHz:  filter.SensingCutoff(c.SensingLP, sampleRate),
	}
}

// DivisionCount maps the division control to floor(division*11.5 + 1),
// clamped to [MinDivisions, MaxSegments].
func DivisionCount(division float64) int {
	v := division*divisionScale + divisionOffset
	if math.IsNaN(v) || v < MinDivisions {
		return MinDivisions
	}
	if v >= MaxSegments {
		return MaxSegments
	}
	return int(v)
}

// BiasThreshold maps the bias control to the detection threshold offset.
// With r = bias*2 - 1 the result is -(r^6) for negative r and r^12 otherwise,
// so small deflections barely move the threshold.
func BiasThreshold(bias float64) float64 {
	r := bias*biasScale - biasOffset
	b3 := r * r * r
	if b3 < 0 {
		return -(b3 * b3)
	}
	b6 := b3 * b3
	return b6 * b6
}

// ChaosProbability maps the chaos control to a suppression probability.
func ChaosProbability(chaos float64) float64 {
	return chaos * chaos
}

// PerturbAmplitude maps the perturb control to the sensing noise amplitude.
func PerturbAmplitude(perturb float64) float64 {
	return perturb / perturbDivisor
}

// LatencyCap returns the maximum output queue length retained after an
// interlace: one cycle of a 20 Hz signal, ceil(sampleRate/20).
func LatencyCap(sampleRate float64) int {
	return int(math.Ceil(sampleRate / latencyCapHz))
}
