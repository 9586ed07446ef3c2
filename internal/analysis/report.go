package analysis

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-glitch/internal/simdops"
)

// RMS returns the root-mean-square level of samples, or 0 when empty.
func RMS[F simdops.Float](samples []F) float64 {
	if len(samples) == 0 {
		return 0
	}
	energy := simdops.For[F]().DotProductUnsafe(samples, samples)
	return math.Sqrt(float64(energy) / float64(len(samples)))
}

// Peak returns the largest absolute sample value.
func Peak[F simdops.Float](samples []F) float64 {
	peak := 0.0
	for _, v := range samples {
		peak = max(peak, math.Abs(float64(v)))
	}
	return peak
}

// LeadingSilence returns the number of exact zeros before the first
// non-zero sample.
func LeadingSilence[F simdops.Float](samples []F) int {
	for i, v := range samples {
		if v != 0 {
			return i
		}
	}
	return len(samples)
}

// Report compares a processed signal with its input.
type Report struct {
	InputRMS        float64
	OutputRMS       float64
	OutputPeak      float64
	InputFrequency  float64 // Hz
	OutputFrequency float64 // Hz
	LeadingSilence  int     // output samples before the first interlace
}

// FrequencyRatio returns OutputFrequency / InputFrequency, or 0 when the
// input has no measurable frequency.
func (r Report) FrequencyRatio() float64 {
	if r.InputFrequency == 0 {
		return 0
	}
	return r.OutputFrequency / r.InputFrequency
}

// GainDB returns the output level relative to the input in dB, or -Inf for
// a silent output.
func (r Report) GainDB() float64 {
	if r.InputRMS == 0 || r.OutputRMS == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(r.OutputRMS/r.InputRMS)
}

// String formats the report on one line.
func (r Report) String() string {
	return fmt.Sprintf("in %.1f Hz -> out %.1f Hz (x%.3f), gain %.2f dB, peak %.3f, silence %d",
		r.InputFrequency, r.OutputFrequency, r.FrequencyRatio(), r.GainDB(), r.OutputPeak, r.LeadingSilence)
}

// Compare measures input and output of one channel at sampleRate.
// Output measurements skip the leading silence.
func Compare[F simdops.Float](in, out []F, sampleRate float64) Report {
	silence := LeadingSilence(out)
	active := out[silence:]

	return Report{
		InputRMS:        RMS(in),
		OutputRMS:       RMS(active),
		OutputPeak:      Peak(active),
		InputFrequency:  DominantFrequency(in, sampleRate),
		OutputFrequency: DominantFrequency(active, sampleRate),
		LeadingSilence:  silence,
	}
}
