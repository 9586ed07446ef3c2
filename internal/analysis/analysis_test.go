package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-glitch/internal/testutil"
)

func TestNewAnalyzer_Size(t *testing.T) {
	tests := []struct {
		request int
		want    int
	}{
		{0, minFFTSize},
		{1000, 1024},
		{1025, 2048},
		{8192, 8192},
		{1 << 20, maxFFTSize},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NewAnalyzer(tt.request).Size(), "request=%d", tt.request)
	}
}

func TestDominantFrequency(t *testing.T) {
	const sampleRate = 44100.0

	for _, freq := range []float64{110, 440, 1000, 5000} {
		signal := testutil.Sine[float64](int(sampleRate), freq, sampleRate, 0.5)
		got := DominantFrequency(signal, sampleRate)
		testutil.AssertRelativeError(t, freq, got, testutil.FrequencyTolerance, "freq=%v", freq)
	}
}

func TestDominantFrequency_Float32(t *testing.T) {
	signal := testutil.Sine[float32](48000, 300, 48000, 0.8)
	testutil.AssertRelativeError(t, 300, DominantFrequency(signal, 48000), testutil.FrequencyTolerance)
}

func TestDominantFrequency_IgnoresDC(t *testing.T) {
	signal := testutil.Sine[float64](8192, 1000, 44100, 0.1)
	for i := range signal {
		signal[i] += 0.9
	}
	testutil.AssertRelativeError(t, 1000, DominantFrequency(signal, 44100), testutil.FrequencyTolerance)
}

func TestDominantFrequency_Degenerate(t *testing.T) {
	assert.Zero(t, DominantFrequency([]float64{}, 44100))
	assert.Zero(t, DominantFrequency(make([]float64, 4096), 44100), "silence has no peak")
	assert.Zero(t, DominantFrequency([]float64{1, 2, 3}, 0))
}

func TestRMS(t *testing.T) {
	assert.Zero(t, RMS([]float64{}))
	assert.InDelta(t, 1.0, RMS([]float64{1, -1, 1, -1}), 1e-12)

	sine := testutil.Sine[float64](44100, 100, 44100, 1)
	assert.InDelta(t, 1/math.Sqrt2, RMS(sine), 1e-3)

	sine32 := testutil.Sine[float32](44100, 100, 44100, 0.5)
	assert.InDelta(t, 0.5/math.Sqrt2, RMS(sine32), 1e-3)
}

func TestPeakAndLeadingSilence(t *testing.T) {
	s := []float32{0, 0, 0, 0.25, -0.75, 0.5}
	assert.InDelta(t, 0.75, Peak(s), 1e-9)
	assert.Equal(t, 3, LeadingSilence(s))
	assert.Equal(t, 2, LeadingSilence([]float64{0, 0}))
}

func TestCompare(t *testing.T) {
	const sampleRate = 44100.0
	in := testutil.Sine[float64](int(sampleRate), 440, sampleRate, 0.5)

	// An octave-down copy of the input, delayed by 1000 samples.
	out := make([]float64, len(in))
	copy(out[1000:], testutil.Sine[float64](len(in)-1000, 220, sampleRate, 0.25))

	r := Compare(in, out, sampleRate)

	// The delayed sine starts at exactly 0, so the first non-zero is one later.
	assert.Equal(t, 1001, r.LeadingSilence)
	testutil.AssertRelativeError(t, 440, r.InputFrequency, testutil.FrequencyTolerance)
	testutil.AssertRelativeError(t, 220, r.OutputFrequency, testutil.FrequencyTolerance)
	assert.InDelta(t, 0.5, r.FrequencyRatio(), 0.02)
	assert.InDelta(t, -6.02, r.GainDB(), 0.1)
	assert.Contains(t, r.String(), "Hz")
}

func TestReport_ZeroCases(t *testing.T) {
	var r Report
	assert.Zero(t, r.FrequencyRatio())
	assert.True(t, math.IsInf(r.GainDB(), -1))

	r = Compare([]float64{0.5, -0.5}, []float64{0, 0}, 44100)
	require.Equal(t, 2, r.LeadingSilence)
	assert.Zero(t, r.OutputRMS)
}
