// Package analysis measures level and pitch of processed audio, so glitch
// output can be compared against its input offline.
package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/go-audio-glitch/internal/simdops"
)

// Spectrum analysis constants.
const (
	// minFFTSize is the smallest transform used; shorter inputs are zero-padded.
	minFFTSize = 1024

	// maxFFTSize bounds the analysis window.
	maxFFTSize = 65536

	// fftHermitianDivisor is used to calculate unique frequency bins in real FFT.
	// Due to Hermitian symmetry, a real FFT of size N has N/2 + 1 unique complex coefficients.
	fftHermitianDivisor = 2

	// hannScale is the Hann window coefficient.
	hannScale = 0.5
)

// Analyzer computes magnitude spectra with a fixed-size real FFT.
// Working buffers are reused between calls; an Analyzer is not safe for
// concurrent use.
type Analyzer struct {
	fft     *fourier.FFT
	size    int
	window  []float64
	frame   []float64
	coeffs  []complex128
	spectra []float64
}

// NewAnalyzer creates an analyzer for frames of the given size, rounded up
// to a power of 2 within [minFFTSize, maxFFTSize].
func NewAnalyzer(size int) *Analyzer {
	fftSize := minFFTSize
	for fftSize < size && fftSize < maxFFTSize {
		fftSize *= 2
	}

	window := make([]float64, fftSize)
	for i := range fftSize {
		window[i] = hannScale * (1 - math.Cos(2*math.Pi*float64(i)/float64(fftSize-1)))
	}

	bins := fftSize/fftHermitianDivisor + 1
	return &Analyzer{
		fft:     fourier.NewFFT(fftSize),
		size:    fftSize,
		window:  window,
		frame:   make([]float64, fftSize),
		coeffs:  make([]complex128, bins),
		spectra: make([]float64, bins),
	}
}

// Size returns the FFT length.
func (a *Analyzer) Size() int {
	return a.size
}

// Magnitudes returns the Hann-windowed magnitude spectrum of samples, bins
// 0..Size/2, after removing the mean. Samples beyond Size are ignored;
// shorter input is zero-padded. The returned slice is reused by the next call.
func (a *Analyzer) Magnitudes(samples []float64) []float64 {
	n := min(len(samples), a.size)
	mean := 0.0
	if n > 0 {
		mean = simdops.Float64Ops().Sum(samples[:n]) / float64(n)
	}
	for i := range n {
		a.frame[i] = (samples[i] - mean) * a.window[i]
	}
	clear(a.frame[n:])

	a.coeffs = a.fft.Coefficients(a.coeffs, a.frame)
	for k, c := range a.coeffs {
		a.spectra[k] = cmplx.Abs(c)
	}

	return a.spectra
}

// PeakFrequency returns the frequency of the strongest non-DC bin, refined
// by parabolic interpolation over its neighbours. It returns 0 when the
// spectrum is flat zero.
func (a *Analyzer) PeakFrequency(samples []float64, sampleRate float64) float64 {
	mags := a.Magnitudes(samples)

	peak := 0
	for k := 1; k < len(mags); k++ {
		if mags[k] > mags[peak] || peak == 0 && mags[k] > 0 {
			peak = k
		}
	}
	if peak == 0 {
		return 0
	}

	offset := 0.0
	if peak > 1 && peak < len(mags)-1 {
		left, mid, right := mags[peak-1], mags[peak], mags[peak+1]
		if denom := left - 2*mid + right; denom != 0 {
			offset = hannScale * (left - right) / denom
		}
	}

	binWidth := sampleRate / float64(a.size)
	return (float64(peak) + offset) * binWidth
}

// DominantFrequency estimates the strongest frequency in samples. The
// analysis frame is taken from the middle of the signal to skip start-up
// transients.
func DominantFrequency[F simdops.Float](samples []F, sampleRate float64) float64 {
	if len(samples) == 0 || sampleRate <= 0 {
		return 0
	}

	frameSize := minFFTSize
	for frameSize*2 <= len(samples) && frameSize < maxFFTSize {
		frameSize *= 2
	}

	a := NewAnalyzer(frameSize)
	start := max(0, (len(samples)-a.Size())/2)
	end := min(len(samples), start+a.Size())

	return a.PeakFrequency(toFloat64(samples[start:end]), sampleRate)
}

func toFloat64[F simdops.Float](samples []F) []float64 {
	if s, ok := any(samples).([]float64); ok {
		return s
	}
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = float64(v)
	}
	return out
}
