package engine

import (
	"fmt"
	"testing"

	"github.com/tphakala/go-audio-glitch/internal/testutil"
)

const benchSampleRate = 44100

// BenchmarkProcessBlock measures one second of stereo audio per iteration
// across division counts.
func BenchmarkProcessBlock(b *testing.B) {
	for _, divisions := range []int{1, 2, 4, 12} {
		b.Run(fmt.Sprintf("N=%d", divisions), func(b *testing.B) {
			p, err := NewProcessor[float64](benchSampleRate, 1, 0)
			if err != nil {
				b.Fatal(err)
			}
			p.Configure(Settings{Divisions: divisions, Chaos: 0.1, Perturb: 0.01})

			inL := testutil.Sine[float64](benchSampleRate, 220, benchSampleRate, 0.5)
			inR := testutil.Sine[float64](benchSampleRate, 331, benchSampleRate, 0.5)
			outL := make([]float64, len(inL))
			outR := make([]float64, len(inR))

			b.ReportAllocs()
			b.SetBytes(int64(len(inL) * 2 * 8))
			for b.Loop() {
				p.ProcessBlock(inL, inR, outL, outR)
			}
		})
	}
}

// BenchmarkStep_Float32 measures the per-frame cost at float32 precision.
func BenchmarkStep_Float32(b *testing.B) {
	p, err := NewProcessor[float32](benchSampleRate, 1, 0)
	if err != nil {
		b.Fatal(err)
	}
	p.Configure(MapControls(Controls{Division: 0.3, Bias: 0.5, SensingLP: 0.2}, benchSampleRate))

	in := testutil.Sine[float32](4096, 440, benchSampleRate, 0.5)

	b.ReportAllocs()
	i := 0
	for b.Loop() {
		p.Step(in[i], in[i])
		i = (i + 1) % len(in)
	}
}
