// Command analyze-glitch sweeps the octave-shift effect across every
// division count with a synthetic tone and prints spectral reports.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	glitch "github.com/tphakala/go-audio-glitch"
	"github.com/tphakala/go-audio-glitch/internal/analysis"
)

func main() {
	defaults := glitch.DefaultPreset()

	var (
		sampleRate = flag.Float64("rate", defaultSampleRate, "Sample rate in Hz")
		frequency  = flag.Float64("freq", defaultFrequency, "Test tone frequency in Hz")
		duration   = flag.Float64("duration", defaultDuration, "Test signal length in seconds")
		bias       = flag.Float64("bias", defaults.Bias, "Detector bias (0..1)")
		chaos      = flag.Float64("chaos", 0, "Detection suppression (0..1)")
		perturb    = flag.Float64("perturb", 0, "Threshold noise (0..1)")
		filter     = flag.Float64("filter", 0, "Sensing low-pass amount (0..1)")
		stereo     = flag.Bool("stereo", false, "Use different tones on the left and right channel")
		verbose    = flag.Bool("v", false, "Print full reports")
	)
	flag.Parse()

	if *sampleRate <= 0 || *frequency <= 0 || *duration <= 0 {
		log.Fatal("rate, freq and duration must be positive")
	}
	if *frequency >= *sampleRate/2 {
		log.Fatalf("frequency %.1f Hz is above Nyquist for %.0f Hz", *frequency, *sampleRate)
	}

	frames := int(*duration * *sampleRate)
	left := generateTone(frames, *frequency, *sampleRate)
	right := left
	if *stereo {
		right = generateTone(frames, *frequency*rightFrequencyRatio, *sampleRate)
	}

	fmt.Println("=== Glitch Octave Shift Analysis ===")
	fmt.Printf("Sample rate: %.0f Hz\n", *sampleRate)
	fmt.Printf("Left tone: %.1f Hz", *frequency)
	if *stereo {
		fmt.Printf(", right tone: %.1f Hz", *frequency*rightFrequencyRatio)
	}
	fmt.Printf("\nLength: %d frames\n\n", frames)

	fmt.Printf("%4s  %12s  %8s  %9s  %10s  %8s\n",
		"N", "Out (Hz)", "Ratio", "Gain dB", "Silence", "1/N")
	fmt.Println("----------------------------------------------------------")

	for n := minDivisions; n <= maxDivisions; n++ {
		preset := &glitch.Preset{
			Name:      fmt.Sprintf("sweep-%d", n),
			Division:  divisionFor(n),
			Bias:      *bias,
			Chaos:     *chaos,
			Perturb:   *perturb,
			SensingLP: *filter,
		}

		// Cross-routing puts the processed left input on the right output.
		outLeft, outRight, err := glitch.ProcessStereo(left, right, *sampleRate, preset)
		if err != nil {
			log.Fatalf("Processing failed at N=%d: %v", n, err)
		}

		report := analysis.Compare(left, outRight, *sampleRate)
		fmt.Printf("%4d  %12.2f  %8.4f  %9.2f  %10d  %8.4f\n",
			n,
			report.OutputFrequency,
			report.FrequencyRatio(),
			report.GainDB(),
			report.LeadingSilence,
			1/float64(n))

		if *verbose {
			fmt.Printf("      left->right: %s\n", report)
			if *stereo {
				fmt.Printf("      right->left: %s\n", analysis.Compare(right, outLeft, *sampleRate))
			}
		}
	}

	printEffectInfo(*sampleRate)
}

// divisionFor returns the control value that selects n divisions, centred
// within its step so float32 storage cannot round it into a neighbour.
func divisionFor(n int) float64 {
	return (float64(n) - 0.5) / divisionSteps
}

func generateTone(frames int, frequency, sampleRate float64) []float32 {
	signal := make([]float32, frames)
	omega := 2 * math.Pi * frequency / sampleRate
	for i := range signal {
		signal[i] = float32(defaultAmplitude * math.Sin(omega*float64(i)))
	}
	return signal
}

func printEffectInfo(sampleRate float64) {
	effect, err := glitch.New(&glitch.Config{SampleRate: sampleRate})
	if err != nil {
		log.Fatalf("Failed to create effect: %v", err)
	}
	if err := effect.Init(); err != nil {
		log.Fatalf("Failed to initialize effect: %v", err)
	}

	info := effect.GetInfo()
	fmt.Printf("\nEffect: %s\n", info.Name)
	fmt.Printf("  Inputs/Outputs: %d/%d\n", info.Inputs, info.Outputs)
	fmt.Printf("  Latency cap: %d frames\n", info.Latency)
	fmt.Printf("  SIMD: %s\n", info.SIMDType)
}
