// Command glitch-wav runs WAV audio files through the glitch octave shifter.
//
// Usage:
//
//	glitch-wav -division 0.3 input.wav output.wav
//	glitch-wav -preset growl.yaml -chaos 0.2 input.wav output.wav   # Flags override the preset
//	glitch-wav -batch -outdir out/ a.wav b.wav c.wav                # Process files concurrently
//
// Mono and stereo files are supported. The output keeps the input sample
// rate, channel count and bit depth.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"golang.org/x/sync/errgroup"

	glitch "github.com/tphakala/go-audio-glitch"
)

const (
	// Buffer size for reading (frames per chunk)
	bufferSize = 65536

	// Host block size used when feeding the effect
	defaultBlockSize = 512

	// Channel count constants
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// CLI defaults
	minRequiredArgs = 2
	wavFormatPCM    = 1
)

// options holds everything a single file run needs.
type options struct {
	preset    *glitch.Preset
	blockSize int
	seed      uint64
	verbose   bool
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	defaults := glitch.DefaultPreset()

	division := flag.Float64("division", defaults.Division, "Frequency division (0..1, maps to 1..12 segments)")
	bias := flag.Float64("bias", defaults.Bias, "Sensing bias (0..1, 0.5 = neutral)")
	chaos := flag.Float64("chaos", defaults.Chaos, "Probability control for ignoring crossings (0..1)")
	perturb := flag.Float64("perturb", defaults.Perturb, "Sensing noise (0..1)")
	filter := flag.Float64("filter", defaults.SensingLP, "Sensing low-pass amount (0..1)")
	presetPath := flag.String("preset", "", "Load parameters from a YAML preset (flags given explicitly override it)")
	savePreset := flag.String("save-preset", "", "Write the effective parameters to a YAML preset and continue")
	blockSize := flag.Int("block", defaultBlockSize, "Host block size in frames")
	seed := flag.Uint64("seed", glitch.DefaultSeed, "Noise seed")
	batch := flag.Bool("batch", false, "Process every input file into -outdir")
	outDir := flag.String("outdir", "", "Output directory for -batch")
	jobs := flag.Int("jobs", runtime.NumCPU(), "Maximum files processed at once in -batch mode")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	args := flag.Args()
	if err := validateArgs(args, *batch, *outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [options] -batch -outdir DIR input.wav...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -division 0.1 guitar.wav guitar_down.wav  # Two segments\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -division 1 -chaos 0.4 drums.wav out.wav  # Twelve segments, sparse\n", os.Args[0])
		return err
	}

	if *blockSize < 1 {
		return fmt.Errorf("block size must be at least 1, got %d", *blockSize)
	}

	// Start CPU profiling if requested (for PGO)
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	preset, err := glitch.LoadPresetOrDefault(*presetPath)
	if err != nil {
		return err
	}

	// Explicit flags win over the preset.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "division":
			preset.Division = *division
		case "bias":
			preset.Bias = *bias
		case "chaos":
			preset.Chaos = *chaos
		case "perturb":
			preset.Perturb = *perturb
		case "filter":
			preset.SensingLP = *filter
		}
	})

	if *savePreset != "" {
		if err := preset.Save(*savePreset); err != nil {
			return err
		}
		if *verbose {
			log.Printf("Saved preset to %s", *savePreset)
		}
	}

	opts := options{
		preset:    preset,
		blockSize: *blockSize,
		seed:      *seed,
		verbose:   *verbose,
	}

	if *verbose {
		params := glitch.NewParameters()
		if err := params.Apply(preset); err != nil {
			return err
		}
		for i := range glitch.ParamCount {
			log.Printf("%-14s %s", glitch.ParameterName(i)+":", params.ParameterText(i))
		}
		log.Printf("Block size: %d frames", *blockSize)
	}

	if *batch {
		return runBatch(context.Background(), args, *outDir, *jobs, opts)
	}

	return processAndReport(args[0], args[1], opts)
}

func validateArgs(args []string, batch bool, outDir string) error {
	if batch {
		if outDir == "" {
			return errors.New("-batch requires -outdir")
		}
		if len(args) == 0 {
			return errors.New("no input files")
		}
		return nil
	}
	if len(args) < minRequiredArgs {
		return errors.New("insufficient arguments")
	}
	return nil
}

// runBatch processes every input into outDir, at most jobs files at a time.
// The first failure cancels files that have not started yet.
func runBatch(ctx context.Context, inputs []string, outDir string, jobs int, opts options) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, jobs))

	for _, input := range inputs {
		output := filepath.Join(outDir, filepath.Base(input))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := processAndReport(input, output, opts); err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			return nil
		})
	}

	return g.Wait()
}

func processAndReport(inputPath, outputPath string, opts options) error {
	if opts.verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
	}

	start := time.Now()
	stats, err := processWAV(inputPath, outputPath, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	speed := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		speed = float64(stats.frames) / float64(stats.sampleRate) / secs
	}

	// One Printf per file keeps batch output readable.
	fmt.Printf("Processed %s -> %s\n"+
		"  %d Hz, %d channels, %d-bit, %d frames\n"+
		"  %d interlaces, %d frames of leading silence\n"+
		"  Duration: %.2fs, Speed: %.1fx realtime\n",
		filepath.Base(inputPath), filepath.Base(outputPath),
		stats.sampleRate, stats.channels, stats.bitDepth, stats.frames,
		stats.interlaces, stats.leadingSilence,
		elapsed.Seconds(), speed)

	return nil
}
