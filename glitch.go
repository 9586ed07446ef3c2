package glitch

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-audio-glitch/internal/engine"
	"github.com/tphakala/go-audio-glitch/internal/noise"
	"github.com/tphakala/go-audio-glitch/internal/simdops"
)

// Config holds effect configuration.
type Config struct {
	// SampleRate is the host sample rate in Hz.
	SampleRate float64

	// Seed fixes the detector noise sequence.
	// Zero selects DefaultSeed, so two effects built from the same Config
	// produce identical output for identical input.
	Seed uint64

	// InitialCapacity is the starting size, in samples, of every segment
	// buffer and output queue. Buffers still grow on demand.
	// Set to 0 to use the default.
	InitialCapacity int
}

// DefaultSeed is the noise seed used when Config.Seed is zero.
const DefaultSeed = noise.DefaultSeed

// Common errors returned by the effect.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid glitch configuration")

	// ErrChannelMismatch indicates input and output slices of different lengths.
	ErrChannelMismatch = errors.New("channel length mismatch")

	// ErrNotInitialized indicates Process was called before Init.
	ErrNotInitialized = errors.New("effect not initialized")

	// ErrInvalidParameter indicates an unknown parameter index or a
	// non-finite parameter value.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive and finite", ErrInvalidConfig)
	}

	if c.InitialCapacity < 0 {
		return fmt.Errorf("%w: initial capacity must not be negative", ErrInvalidConfig)
	}

	return nil
}

// Effect is a stereo glitch octave shifter.
//
// A sensing signal (the low-passed sum of both channels) is watched for
// upward zero crossings. Input accumulates in up to twelve segments, one per
// crossing; every N crossings the segments are braided together into the
// output and the pattern restarts. The braided output repeats about once per
// N input cycles, dividing the perceived frequency by about N, and every
// output sample is a real input sample. Channels come out swapped.
//
// Process must be called from a single goroutine. Parameters may be changed
// from any goroutine.
type Effect struct {
	config Config
	params *Parameters
	proc   *engine.Processor[float32]
}

// New creates an effect with the specified configuration.
// Call Init before the first Process.
func New(config *Config) (*Effect, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := *config
	if cfg.Seed == 0 {
		cfg.Seed = DefaultSeed
	}
	if cfg.InitialCapacity == 0 {
		cfg.InitialCapacity = engine.DefaultSegmentCapacity
	}

	return &Effect{
		config: cfg,
		params: NewParameters(),
	}, nil
}

// Init allocates the processing state. Calling it again discards all
// queued audio and restarts the noise sequence.
func (e *Effect) Init() error {
	proc, err := engine.NewProcessor[float32](e.config.SampleRate, e.config.Seed, e.config.InitialCapacity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	e.proc = proc
	return nil
}

// SetSampleRate changes the host sample rate. Queued audio is kept; the
// latency cap applies from the next interlace.
func (e *Effect) SetSampleRate(sampleRate float64) error {
	cfg := e.config
	cfg.SampleRate = sampleRate
	if err := cfg.Validate(); err != nil {
		return err
	}

	if e.proc != nil {
		if err := e.proc.SetSampleRate(sampleRate); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	e.config.SampleRate = sampleRate

	return nil
}

// SampleRate returns the current sample rate.
func (e *Effect) SampleRate() float64 {
	return e.config.SampleRate
}

// Parameters returns the effect's parameter cells.
func (e *Effect) Parameters() *Parameters {
	return e.params
}

// Process runs one host block. All four slices must have the same length.
// Output slices may alias the inputs for in-place processing.
//
// Parameters are read once at the start of the block.
func (e *Effect) Process(inLeft, inRight, outLeft, outRight []float32) error {
	if e.proc == nil {
		return ErrNotInitialized
	}

	n := len(inLeft)
	if len(inRight) != n || len(outLeft) != n || len(outRight) != n {
		return fmt.Errorf("%w: inputs %d/%d, outputs %d/%d",
			ErrChannelMismatch, len(inLeft), len(inRight), len(outLeft), len(outRight))
	}

	e.configure()
	e.proc.ProcessBlock(inLeft, inRight, outLeft, outRight)

	return nil
}

// ProcessInterleaved runs one host block of interleaved stereo frames
// [L0, R0, L1, R1, ...] in place.
func (e *Effect) ProcessInterleaved(buf []float32) error {
	if e.proc == nil {
		return ErrNotInitialized
	}

	if len(buf)%stereoChannels != 0 {
		return fmt.Errorf("%w: interleaved buffer length %d is not a whole number of stereo frames",
			ErrChannelMismatch, len(buf))
	}

	e.configure()
	for i := 0; i < len(buf); i += stereoChannels {
		buf[i], buf[i+1] = e.proc.Step(buf[i], buf[i+1])
	}

	return nil
}

func (e *Effect) configure() {
	e.proc.Configure(engine.MapControls(e.params.controls(), e.config.SampleRate))
}

// Reset clears all queued audio and restarts the noise sequence.
// Parameters are kept.
func (e *Effect) Reset() {
	if e.proc != nil {
		e.proc.Reset()
	}
}

// GetLatency returns the most output the effect holds after an interlace,
// in samples: one period of 20 Hz.
func (e *Effect) GetLatency() int {
	return engine.LatencyCap(e.config.SampleRate)
}

// GetStatistics returns processing statistics, or nil before Init.
func (e *Effect) GetStatistics() map[string]int64 {
	if e.proc == nil {
		return nil
	}
	return e.proc.GetStatistics()
}

// Info describes the effect and its current processing state.
type Info struct {
	// Name is the effect's display name.
	Name string

	// Inputs and Outputs are the channel counts.
	Inputs  int
	Outputs int

	// Parameters is the number of automatable parameters.
	Parameters int

	// SampleRate is the current sample rate in Hz.
	SampleRate float64

	// Divisions is the segment count selected by the division parameter.
	Divisions int

	// ActiveSegment is the index of the segment currently being filled.
	ActiveSegment int

	// SegmentLengths holds the buffered samples per segment, per channel.
	SegmentLengths []int

	// Queued is the number of output samples waiting per channel.
	Queued int

	// Latency is the output queue cap in samples.
	Latency int

	// Interlaces counts completed interlace events since Init or Reset.
	Interlaces int64

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}

// GetInfo returns information about the effect.
func (e *Effect) GetInfo() Info {
	info := Info{
		Name:       effectName,
		Inputs:     stereoChannels,
		Outputs:    stereoChannels,
		Parameters: ParamCount,
		SampleRate: e.config.SampleRate,
		Divisions:  e.params.Divisions(),
		Latency:    e.GetLatency(),
		SIMDType:   simdops.Info(),
	}

	if e.proc != nil {
		lengths := e.proc.SegmentLengths()
		info.SegmentLengths = lengths[:]
		info.ActiveSegment = e.proc.ActiveSegment()
		info.Queued = e.proc.Queued()
		info.Interlaces = e.proc.GetStatistics()["interlaces"]
	}

	return info
}
