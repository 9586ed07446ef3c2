package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-glitch/internal/filter"
	"github.com/tphakala/go-audio-glitch/internal/noise"
	"github.com/tphakala/go-audio-glitch/internal/queue"
	"github.com/tphakala/go-audio-glitch/internal/simdops"
)

// blockSettings are Settings converted to the sample type once per block.
type blockSettings[F simdops.Float] struct {
	divisions int
	bias      F
	perturb   F
	cutoff    F
	chaos     float64
}

// Processor is the per-sample glitch engine: sensing filter, crossing
// detector, segment accumulator, interlacer and output queues.
//
// Type parameter F controls the precision of sample processing.
//
// A Processor never blocks and is not safe for concurrent use.
type Processor[F simdops.Float] struct {
	sampleRate float64
	dt         F
	latencyCap int

	rng      *noise.Generator
	detector *Detector[F]
	segments *SegmentSet[F]
	outLeft  *queue.Queue[F]
	outRight *queue.Queue[F]

	settings    blockSettings[F]
	prevSensing F

	// Statistics
	samplesProcessed int64
	samplesEmitted   int64
	detections       int64
	interlaces       int64
	samplesTrimmed   int64
}

// NewProcessor creates a processor for sampleRate. Seed fixes the noise
// sequence; capacity is the initial size of every segment and output queue.
// The processor starts with a division count of 1 and all other settings 0.
func NewProcessor[F simdops.Float](sampleRate float64, seed uint64, capacity int) (*Processor[F], error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if capacity < 1 {
		capacity = DefaultSegmentCapacity
	}

	rng := noise.NewGenerator(seed)
	p := &Processor[F]{
		rng:      rng,
		detector: NewDetector[F](rng),
		segments: NewSegmentSet[F](capacity),
		outLeft:  queue.New[F](capacity),
		outRight: queue.New[F](capacity),
	}
	p.setSampleRate(sampleRate)
	p.Configure(Settings{Divisions: MinDivisions})

	return p, nil
}

// SetSampleRate changes the sample rate used for dt and the latency cap.
// Queued audio is kept.
func (p *Processor[F]) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}
	p.setSampleRate(sampleRate)
	return nil
}

func (p *Processor[F]) setSampleRate(sampleRate float64) {
	p.sampleRate = sampleRate
	p.dt = F(1 / sampleRate)
	p.latencyCap = LatencyCap(sampleRate)
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sample rate must be > 0 and finite: %f", sampleRate)
	}
	return nil
}

// Configure installs the operating settings for the following samples.
// Hosts call it once per block.
func (p *Processor[F]) Configure(s Settings) {
	p.settings = blockSettings[F]{
		divisions: clampDivisions(s.Divisions),
		bias:      F(s.Bias),
		perturb:   F(s.Perturb),
		cutoff:    F(max(s.CutoffHz, 0)),
		chaos:     s.Chaos,
	}
}

// Step processes one stereo frame and returns one output frame.
func (p *Processor[F]) Step(left, right F) (outLeft, outRight F) {
	sensing := filter.Lowpass(left+right, p.settings.cutoff, p.dt, p.prevSensing)

	sensing, detected := p.detector.Detect(
		sensing, p.prevSensing,
		p.settings.bias, p.settings.perturb, p.settings.chaos,
	)

	outLeft, outRight = p.advance(left, right, detected)
	p.prevSensing = sensing

	return outLeft, outRight
}

// advance applies a detection decision, stores the input frame and pops one
// output frame.
func (p *Processor[F]) advance(left, right F, detected bool) (outLeft, outRight F) {
	if detected {
		p.detections++
		if p.segments.Advance(p.settings.divisions) {
			p.interlace()
		}
	}

	p.segments.Append(left, right)
	p.samplesProcessed++

	// Both queues always hold the same number of samples.
	outLeft, ok := p.outLeft.PopFront()
	outRight, _ = p.outRight.PopFront()
	if ok {
		p.samplesEmitted++
	}

	return outLeft, outRight
}

// interlace flushes the active segments into the output queues and trims
// them to the latency cap.
func (p *Processor[F]) interlace() {
	p.segments.Flush(p.settings.divisions, p.outLeft, p.outRight)

	p.samplesTrimmed += int64(p.outLeft.TrimFront(p.latencyCap))
	p.outRight.TrimFront(p.latencyCap)
	p.interlaces++
}

// ProcessBlock runs Step over a block. All four slices must have the same
// length; the shortest length is used otherwise. Output slices may alias
// the inputs.
func (p *Processor[F]) ProcessBlock(inLeft, inRight, outLeft, outRight []F) int {
	n := min(len(inLeft), len(inRight), len(outLeft), len(outRight))
	for i := range n {
		outLeft[i], outRight[i] = p.Step(inLeft[i], inRight[i])
	}
	return n
}

// Reset clears all audio state and restarts the noise sequence, as if the
// processor had just been created. Sample rate and settings are kept.
func (p *Processor[F]) Reset() {
	p.segments.Clear()
	p.outLeft.Clear()
	p.outRight.Clear()
	p.rng.Reset()
	p.prevSensing = 0

	p.samplesProcessed = 0
	p.samplesEmitted = 0
	p.detections = 0
	p.interlaces = 0
	p.samplesTrimmed = 0
}

// SampleRate returns the current sample rate.
func (p *Processor[F]) SampleRate() float64 {
	return p.sampleRate
}

// Divisions returns the division count currently in effect.
func (p *Processor[F]) Divisions() int {
	return p.settings.divisions
}

// LatencyCap returns the output queue cap in samples.
func (p *Processor[F]) LatencyCap() int {
	return p.latencyCap
}

// ActiveSegment returns the index of the segment being filled.
func (p *Processor[F]) ActiveSegment() int {
	return p.segments.ActiveIndex()
}

// SegmentLengths returns the per-index segment lengths (per channel).
func (p *Processor[F]) SegmentLengths() [MaxSegments]int {
	return p.segments.Lengths()
}

// Queued returns the number of output samples waiting per channel.
func (p *Processor[F]) Queued() int {
	return p.outLeft.Len()
}

// GetStatistics returns processing statistics.
func (p *Processor[F]) GetStatistics() map[string]int64 {
	return map[string]int64{
		"samplesProcessed": p.samplesProcessed,
		"samplesEmitted":   p.samplesEmitted,
		"detections":       p.detections,
		"interlaces":       p.interlaces,
		"samplesTrimmed":   p.samplesTrimmed,
		"pendingSamples":   int64(p.segments.Pending()),
		"queuedSamples":    int64(p.outLeft.Len()),
	}
}
