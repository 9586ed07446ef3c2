package engine

// Segment accumulation constants
const (
	// MaxSegments is the number of segment buffers per channel path.
	MaxSegments = 12

	// MinDivisions is the smallest division count; a mapped 0 is clamped here.
	MinDivisions = 1

	// DefaultSegmentCapacity is the initial ring capacity of every segment and
	// output queue (about 25ms at 44.1kHz).
	DefaultSegmentCapacity = 1100
)

// Parameter mapping constants
const (
	divisionScale  = 11.5 // division*11.5 + 1 spans 1..12
	divisionOffset = 1.0
	perturbDivisor = 40.0 // perturb/40 is the noise amplitude
	biasScale      = 2.0  // bias*2 - 1 centres the control on 0
	biasOffset     = 1.0
)

// Output latency constants
const (
	// latencyCapHz is the lowest frequency whose full cycle survives the
	// output queue trim; the cap is one period of it.
	latencyCapHz = 20.0
)
