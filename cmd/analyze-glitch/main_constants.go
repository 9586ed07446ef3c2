package main

// Default command-line flag values
const (
	defaultSampleRate = 44100.0 // CD quality sample rate
	defaultFrequency  = 441.0   // test tone, one sensing crossing per cycle
	defaultDuration   = 2.0     // seconds of test signal
	defaultAmplitude  = 0.5     // test tone peak level
)

// Division sweep
const (
	minDivisions = 1
	maxDivisions = 12

	// divisionSteps matches the control mapping N = floor(div*11.5 + 1).
	divisionSteps = 11.5
)

// Demo stereo offsets
const (
	rightFrequencyRatio = 1.5 // right channel tone is a fifth above the left
)
