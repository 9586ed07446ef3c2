package glitch

// Common sample rates.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000
)

// Channel constants
const (
	stereoChannels = 2 // The effect is always stereo in, stereo out
)

// Effect description
const (
	effectName = "Glitch octave shift"
)

// Parameter defaults
const (
	defaultDivision  = 0.0
	defaultBias      = 0.5 // Centred: threshold bias 0
	defaultChaos     = 0.0
	defaultPerturb   = 0.0
	defaultSensingLP = 0.0
)

// Parameter text formatting
const (
	percentScale = 100.0
	textBitSize  = 32 // Parameter values are displayed at float32 precision
)

// Mono downmix
const (
	monoMixGain = 0.5
)
