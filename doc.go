// Package glitch provides a stereo "glitch octave shift" audio effect in pure Go.
//
// The effect watches a sensing signal for upward zero crossings and cuts the
// input into segments at every crossing. After N crossings the N segments are
// braided together, sample by sample in proportion to their lengths, and
// played back. The result is a lower-pitched, stuttering version of the input
// built entirely from input samples.
//
// # Features
//
//   - Five automatable parameters with lock-free updates from any goroutine
//   - Real-time safe processing: no locks, no allocation in steady state
//   - Deterministic output for a given seed, input and parameter automation
//   - YAML presets
//   - go-audio buffer support for WAV pipelines
//   - Optional SIMD acceleration for interleaving via github.com/tphakala/simd
//
// # Quick Start
//
// For one-shot processing:
//
//	preset := &glitch.Preset{Division: 0.2, Bias: 0.5}
//	left, right, err := glitch.ProcessStereo(inLeft, inRight, 44100, preset)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming from a host callback:
//
//	e, err := glitch.New(&glitch.Config{SampleRate: 48000})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := e.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	_ = e.Parameters().SetDivision(0.3)
//
//	for block := range blocks {
//	    if err := e.Process(block.L, block.R, block.L, block.R); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Parameters
//
// All parameters are normalized to [0, 1]:
//
//   - [ParamDivision] "Freq div": segment count N = floor(v*11.5 + 1), 1..12.
//   - [ParamBias] "Sens. bias": crossing threshold offset. 0.5 is neutral;
//     higher values need a larger swing, lower values trigger more often.
//   - [ParamChaos] "Sens. chaos": probability v² of ignoring a crossing.
//   - [ParamPerturb] "Sens. perturb": noise of amplitude v/40 added to the
//     sensing signal.
//   - [ParamSensingLP] "Sens. filter": lowers the sensing filter cutoff from
//     (nyquist)^0.75 towards 0 Hz. At 1 the sensing signal freezes.
//
// # Latency
//
// Output lags input by a signal-dependent amount. After every interlace the
// output queue is trimmed to one 20 Hz period ([Effect.GetLatency]), dropping
// the oldest samples. Until the first interlace the effect outputs silence.
//
// # Thread Safety
//
// [Effect.Process] and the other processing methods must be called from one
// goroutine. [Parameters] may be read and written concurrently from any
// goroutine.
package glitch
