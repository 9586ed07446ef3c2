package glitch

import (
	"fmt"

	"github.com/go-audio/audio"

	"github.com/tphakala/go-audio-glitch/internal/simdops"
)

// ProcessStereo is a convenience function for one-shot stereo processing.
// It creates an effect at sampleRate, applies preset (the default preset
// when nil) and processes both channels in a single block.
//
// Output has the same length as the input. Audio still buffered in the
// effect when the input ends is discarded.
func ProcessStereo(left, right []float32, sampleRate float64, preset *Preset) (leftOut, rightOut []float32, err error) {
	if len(left) != len(right) {
		return nil, nil, fmt.Errorf("%w: left %d, right %d", ErrChannelMismatch, len(left), len(right))
	}

	e, err := New(&Config{SampleRate: sampleRate})
	if err != nil {
		return nil, nil, err
	}
	if err := e.Init(); err != nil {
		return nil, nil, err
	}

	if preset == nil {
		preset = DefaultPreset()
	}
	if err := e.Parameters().Apply(preset); err != nil {
		return nil, nil, err
	}

	leftOut = make([]float32, len(left))
	rightOut = make([]float32, len(right))
	if err := e.Process(left, right, leftOut, rightOut); err != nil {
		return nil, nil, err
	}

	return leftOut, rightOut, nil
}

// ProcessBuffer processes a go-audio buffer in place.
//
// Stereo buffers are processed as interleaved frames. Mono buffers feed the
// same signal to both inputs and the two outputs are mixed back down.
// When the buffer carries a sample rate different from the effect's, the
// effect switches to it first.
func (e *Effect) ProcessBuffer(buf *audio.Float32Buffer) error {
	if buf == nil || buf.Format == nil {
		return fmt.Errorf("%w: buffer has no format", ErrInvalidConfig)
	}

	if sr := float64(buf.Format.SampleRate); sr > 0 && sr != e.config.SampleRate {
		if err := e.SetSampleRate(sr); err != nil {
			return err
		}
	}

	switch buf.Format.NumChannels {
	case stereoChannels:
		return e.ProcessInterleaved(buf.Data)

	case 1:
		outLeft := make([]float32, len(buf.Data))
		outRight := make([]float32, len(buf.Data))
		if err := e.Process(buf.Data, buf.Data, outLeft, outRight); err != nil {
			return err
		}
		for i := range buf.Data {
			buf.Data[i] = outLeft[i] + outRight[i]
		}
		simdops.Float32Ops().Scale(buf.Data, buf.Data, monoMixGain)
		return nil

	default:
		return fmt.Errorf("%w: %d channels, want 1 or 2", ErrChannelMismatch, buf.Format.NumChannels)
	}
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float32) []float32 {
	n := min(len(left), len(right))
	result := make([]float32, n*stereoChannels)
	if n > 0 {
		simdops.Float32Ops().Interleave2(result, left[:n], right[:n])
	}
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
// A trailing half frame is ignored.
func DeinterleaveFromStereo(interleaved []float32) (left, right []float32) {
	numFrames := len(interleaved) / stereoChannels
	left = make([]float32, numFrames)
	right = make([]float32, numFrames)
	for i := range numFrames {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
