package main

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	glitch "github.com/tphakala/go-audio-glitch"
)

const (
	bytesPerFloat32 = 4
	bytesPerFrame   = bytesPerFloat32 * stereoChannels
)

// effectSource is the audio host: the player pulls float32LE stereo bytes
// from Read, and every call runs one block of the loaded file through the
// effect.
//
// Read runs on the player's goroutine. Everything else only touches the
// atomic parameter cells or the reset flag.
type effectSource struct {
	effect *glitch.Effect
	frames []float32 // interleaved stereo input
	pos    int       // next frame to play
	loop   bool

	block []float32 // reused interleaved block

	resetRequested atomic.Bool
	finished       chan struct{}
	finishOnce     sync.Once
}

func newEffectSource(effect *glitch.Effect, frames []float32, loop bool) *effectSource {
	return &effectSource{
		effect:   effect,
		frames:   frames,
		loop:     loop,
		finished: make(chan struct{}),
	}
}

// Read fills p with whole stereo frames of processed audio. After the end
// of a non-looping file it keeps returning silence and closes Done.
func (s *effectSource) Read(p []byte) (int, error) {
	numFrames := len(p) / bytesPerFrame
	if numFrames == 0 {
		return 0, nil
	}

	if s.resetRequested.CompareAndSwap(true, false) {
		s.effect.Reset()
	}

	samples := numFrames * stereoChannels
	if cap(s.block) < samples {
		s.block = make([]float32, samples)
	}
	block := s.block[:samples]

	s.fill(block)
	if err := s.effect.ProcessInterleaved(block); err != nil {
		return 0, err
	}

	for i, v := range block {
		binary.LittleEndian.PutUint32(p[i*bytesPerFloat32:], math.Float32bits(v))
	}

	return samples * bytesPerFloat32, nil
}

// fill copies the next input frames into block, looping or padding with
// silence at the end of the file.
func (s *effectSource) fill(block []float32) {
	total := len(s.frames) / stereoChannels
	for i := 0; i < len(block); {
		if s.pos >= total {
			if !s.loop || total == 0 {
				clear(block[i:])
				s.finishOnce.Do(func() { close(s.finished) })
				return
			}
			s.pos = 0
		}

		n := min(total-s.pos, (len(block)-i)/stereoChannels)
		copy(block[i:], s.frames[s.pos*stereoChannels:(s.pos+n)*stereoChannels])
		s.pos += n
		i += n * stereoChannels
	}
}

// RequestReset asks the audio goroutine to reset the effect before the
// next block.
func (s *effectSource) RequestReset() {
	s.resetRequested.Store(true)
}

// Done is closed once a non-looping file has been played to the end.
func (s *effectSource) Done() <-chan struct{} {
	return s.finished
}
