// Command glitch-play plays a WAV file through the glitch octave shifter in
// real time, with live parameter control from the keyboard.
//
// Usage:
//
//	glitch-play -loop input.wav
//	glitch-play -preset growl.yaml input.wav
//
// Keys: q/a division, w/s bias, e/d chaos, r/f perturb, t/g filter,
// space resets the effect, x or Esc quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	glitch "github.com/tphakala/go-audio-glitch"
)

const (
	monoChannels   = 1
	stereoChannels = 2

	// Player buffering
	playerBufferDuration = 50 * time.Millisecond
	headlessChunkFrames  = 512

	minRequiredArgs = 1
)

// audioPlayer pulls from the effect source on its own goroutine.
type audioPlayer interface {
	Start()
	Close() error
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	presetPath := flag.String("preset", "", "Load initial parameters from a YAML preset")
	savePreset := flag.String("save-preset", "", "Write the final parameters to a YAML preset on exit")
	loop := flag.Bool("loop", false, "Loop the input file")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: %s\n", keyHelp)
		return errors.New("insufficient arguments")
	}

	frames, sampleRate, err := loadStereo(args[0])
	if err != nil {
		return err
	}
	if *verbose {
		log.Printf("Loaded %s: %d Hz, %.1fs", args[0], sampleRate,
			float64(len(frames)/stereoChannels)/float64(sampleRate))
	}

	preset, err := glitch.LoadPresetOrDefault(*presetPath)
	if err != nil {
		return err
	}

	effect, err := glitch.New(&glitch.Config{SampleRate: float64(sampleRate)})
	if err != nil {
		return err
	}
	if err := effect.Init(); err != nil {
		return err
	}
	params := effect.Parameters()
	if err := params.Apply(preset); err != nil {
		return err
	}

	src := newEffectSource(effect, frames, *loop)
	player, err := newPlayer(sampleRate, src)
	if err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}
	defer func() { _ = player.Close() }()

	player.Start()
	interactiveLoop(params, src, *verbose)

	if *savePreset != "" {
		snap := params.Snapshot()
		snap.Name = "glitch-play"
		if err := snap.Save(*savePreset); err != nil {
			return err
		}
		log.Printf("Saved preset to %s", *savePreset)
	}

	return nil
}

// interactiveLoop handles key presses until the user quits or playback ends.
// Without a terminal it just waits for playback to end.
func interactiveLoop(params *glitch.Parameters, src *effectSource, verbose bool) {
	keys, err := newKeyReader()
	if err != nil {
		if verbose {
			log.Printf("Live control disabled: %v", err)
		}
		<-src.Done()
		return
	}
	defer keys.Restore()

	// Raw mode needs explicit carriage returns.
	fmt.Printf("%s\r\n%s", keyHelp, statusLine(params))

	for {
		select {
		case <-src.Done():
			fmt.Print("\r\n")
			return
		case key, ok := <-keys.Keys():
			if !ok {
				fmt.Print("\r\n")
				return
			}
			switch handleKey(params, key) {
			case actionQuit:
				fmt.Print("\r\n")
				return
			case actionReset:
				src.RequestReset()
			case actionChanged:
				fmt.Printf("\r\033[K%s", statusLine(params))
			case actionNone:
			}
		}
	}
}

// loadStereo decodes a WAV file into interleaved stereo float32 frames.
// Mono files are duplicated to both channels.
func loadStereo(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return decodeStereo(f, path)
}

func decodeStereo(r io.ReadSeeker, name string) ([]float32, int, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", name)
	}

	if decoder.BitDepth == 0 {
		return nil, 0, fmt.Errorf("missing bit depth in %s", name)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read audio data: %w", err)
	}

	scale := 1 / float64(int64(1)<<(decoder.BitDepth-1))
	frames, err := toStereo(buf, scale)
	if err != nil {
		return nil, 0, err
	}

	return frames, buf.Format.SampleRate, nil
}

// toStereo normalizes buf by scale and returns interleaved stereo frames.
func toStereo(buf *audio.IntBuffer, scale float64) ([]float32, error) {
	switch buf.Format.NumChannels {
	case stereoChannels:
		out := make([]float32, len(buf.Data))
		for i, v := range buf.Data {
			out[i] = float32(float64(v) * scale)
		}
		return out, nil

	case monoChannels:
		mono := make([]float32, len(buf.Data))
		for i, v := range buf.Data {
			mono[i] = float32(float64(v) * scale)
		}
		return glitch.InterleaveToStereo(mono, mono), nil

	default:
		return nil, fmt.Errorf("unsupported channel count %d (mono or stereo only)", buf.Format.NumChannels)
	}
}
