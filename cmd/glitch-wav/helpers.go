package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	glitch "github.com/tphakala/go-audio-glitch"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	format      *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if format.NumChannels != monoChannels && format.NumChannels != stereoChannels {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported channel count %d (mono or stereo only)", format.NumChannels)
	}
	if _, err := maxValue(bitDepth); err != nil {
		_ = inputFile.Close()
		return nil, err
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	// Get total duration for progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: int64(duration.Seconds() * float64(format.SampleRate)),
		format:      format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
}

// createWAVOutput creates the output file and a PCM encoder for it.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
	}, nil
}

// Write encodes one buffer of interleaved samples.
func (w *wavOutputWriter) Write(buf *audio.IntBuffer) error {
	return w.encoder.Write(buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return w.file.Close()
}

// processStats summarizes one processed file.
type processStats struct {
	sampleRate     int
	channels       int
	bitDepth       int
	frames         int64
	interlaces     int64
	leadingSilence int64
}

// processBuffers holds all preallocated buffers for processing.
type processBuffers struct {
	intBuffer *audio.IntBuffer
	floatBuf  *audio.Float32Buffer
	block     *audio.Float32Buffer // window into floatBuf handed to the effect
	outBuffer *audio.IntBuffer
	maxVal    float64
	invMaxVal float64
}

func newProcessBuffers(format *audio.Format, bitDepth int) *processBuffers {
	maxVal, _ := maxValue(bitDepth)
	samples := bufferSize * format.NumChannels

	return &processBuffers{
		intBuffer: &audio.IntBuffer{
			Data:           make([]int, samples),
			Format:         format,
			SourceBitDepth: bitDepth,
		},
		floatBuf: &audio.Float32Buffer{
			Data:           make([]float32, samples),
			Format:         format,
			SourceBitDepth: bitDepth,
		},
		block: &audio.Float32Buffer{
			Format:         format,
			SourceBitDepth: bitDepth,
		},
		outBuffer: &audio.IntBuffer{
			Data:           make([]int, samples),
			Format:         format,
			SourceBitDepth: bitDepth,
		},
		maxVal:    maxVal,
		invMaxVal: 1 / maxVal,
	}
}

// processWAV runs inputPath through a fresh effect and writes outputPath.
func processWAV(inputPath, outputPath string, opts options) (stats *processStats, err error) {
	// 1. Open and validate input
	input, err := openWAVInput(inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	// 2. Create the effect
	effect, err := newEffect(input.rate, opts)
	if err != nil {
		return nil, err
	}

	// 3. Create output writer
	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (important for WAV header updates)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	buffers := newProcessBuffers(input.format, input.bitDepth)
	stats = &processStats{
		sampleRate: input.rate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
	}
	progress := newProgressTracker(input.totalFrames, opts.verbose)
	silent := true

	// 4. Main processing loop
	for {
		buffers.intBuffer.Data = buffers.intBuffer.Data[:cap(buffers.intBuffer.Data)]
		n, readErr := input.decoder.PCMBuffer(buffers.intBuffer)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", readErr)
		}

		frames := n / input.channels
		if frames == 0 {
			break
		}
		samples := frames * input.channels

		intToFloat(buffers.intBuffer.Data[:samples], buffers.floatBuf.Data[:samples], buffers.invMaxVal)

		if err := processBlocks(effect, buffers, frames, opts.blockSize); err != nil {
			return nil, err
		}

		if silent {
			lead := leadingSilentFrames(buffers.floatBuf.Data[:samples], input.channels)
			stats.leadingSilence += int64(lead)
			silent = lead == frames
		}

		buffers.outBuffer.Data = buffers.outBuffer.Data[:samples]
		floatToInt(buffers.floatBuf.Data[:samples], buffers.outBuffer.Data, buffers.maxVal)
		if err := output.Write(buffers.outBuffer); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		stats.frames += int64(frames)
		progress.reportIfNeeded(stats.frames)
	}

	stats.interlaces = effect.GetInfo().Interlaces
	return stats, nil
}

// newEffect creates and initializes an effect for one file.
func newEffect(sampleRate int, opts options) (*glitch.Effect, error) {
	effect, err := glitch.New(&glitch.Config{
		SampleRate: float64(sampleRate),
		Seed:       opts.seed,
	})
	if err != nil {
		return nil, err
	}
	if err := effect.Init(); err != nil {
		return nil, err
	}
	if err := effect.Parameters().Apply(opts.preset); err != nil {
		return nil, err
	}
	return effect, nil
}

// processBlocks feeds frames of buffers.floatBuf to the effect in host
// blocks of blockSize frames, in place.
func processBlocks(effect *glitch.Effect, buffers *processBuffers, frames, blockSize int) error {
	channels := buffers.floatBuf.Format.NumChannels
	for start := 0; start < frames; start += blockSize {
		end := min(start+blockSize, frames)
		buffers.block.Data = buffers.floatBuf.Data[start*channels : end*channels]
		if err := effect.ProcessBuffer(buffers.block); err != nil {
			return fmt.Errorf("processing failed at frame %d: %w", start, err)
		}
	}
	return nil
}

// maxValue returns the maximum sample value for the given bit depth.
func maxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth %d (16, 24 or 32 only)", bitDepth)
	}
}

// intToFloat normalizes PCM integers to [-1.0, 1.0].
func intToFloat(src []int, dst []float32, invMaxVal float64) {
	for i, v := range src {
		dst[i] = float32(float64(v) * invMaxVal)
	}
}

// floatToInt clamps to [-1.0, 1.0] and scales to PCM integers.
func floatToInt(src []float32, dst []int, maxVal float64) {
	for i, v := range src {
		sample := max(-1.0, min(float64(v), 1.0))
		dst[i] = int(sample * maxVal)
	}
}

// leadingSilentFrames counts whole frames of exact silence at the start of
// interleaved samples.
func leadingSilentFrames(samples []float32, channels int) int {
	for i, v := range samples {
		if v != 0 {
			return i / channels
		}
	}
	return len(samples) / channels
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalFrames int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		verbose:     verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if !p.verbose || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}
