package main

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	glitch "github.com/tphakala/go-audio-glitch"
)

// writeTestWAV encodes interleaved PCM data to path.
func writeTestWAV(t *testing.T, path string, sampleRate, bitDepth, channels int, data []int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())
}

// readTestWAV decodes path fully.
func readTestWAV(t *testing.T, path string) (*audio.IntBuffer, int) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return buf, int(dec.BitDepth)
}

// sineStereo builds interleaved 16-bit frames with a sine on the left
// channel and rightScale times the same sine on the right.
func sineStereo(frames int, freq, sampleRate, rightScale float64) []int {
	data := make([]int, frames*stereoChannels)
	for i := range frames {
		v := 0.5 * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
		data[i*2] = int(v * maxInt16)
		data[i*2+1] = int(v * rightScale * maxInt16)
	}
	return data
}

func testOptions() options {
	return options{
		preset:    glitch.DefaultPreset(),
		blockSize: defaultBlockSize,
		seed:      glitch.DefaultSeed,
	}
}

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	invalidFile := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(invalidFile, []byte("not a wav file"), 0o644))

	_, err := openWAVInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestOpenWAVInput_UnsupportedChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surround.wav")
	writeTestWAV(t, path, 48000, 16, 6, make([]int, 600))

	_, err := openWAVInput(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported channel count")
}

func TestOpenWAVInput_Stereo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	writeTestWAV(t, path, 44100, 24, 2, make([]int, 2000))

	input, err := openWAVInput(path, false)
	require.NoError(t, err)
	defer func() { _ = input.Close() }()

	assert.Equal(t, 44100, input.rate)
	assert.Equal(t, 2, input.channels)
	assert.Equal(t, 24, input.bitDepth)
}

func TestCreateWAVOutput_InvalidDirectory(t *testing.T) {
	_, err := createWAVOutput("/nonexistent/dir/output.wav", 48000, 16, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestMaxValue(t *testing.T) {
	v, err := maxValue(16)
	require.NoError(t, err)
	assert.Equal(t, maxInt16, v)

	v, err = maxValue(24)
	require.NoError(t, err)
	assert.Equal(t, maxInt24, v)

	_, err = maxValue(12)
	assert.Error(t, err)
}

func TestIntFloatConversion(t *testing.T) {
	src := []int{0, 16384, -32767, 32767}
	floats := make([]float32, len(src))
	intToFloat(src, floats, 1/maxInt16)

	assert.InDelta(t, 0.5, floats[1], 1e-4)
	assert.InDelta(t, -1.0, floats[2], 1e-6)

	back := make([]int, len(src))
	floatToInt(floats, back, maxInt16)
	for i := range src {
		assert.InDelta(t, src[i], back[i], 1, "sample %d", i)
	}

	floatToInt([]float32{1.5, -2}, back[:2], maxInt16)
	assert.Equal(t, []int{32767, -32767}, back[:2], "out-of-range samples are clamped")
}

func TestLeadingSilentFrames(t *testing.T) {
	assert.Equal(t, 2, leadingSilentFrames([]float32{0, 0, 0, 0, 0, 0.1}, 2))
	assert.Equal(t, 3, leadingSilentFrames([]float32{0, 0, 0, 0, 0, 0}, 2))
	assert.Equal(t, 0, leadingSilentFrames([]float32{0.2, 0}, 2))
}

func TestValidateArgs(t *testing.T) {
	assert.NoError(t, validateArgs([]string{"in.wav", "out.wav"}, false, ""))
	assert.Error(t, validateArgs([]string{"in.wav"}, false, ""))
	assert.Error(t, validateArgs([]string{"in.wav"}, true, ""))
	assert.Error(t, validateArgs(nil, true, "out"))
	assert.NoError(t, validateArgs([]string{"a.wav", "b.wav", "c.wav"}, true, "out"))
}

func TestProcessWAV_StereoSwapsChannels(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	const frames = 22050
	writeTestWAV(t, in, 44100, 16, 2, sineStereo(frames, 220, 44100, 0))

	stats, err := processWAV(in, out, testOptions())
	require.NoError(t, err)
	assert.Equal(t, int64(frames), stats.frames)
	assert.Positive(t, stats.interlaces)
	assert.Positive(t, stats.leadingSilence)

	buf, bitDepth := readTestWAV(t, out)
	assert.Equal(t, 16, bitDepth)
	assert.Equal(t, 2, buf.Format.NumChannels)
	assert.Equal(t, 44100, buf.Format.SampleRate)
	require.Len(t, buf.Data, frames*2)

	rightEnergy := 0
	for i := range frames {
		assert.Zero(t, buf.Data[i*2], "left output comes from the silent right input")
		if buf.Data[i*2+1] != 0 {
			rightEnergy++
		}
	}
	assert.Greater(t, rightEnergy, frames/2)
}

func TestProcessWAV_Mono(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "mono.wav")
	out := filepath.Join(dir, "mono_out.wav")

	const frames = 8000
	data := make([]int, frames)
	for i := range data {
		data[i] = int(0.4 * maxInt24 * math.Sin(2*math.Pi*150*float64(i)/16000))
	}
	writeTestWAV(t, in, 16000, 24, 1, data)

	opts := testOptions()
	opts.preset = &glitch.Preset{Division: 0.1, Bias: 0.5}
	stats, err := processWAV(in, out, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.channels)

	buf, bitDepth := readTestWAV(t, out)
	assert.Equal(t, 24, bitDepth)
	assert.Equal(t, 1, buf.Format.NumChannels)
	assert.Len(t, buf.Data, frames)
}

func TestProcessWAV_BlockSizeIndependent(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	writeTestWAV(t, in, 22050, 16, 2, sineStereo(5000, 300, 22050, 0.5))

	process := func(blockSize int) []int {
		opts := testOptions()
		opts.blockSize = blockSize
		opts.preset = &glitch.Preset{Division: 0.3, Bias: 0.5, Perturb: 0.5}

		out := filepath.Join(dir, "out.wav")
		_, err := processWAV(in, out, opts)
		require.NoError(t, err)
		buf, _ := readTestWAV(t, out)
		return buf.Data
	}

	want := process(defaultBlockSize)
	assert.Equal(t, want, process(1))
	assert.Equal(t, want, process(bufferSize))
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	var inputs []string
	for _, name := range []string{"a.wav", "b.wav", "c.wav"} {
		path := filepath.Join(dir, name)
		writeTestWAV(t, path, 8000, 16, 2, sineStereo(2000, 100, 8000, 1))
		inputs = append(inputs, path)
	}

	require.NoError(t, runBatch(context.Background(), inputs, outDir, 2, testOptions()))

	for _, name := range []string{"a.wav", "b.wav", "c.wav"} {
		buf, _ := readTestWAV(t, filepath.Join(outDir, name))
		assert.Len(t, buf.Data, 4000, name)
	}
}

func TestRunBatch_ReportsFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.wav")
	writeTestWAV(t, good, 8000, 16, 2, make([]int, 200))

	err := runBatch(context.Background(), []string{good, filepath.Join(dir, "missing.wav")},
		filepath.Join(dir, "out"), 1, testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.wav")
}
