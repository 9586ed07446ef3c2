//go:build !headless

package main

import (
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// otoPlayer plays float32 stereo audio pulled from a reader.
type otoPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
}

func newPlayer(sampleRate int, src io.Reader) (audioPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: stereoChannels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   playerBufferDuration,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &otoPlayer{
		ctx:    ctx,
		player: ctx.NewPlayer(src),
	}, nil
}

func (p *otoPlayer) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player != nil && !p.player.IsPlaying() {
		p.player.Play()
	}
}

func (p *otoPlayer) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player == nil {
		return nil
	}
	p.player.Pause()
	p.player = nil
	return p.ctx.Suspend()
}
