//go:build headless

package main

import (
	"io"
	"time"
)

// headlessPlayer pulls audio at roughly real-time pace and discards it.
type headlessPlayer struct {
	src        io.Reader
	sampleRate int
	stop       chan struct{}
	done       chan struct{}
}

func newPlayer(sampleRate int, src io.Reader) (audioPlayer, error) {
	return &headlessPlayer{
		src:        src,
		sampleRate: sampleRate,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}, nil
}

func (p *headlessPlayer) Start() {
	go func() {
		defer close(p.done)

		buf := make([]byte, headlessChunkFrames*bytesPerFrame)
		tick := time.NewTicker(time.Second * headlessChunkFrames / time.Duration(p.sampleRate))
		defer tick.Stop()

		for {
			select {
			case <-p.stop:
				return
			case <-tick.C:
				if _, err := p.src.Read(buf); err != nil {
					return
				}
			}
		}
	}()
}

func (p *headlessPlayer) Close() error {
	close(p.stop)
	<-p.done
	return nil
}
