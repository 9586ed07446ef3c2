package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// keyReader puts stdin in raw mode and delivers single key presses on a
// channel. The read goroutine blocks on stdin and exits with the process.
type keyReader struct {
	fd       int
	oldState *term.State
	keys     chan byte
	restore  sync.Once
}

// newKeyReader switches stdin to raw mode. It fails when stdin is not a
// terminal.
func newKeyReader() (*keyReader, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}

	k := &keyReader{
		fd:       fd,
		oldState: oldState,
		keys:     make(chan byte, 16),
	}
	go k.readLoop(os.Stdin)

	return k, nil
}

func (k *keyReader) readLoop(r io.Reader) {
	defer close(k.keys)
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			k.keys <- buf[0]
		}
		if err != nil {
			return
		}
	}
}

// Keys returns the key press channel. It is closed when stdin ends.
func (k *keyReader) Keys() <-chan byte {
	return k.keys
}

// Restore returns the terminal to its original mode.
func (k *keyReader) Restore() {
	k.restore.Do(func() {
		_ = term.Restore(k.fd, k.oldState)
	})
}
