package engine

import (
	"math"

	"github.com/tphakala/go-audio-glitch/internal/queue"
	"github.com/tphakala/go-audio-glitch/internal/simdops"
)

// Interlace drains buffers into dst, braiding them in proportion to their
// lengths relative to buffers[0]. Returns the number of samples written.
//
// Each step pops one sample from the head buffer, then for every other
// buffer i adds len[i]/len[0] to an accumulator and pops floor(acc) samples
// from it. The braid stops as soon as any pop fails. Whatever is left is
// then appended buffer by buffer in index order, so the output always holds
// every input sample exactly once.
//
// An empty head buffer gives ratio 0 for every buffer: there is no braid and
// the remaining buffers are concatenated.
//
// At most MaxSegments buffers are used.
func Interlace[F simdops.Float](dst *queue.Queue[F], buffers []*queue.Queue[F]) int {
	n := min(len(buffers), MaxSegments)
	if n == 0 {
		return 0
	}

	var ratios, acc [MaxSegments]float64
	if head := buffers[0].Len(); head > 0 {
		for i := 1; i < n; i++ {
			ratios[i] = float64(buffers[i].Len()) / float64(head)
		}
	}

	written := 0

braid:
	for {
		sample, ok := buffers[0].PopFront()
		if !ok {
			break
		}
		dst.PushBack(sample)
		written++

		for i := 1; i < n; i++ {
			acc[i] += ratios[i]
			k := math.Floor(acc[i])
			acc[i] -= k

			for range int(k) {
				sample, ok := buffers[i].PopFront()
				if !ok {
					break braid
				}
				dst.PushBack(sample)
				written++
			}
		}
	}

	for i := range n {
		written += buffers[i].MoveTo(dst)
	}

	return written
}
