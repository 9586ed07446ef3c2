// Package queue implements the growable FIFO buffers used for segment
// accumulation and output queueing.
package queue

import (
	"github.com/tphakala/go-audio-glitch/internal/simdops"
)

// Queue is a FIFO of audio samples backed by a power-of-2 ring.
// It avoids the overhead of modulo operations by masking the read position.
//
// A Queue is owned by exactly one goroutine (the audio goroutine) and does
// no locking.
type Queue[F simdops.Float] struct {
	data    []F
	mask    int // len(data) - 1
	size    int
	readPos int
}

// New creates a queue able to hold capacity samples before growing.
// Capacity is rounded up to the nearest power of 2.
func New[F simdops.Float](capacity int) *Queue[F] {
	cap2 := minCapacity
	for cap2 < capacity {
		cap2 <<= 1
	}

	return &Queue[F]{
		data: make([]F, cap2),
		mask: cap2 - 1,
	}
}

// PushBack appends one sample, growing the ring when full.
func (q *Queue[F]) PushBack(sample F) {
	if q.size == len(q.data) {
		q.grow(q.size + 1)
	}

	q.data[(q.readPos+q.size)&q.mask] = sample
	q.size++
}

// Write appends samples in order.
func (q *Queue[F]) Write(samples []F) {
	if len(samples) == 0 {
		return
	}

	if q.size+len(samples) > len(q.data) {
		q.grow(q.size + len(samples))
	}

	for _, sample := range samples {
		q.data[(q.readPos+q.size)&q.mask] = sample
		q.size++
	}
}

// PopFront removes and returns the oldest sample.
// ok is false when the queue is empty.
func (q *Queue[F]) PopFront() (sample F, ok bool) {
	if q.size == 0 {
		return 0, false
	}

	sample = q.data[q.readPos]
	q.readPos = (q.readPos + 1) & q.mask
	q.size--

	return sample, true
}

// PopFrontOrZero removes and returns the oldest sample, or silence when empty.
func (q *Queue[F]) PopFrontOrZero() F {
	sample, _ := q.PopFront()
	return sample
}

// Read removes up to n samples and returns them in order.
func (q *Queue[F]) Read(n int) []F {
	if n > q.size {
		n = q.size
	}
	if n <= 0 {
		return []F{}
	}

	result := make([]F, n)
	for i := range n {
		result[i] = q.data[(q.readPos+i)&q.mask]
	}
	q.discard(n)

	return result
}

// ReadAll removes and returns every queued sample.
func (q *Queue[F]) ReadAll() []F {
	return q.Read(q.size)
}

// Peek returns up to n samples without removing them.
func (q *Queue[F]) Peek(n int) []F {
	if n > q.size {
		n = q.size
	}
	if n <= 0 {
		return []F{}
	}

	result := make([]F, n)
	for i := range n {
		result[i] = q.data[(q.readPos+i)&q.mask]
	}

	return result
}

// MoveTo drains every queued sample into dst, preserving order.
// Returns the number of samples moved.
func (q *Queue[F]) MoveTo(dst *Queue[F]) int {
	n := q.size
	if n == 0 {
		return 0
	}

	if dst.size+n > len(dst.data) {
		dst.grow(dst.size + n)
	}
	for i := range n {
		dst.data[(dst.readPos+dst.size)&dst.mask] = q.data[(q.readPos+i)&q.mask]
		dst.size++
	}
	q.Clear()

	return n
}

// TrimFront drops the oldest samples until at most maxLen remain.
// Returns the number of samples dropped.
func (q *Queue[F]) TrimFront(maxLen int) int {
	if maxLen < 0 {
		maxLen = 0
	}
	if q.size <= maxLen {
		return 0
	}

	dropped := q.size - maxLen
	q.discard(dropped)

	return dropped
}

// Len returns the number of queued samples.
func (q *Queue[F]) Len() int {
	return q.size
}

// Capacity returns the current ring capacity.
func (q *Queue[F]) Capacity() int {
	return len(q.data)
}

// Clear removes all samples while keeping the allocation.
func (q *Queue[F]) Clear() {
	q.size = 0
	q.readPos = 0
}

func (q *Queue[F]) discard(n int) {
	q.readPos = (q.readPos + n) & q.mask
	q.size -= n
	if q.size == 0 {
		q.readPos = 0
	}
}

// grow increases the ring capacity to at least minCap, keeping sample order.
func (q *Queue[F]) grow(minCap int) {
	newCap := len(q.data)
	for newCap < minCap {
		newCap *= bufferGrowthFactor
	}

	newData := make([]F, newCap)
	for i := range q.size {
		newData[i] = q.data[(q.readPos+i)&q.mask]
	}

	q.data = newData
	q.mask = newCap - 1
	q.readPos = 0
}
