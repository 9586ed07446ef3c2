package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_PushPopOrder(t *testing.T) {
	q := New[float32](4)

	for i := range 10 {
		q.PushBack(float32(i))
	}
	require.Equal(t, 10, q.Len())
	assert.GreaterOrEqual(t, q.Capacity(), 10)

	for i := range 10 {
		v, ok := q.PopFront()
		require.True(t, ok)
		assert.InDelta(t, float32(i), v, 0)
	}

	_, ok := q.PopFront()
	assert.False(t, ok, "pop on empty queue must report !ok")
}

func TestQueue_PopFrontOrZero_EmptyIsIdempotent(t *testing.T) {
	q := New[float32](8)

	for range 100 {
		assert.Zero(t, q.PopFrontOrZero())
		assert.Equal(t, 0, q.Len())
	}

	q.PushBack(0.25)
	assert.InDelta(t, float32(0.25), q.PopFrontOrZero(), 0)
	assert.Zero(t, q.PopFrontOrZero())
	assert.Equal(t, 0, q.Len())
}

func TestQueue_GrowAfterWrap(t *testing.T) {
	q := New[float64](4)

	// Advance the read position so the live region wraps around the ring.
	q.Write([]float64{1, 2, 3})
	q.PopFront()
	q.PopFront()
	q.Write([]float64{4, 5, 6})

	// Force growth while wrapped.
	q.Write([]float64{7, 8, 9, 10})

	assert.Equal(t, []float64{3, 4, 5, 6, 7, 8, 9, 10}, q.ReadAll())
	assert.Equal(t, 0, q.Len())
}

func TestQueue_PeekDoesNotConsume(t *testing.T) {
	q := New[float32](2)
	q.Write([]float32{1, 2, 3})

	assert.Equal(t, []float32{1, 2}, q.Peek(2))
	assert.Equal(t, []float32{1, 2, 3}, q.Peek(10))
	assert.Equal(t, 3, q.Len())
	assert.Empty(t, New[float32](1).Peek(3))
}

func TestQueue_TrimFront(t *testing.T) {
	q := New[float32](16)
	q.Write([]float32{1, 2, 3, 4, 5, 6})

	dropped := q.TrimFront(4)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, []float32{3, 4, 5, 6}, q.Peek(q.Len()))

	assert.Equal(t, 0, q.TrimFront(10), "no trim when already under the cap")
	assert.Equal(t, 4, q.TrimFront(-1), "negative cap trims everything")
	assert.Equal(t, 0, q.Len())
}

func TestQueue_MoveTo(t *testing.T) {
	src := New[float32](2)
	dst := New[float32](2)

	dst.Write([]float32{-1})
	src.Write([]float32{1, 2, 3})

	n := src.MoveTo(dst)
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, src.Len())
	assert.Equal(t, []float32{-1, 1, 2, 3}, dst.ReadAll())

	assert.Equal(t, 0, src.MoveTo(dst))
}

func TestQueue_ClearKeepsCapacity(t *testing.T) {
	q := New[float32](3)
	q.Write([]float32{1, 2, 3, 4, 5})
	capBefore := q.Capacity()

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, capBefore, q.Capacity())

	q.PushBack(9)
	assert.Equal(t, []float32{9}, q.ReadAll())
}

func TestQueue_ReadPartial(t *testing.T) {
	q := New[float32](8)
	q.Write([]float32{1, 2, 3})

	assert.Equal(t, []float32{1, 2}, q.Read(2))
	assert.Equal(t, []float32{3}, q.Read(5))
	assert.Empty(t, q.Read(1))
	assert.Empty(t, q.Read(0))
}
