package engine

import (
	"github.com/tphakala/go-audio-glitch/internal/queue"
	"github.com/tphakala/go-audio-glitch/internal/simdops"
)

// SegmentSet holds the per-channel segment buffers and the active index.
//
// Channels are cross-routed: the left set accumulates the right input and
// the right set the left input, so the interlaced output is channel-swapped.
//
// Invariant: 0 <= activeSegmentIndex < MaxSegments after every call. The
// index doubles as the number of crossings seen since the last interlace.
//
// Segments grow without bound while no interlace happens. When the division
// count shrinks live, buffers at indices >= N keep their samples until N
// grows back over them or Clear is called.
type SegmentSet[F simdops.Float] struct {
	left  [MaxSegments]*queue.Queue[F]
	right [MaxSegments]*queue.Queue[F]

	activeSegmentIndex int
}

// NewSegmentSet allocates both buffer sets with the given initial capacity.
func NewSegmentSet[F simdops.Float](capacity int) *SegmentSet[F] {
	s := &SegmentSet[F]{}
	for i := range MaxSegments {
		s.left[i] = queue.New[F](capacity)
		s.right[i] = queue.New[F](capacity)
	}
	return s
}

// ActiveIndex returns the buffer currently being filled.
func (s *SegmentSet[F]) ActiveIndex() int {
	return s.activeSegmentIndex
}

// Advance records one detected crossing. It returns true when the index has
// reached divisions, meaning the first divisions buffers must be interlaced
// (Flush) before the next Append.
//
// A stale index left over from a larger division count is not clamped here;
// it triggers on the next crossing instead.
func (s *SegmentSet[F]) Advance(divisions int) bool {
	divisions = clampDivisions(divisions)
	s.activeSegmentIndex++
	return s.activeSegmentIndex >= divisions
}

// Append routes one input frame into the active buffers (cross-routed).
func (s *SegmentSet[F]) Append(leftIn, rightIn F) {
	s.left[s.activeSegmentIndex].PushBack(rightIn)
	s.right[s.activeSegmentIndex].PushBack(leftIn)
}

// Flush interlaces the first divisions buffers of each set into outLeft and
// outRight and resets the active index to 0.
// Returns the number of samples written per channel.
func (s *SegmentSet[F]) Flush(divisions int, outLeft, outRight *queue.Queue[F]) int {
	divisions = clampDivisions(divisions)

	n := Interlace(outLeft, s.left[:divisions])
	Interlace(outRight, s.right[:divisions])
	s.activeSegmentIndex = 0

	return n
}

// Lengths returns the current length of every left-set buffer.
// Both sets always hold the same number of samples per index.
func (s *SegmentSet[F]) Lengths() [MaxSegments]int {
	var lengths [MaxSegments]int
	for i, b := range s.left {
		lengths[i] = b.Len()
	}
	return lengths
}

// Pending returns the total number of samples held per channel.
func (s *SegmentSet[F]) Pending() int {
	total := 0
	for _, b := range s.left {
		total += b.Len()
	}
	return total
}

// Clear empties every buffer and resets the active index.
func (s *SegmentSet[F]) Clear() {
	for i := range MaxSegments {
		s.left[i].Clear()
		s.right[i].Clear()
	}
	s.activeSegmentIndex = 0
}

func clampDivisions(divisions int) int {
	return max(MinDivisions, min(divisions, MaxSegments))
}
