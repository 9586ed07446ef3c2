package engine

// Export internal functions for testing.
// This file uses the _test.go suffix so it's only included in test builds.

// ForceStep processes one frame with a fixed detection decision, bypassing
// the sensing filter and detector.
func (p *Processor[F]) ForceStep(left, right F, detected bool) (outLeft, outRight F) {
	return p.advance(left, right, detected)
}

// SegmentContents returns copies of the left and right buffers at index i.
func (s *SegmentSet[F]) SegmentContents(i int) (left, right []F) {
	return s.left[i].Peek(s.left[i].Len()), s.right[i].Peek(s.right[i].Len())
}

// PrevSensing returns the stored previous sensing value.
func (p *Processor[F]) PrevSensing() F {
	return p.prevSensing
}
