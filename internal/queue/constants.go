package queue

// Buffer sizing constants
const (
	minCapacity        = 1 // Smallest backing array (rounded up to a power of 2)
	bufferGrowthFactor = 2 // Factor for buffer growth
)
