package testutils

import (
	memlab "github.com/memlab/go-memlab"
)

// CountingAllocator is a memlab.ChunkAllocator that records how it is used.
// Chunks are plain heap arrays; the counters let tests assert exactly how
// many chunk allocations a sequence performed.
type CountingAllocator[T any] struct {
	chunks       [][]T
	allocCalls   int
	releaseCalls int
}

func (a *CountingAllocator[T]) Alloc(n int) (memlab.Carve, error) {
	if n <= 0 {
		return memlab.Carve{}, memlab.ErrInvalidCarveSize
	}
	a.allocCalls++
	a.chunks = append(a.chunks, make([]T, n))
	return memlab.Carve{Buffer: len(a.chunks) - 1, Offset: 0, Len: n}, nil
}

func (a *CountingAllocator[T]) View(c memlab.Carve) []T {
	return a.chunks[c.Buffer][c.Offset : c.Offset+c.Len]
}

func (a *CountingAllocator[T]) Release() {
	a.releaseCalls++
	a.chunks = nil
}

func (a *CountingAllocator[T]) AllocCalls() int {
	return a.allocCalls
}

func (a *CountingAllocator[T]) ReleaseCalls() int {
	return a.releaseCalls
}

func (a *CountingAllocator[T]) Reset() {
	a.chunks = nil
	a.allocCalls = 0
	a.releaseCalls = 0
}
