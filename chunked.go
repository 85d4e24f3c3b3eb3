package memlab

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by checked element access for an index at
// or beyond the sequence length.
var ErrIndexOutOfRange = errors.New("index is out of range")

// ChunkAllocator defines the contract for an allocator that hands out
// fixed-size chunks as arena-relative carve handles.
type ChunkAllocator[T any] interface {
	Alloc(n int) (Carve, error) // Carves a chunk of n elements.
	View(c Carve) []T           // Resolves a carve to a mutable window.
	Release()                   // Releases all backing memory at once.
}

// HeapAllocator is the plain-chunk strategy: every carve is an individually
// heap-allocated array owned by the allocator. It exists so that a chunked
// sequence with per-chunk allocations and one backed by a pool arena share a
// single implementation and differ only in where chunks come from.
type HeapAllocator[T any] struct {
	chunks [][]T
}

func NewHeapAllocator[T any]() *HeapAllocator[T] {
	return &HeapAllocator[T]{}
}

// Alloc allocates a fresh array of n elements. Each carve gets its own
// buffer, so the handle is always {buffer, 0, n}.
func (a *HeapAllocator[T]) Alloc(n int) (Carve, error) {
	if n <= 0 {
		return Carve{}, ErrInvalidCarveSize
	}
	a.chunks = append(a.chunks, make([]T, n))
	return Carve{Buffer: len(a.chunks) - 1, Offset: 0, Len: n}, nil
}

func (a *HeapAllocator[T]) View(c Carve) []T {
	return a.chunks[c.Buffer][c.Offset : c.Offset+c.Len : c.Offset+c.Len]
}

// Release drops all chunks. Outstanding views keep their memory alive until
// the holder lets go of them; the garbage collector does the actual freeing.
func (a *HeapAllocator[T]) Release() {
	a.chunks = nil
}

// Chunked is an append-only sequence stored as fixed-size chunks instead of
// one contiguous array. Growing never moves existing elements: when the
// logical size crosses a multiple of the chunk size a new chunk is carved
// from the allocator and appended to the chunk list.
//
// Element i lives at position i%chunkSize within chunk i/chunkSize.
//
// Not safe for concurrent use.
type Chunked[T any, A ChunkAllocator[T]] struct {
	alloc     A
	carves    []Carve // chunk handles, in creation order
	views     [][]T   // resolved chunk windows, same order as carves
	chunkSize int
	size      int // logical element count
}

// NewChunked creates a chunked sequence whose chunks are individually
// heap-allocated.
func NewChunked[T any](config Config) (*Chunked[T, *HeapAllocator[T]], error) {
	return Custom[T](NewHeapAllocator[T](), config)
}

// NewPooledChunked creates a chunked sequence whose chunks are carved from
// an embedded pool arena sized at config.PoolCapacity elements per buffer.
// The sequence never returns chunks to the pool; all memory is released in
// one batch when the sequence is released.
func NewPooledChunked[T any](config Config) (*Chunked[T, *Pool[T]], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.PoolCapacity <= 0 {
		return nil, errors.New("invalid config: PoolCapacity must be positive for a pool-backed sequence")
	}
	var (
		pool *Pool[T]
		err  error
	)
	if config.OffHeap {
		pool, err = NewOffHeapPool[T](config.PoolCapacity)
	} else {
		pool, err = NewPool[T](config.PoolCapacity)
	}
	if err != nil {
		return nil, err
	}
	return Custom[T](pool, config)
}

// Custom creates a chunked sequence over a caller-provided chunk allocator.
// The sequence takes ownership of the allocator and releases it from Release.
func Custom[T any, A ChunkAllocator[T]](alloc A, config Config) (*Chunked[T, A], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Chunked[T, A]{alloc: alloc, chunkSize: config.ChunkSize}, nil
}

// Append adds v to the end of the sequence, carving a new chunk first if the
// current one is full. Chunks are created lazily, exactly when the size
// crosses a multiple of the chunk size, so an empty sequence holds no memory.
func (s *Chunked[T, A]) Append(v T) {
	if s.size%s.chunkSize == 0 {
		c, err := s.alloc.Alloc(s.chunkSize)
		if err != nil {
			// Unreachable with a validated config: the chunk size is checked
			// against the pool capacity at construction.
			panic(fmt.Errorf("memlab: chunk allocation failed: %w", err))
		}
		s.carves = append(s.carves, c)
		s.views = append(s.views, s.alloc.View(c))
	}
	s.views[s.size/s.chunkSize][s.size%s.chunkSize] = v
	s.size++
}

// At returns a mutable reference to element i. Like raw array access it
// performs no bounds check against the logical size; i at or beyond Len is
// undefined behavior. Use Value for checked access off the hot path.
func (s *Chunked[T, A]) At(i int) *T {
	return &s.views[i/s.chunkSize][i%s.chunkSize]
}

// Value returns element i, or ErrIndexOutOfRange if i is not in [0, Len).
func (s *Chunked[T, A]) Value(i int) (T, error) {
	if i < 0 || i >= s.size {
		var zero T
		return zero, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, s.size)
	}
	return s.views[i/s.chunkSize][i%s.chunkSize], nil
}

// Len returns the number of elements appended so far.
func (s *Chunked[T, A]) Len() int {
	return s.size
}

// NumChunks returns the number of chunks created so far.
func (s *Chunked[T, A]) NumChunks() int {
	return len(s.carves)
}

// ChunkSize returns the number of elements per chunk.
func (s *Chunked[T, A]) ChunkSize() int {
	return s.chunkSize
}

// Carves returns the chunk handles in creation order. Useful for inspecting
// how chunks were laid out across the allocator's buffers.
func (s *Chunked[T, A]) Carves() []Carve {
	return s.carves
}

// Allocator returns the backing chunk allocator.
func (s *Chunked[T, A]) Allocator() A {
	return s.alloc
}

// Scan calls fn for every element in append order, walking chunk by chunk.
// It stops early if fn returns false.
func (s *Chunked[T, A]) Scan(fn func(v T) bool) {
	remaining := s.size
	for _, view := range s.views {
		n := min(len(view), remaining)
		for _, v := range view[:n] {
			if !fn(v) {
				return
			}
		}
		remaining -= n
	}
}

// Release drops the chunk list and releases the backing allocator. For a
// pool-backed sequence this unwinds every physical buffer in one batch; all
// references previously returned by At are invalid afterwards.
func (s *Chunked[T, A]) Release() {
	s.carves = nil
	s.views = nil
	s.size = 0
	s.alloc.Release()
}
