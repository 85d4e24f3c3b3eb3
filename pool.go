package memlab

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/unix"
)

var (
	// ErrCapacityExceeded is returned when a single carve request is larger
	// than a pool buffer can ever hold.
	ErrCapacityExceeded = errors.New("carve size exceeds buffer capacity")

	// ErrInvalidCarveSize is returned when a carve of zero or negative length
	// is requested.
	ErrInvalidCarveSize = errors.New("carve size must be positive")
)

// Carve is an arena-relative handle to a contiguous run of elements inside
// one of a pool's buffers. Handles are plain indices rather than pointers:
// the pool retains ownership of the memory, the holder of a Carve only owns
// its usage. A handle stays valid until the issuing pool is released.
type Carve struct {
	Buffer int // index of the owning buffer, in allocation order
	Offset int // element offset within the buffer
	Len    int // number of elements
}

// buf is a single fixed-capacity backing region owned by a pool.
type buf[T any] struct {
	elems  []T    // element view, len == pool capacity
	raw    []byte // mmap'd backing region for off-heap buffers, nil otherwise
	offset int    // elements carved so far
}

// Pool is an arena allocator over homogeneous elements of type T.
//
// It owns an ordered list of fixed-capacity buffers and serves each request
// by advancing an offset in the newest one. A request that does not fit in
// the remaining space of the current buffer triggers a brand-new buffer of
// the same capacity; old buffers are retained untouched so previously issued
// carves stay valid. Individual carves are never reclaimed, Release drops
// everything at once.
//
// Not safe for concurrent use.
type Pool[T any] struct {
	buffers  []buf[T]
	capacity int // elements per buffer, fixed at construction
	offHeap  bool
}

// NewPool creates a pool with the given per-buffer capacity, in elements,
// and preallocates the first buffer on the Go heap.
func NewPool[T any](capacity int) (*Pool[T], error) {
	return newPool[T](capacity, false)
}

// NewOffHeapPool is like NewPool but places buffers in anonymous mmap'd
// memory that is not part of the Go heap, reducing how much memory GOGC has
// to scan. T must not contain pointers: the collector cannot see off-heap
// memory, so any pointer stored there would not keep its target alive.
func NewOffHeapPool[T any](capacity int) (*Pool[T], error) {
	return newPool[T](capacity, true)
}

func newPool[T any](capacity int, offHeap bool) (*Pool[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("invalid pool capacity %d: must be positive", capacity)
	}
	p := &Pool[T]{capacity: capacity, offHeap: offHeap}
	p.grow()
	return p, nil
}

// Alloc carves n contiguous elements out of the current buffer and returns a
// handle to them. If the current buffer has fewer than n free elements a new
// buffer of the pool's fixed capacity is allocated first and the carve is
// served from its start.
//
// A request larger than the buffer capacity can never be served and returns
// ErrCapacityExceeded instead of overrunning the buffer.
func (p *Pool[T]) Alloc(n int) (Carve, error) {
	p.panicIfReleased()
	if n <= 0 {
		return Carve{}, ErrInvalidCarveSize
	}
	if n > p.capacity {
		return Carve{}, fmt.Errorf("%w: requested %d, capacity %d", ErrCapacityExceeded, n, p.capacity)
	}

	b := &p.buffers[len(p.buffers)-1]
	if b.offset+n > p.capacity {
		p.grow()
		b = &p.buffers[len(p.buffers)-1]
	}
	c := Carve{Buffer: len(p.buffers) - 1, Offset: b.offset, Len: n}
	b.offset += n
	return c, nil
}

// View resolves a carve handle to a mutable window into the owning buffer.
// The window must not be used after the pool is released.
func (p *Pool[T]) View(c Carve) []T {
	p.panicIfReleased()
	return p.buffers[c.Buffer].elems[c.Offset : c.Offset+c.Len : c.Offset+c.Len]
}

// Release drops every buffer and makes the pool unusable. All previously
// issued carves and views are invalid afterwards; any subsequent pool
// operation panics. Off-heap buffers are returned to the operating system.
func (p *Pool[T]) Release() {
	if p.buffers == nil {
		return
	}
	for i := range p.buffers {
		if raw := p.buffers[i].raw; raw != nil {
			p.unmap(raw)
		}
	}
	p.buffers = nil
}

// grow appends a fresh buffer of the pool's fixed capacity.
func (p *Pool[T]) grow() {
	if p.offHeap {
		p.buffers = append(p.buffers, mmapBuf[T](p.capacity))
		return
	}
	p.buffers = append(p.buffers, buf[T]{elems: make([]T, p.capacity)})
}

// unmap releases the memory of an off-heap buffer back to the operating system.
func (p *Pool[T]) unmap(raw []byte) {
	if err := unix.Munmap(raw); err != nil {
		slog.Error("failed to unmap pool buffer", "error", err)
	}
}

func (p *Pool[T]) panicIfReleased() {
	if p.buffers == nil {
		panic("memlab: pool used after Release")
	}
}

// mmapBuf allocates a buffer of capacity elements of type T via unix.Mmap,
// keeping it off the Go heap. Running out of memory here is fatal.
func mmapBuf[T any](capacity int) buf[T] {
	var zero T
	size := capacity * int(unsafe.Sizeof(zero))

	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		panic(fmt.Errorf("cannot allocate %d bytes via mmap: %w", size, err))
	}
	elems := unsafe.Slice((*T)(unsafe.Pointer(&data[0])), capacity)
	return buf[T]{elems: elems, raw: data}
}
