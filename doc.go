// Package memlab implements the storage primitives behind a set of
// memory-layout micro-benchmarks: a pool (arena) allocator and an append-only
// chunked sequence built on top of it.
//
// # Pool allocator
//
// A [Pool] owns one or more fixed-capacity buffers and serves allocation
// requests by carving successive sub-ranges out of the current buffer. When a
// request does not fit, a fresh buffer of the same capacity is allocated and
// carving continues there. Buffers are never resized or moved, so carves
// issued from older buffers stay valid for the lifetime of the pool. There is
// no per-carve deallocation; [Pool.Release] tears down every buffer at once.
//
// Carves are handed out as [Carve] handles (buffer index, offset, length)
// rather than bare slices, which keeps the ownership direction explicit: the
// pool owns the memory, the caller owns its usage. [Pool.View] resolves a
// handle to a mutable window.
//
// Buffers live on the Go heap by default. [NewOffHeapPool] places them in
// anonymous mmap'd memory outside the heap instead, which removes the
// buffers from the garbage collector's scan set; the element type must not
// contain pointers in that case.
//
// # Chunked sequence
//
// A [Chunked] sequence stores its elements in fixed-size chunks instead of
// one contiguous array, trading a little indexing arithmetic for growth
// without large reallocations. Chunks come from a [ChunkAllocator]: either
// individually heap-allocated ([NewChunked]) or carved from an embedded
// [Pool] ([NewPooledChunked]), which batches many logical chunks into few
// physical allocations.
//
// Nothing in this package is safe for concurrent use; the benchmarks it
// serves are strictly single-threaded.
package memlab
