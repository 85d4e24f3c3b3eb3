package memlab

// NumBuffers returns the number of buffers currently owned by the pool.
func (p *Pool[T]) NumBuffers() int {
	return len(p.buffers)
}

// Capacity returns the per-buffer capacity the pool was constructed with,
// in elements.
func (p *Pool[T]) Capacity() int {
	return p.capacity
}

// SizeInUse returns the total number of elements carved out of the pool.
// Tail space skipped when a carve forced a new buffer counts as waste, not
// use.
func (p *Pool[T]) SizeInUse() int {
	sum := 0
	for i := range p.buffers {
		sum += p.buffers[i].offset
	}
	return sum
}

// TotalCapacity returns the combined capacity of all buffers, in elements.
func (p *Pool[T]) TotalCapacity() int {
	return len(p.buffers) * p.capacity
}

// Utilization returns the ratio of carved elements to total capacity
// (0.0 to 1.0). Returns 0.0 for a released pool.
func (p *Pool[T]) Utilization() float64 {
	total := p.TotalCapacity()
	if total == 0 {
		return 0
	}
	return float64(p.SizeInUse()) / float64(total)
}

// PoolMetrics is a snapshot of pool statistics.
type PoolMetrics struct {
	SizeInUse     int     // Elements carved out.
	TotalCapacity int     // Combined capacity of all buffers, in elements.
	NumBuffers    int     // Number of owned buffers.
	Capacity      int     // Per-buffer capacity, in elements.
	Utilization   float64 // SizeInUse / TotalCapacity (0.0-1.0).
	OffHeap       bool    // Whether buffers live outside the Go heap.
}

// Metrics returns a snapshot of the pool's statistics.
func (p *Pool[T]) Metrics() PoolMetrics {
	return PoolMetrics{
		SizeInUse:     p.SizeInUse(),
		TotalCapacity: p.TotalCapacity(),
		NumBuffers:    p.NumBuffers(),
		Capacity:      p.capacity,
		Utilization:   p.Utilization(),
		OffHeap:       p.offHeap,
	}
}
