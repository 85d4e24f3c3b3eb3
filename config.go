package memlab

import (
	"errors"
	"fmt"
)

const (
	// DefaultChunkSize is the default number of elements per chunk.
	DefaultChunkSize = 64

	// DefaultPoolCapacity is the default number of elements per pool buffer
	// (32 chunks of the default size per physical allocation).
	DefaultPoolCapacity = 2048
)

type Config struct {
	// ChunkSize is the number of elements per chunk of a chunked sequence.
	ChunkSize int

	// PoolCapacity is the number of elements per buffer of the backing pool
	// used by pool-backed sequences. It must be a whole multiple of ChunkSize
	// so that several logical chunks are carved from one physical buffer and
	// no carve ever spans two buffers.
	PoolCapacity int

	// OffHeap places pool buffers in anonymous mmap'd memory outside the Go
	// heap. Only meaningful for pool-backed sequences; the element type must
	// not contain pointers.
	OffHeap bool
}

func (c Config) Validate() error {
	var errs []error
	if c.ChunkSize <= 0 {
		errs = append(errs, errors.New("invalid config: ChunkSize must be positive"))
	}
	if c.PoolCapacity < 0 {
		errs = append(errs, errors.New("invalid config: PoolCapacity cannot be negative"))
	}
	if c.ChunkSize > 0 && c.PoolCapacity > 0 && c.PoolCapacity%c.ChunkSize != 0 {
		errs = append(
			errs,
			fmt.Errorf("invalid config: PoolCapacity %d must be a multiple of ChunkSize %d", c.PoolCapacity, c.ChunkSize),
		)
	}
	return errors.Join(errs...)
}

func DefaultConfig() Config {
	return Config{
		ChunkSize:    DefaultChunkSize,
		PoolCapacity: DefaultPoolCapacity,
	}
}
