// Package bench drives the wall-clock measurements for the suite. It
// constructs a container, performs a fixed workload of sequential appends
// followed by a full accumulating scan, and keeps the best time over a
// number of repeats. The storage packages never time anything themselves;
// they are purely invoked from here.
package bench

import (
	"errors"
	"fmt"
	"math"
	"time"

	memlab "github.com/memlab/go-memlab"
	"github.com/memlab/go-memlab/particles"
)

// Strategy names a growable-sequence variant under measurement.
type Strategy string

const (
	StrategySlice         Strategy = "slice"
	StrategyChunked       Strategy = "chunked"
	StrategyPooled        Strategy = "chunked-pooled"
	StrategyPooledOffHeap Strategy = "chunked-pooled-offheap"
)

// Strategies lists every sequence strategy in reporting order.
var Strategies = []Strategy{
	StrategySlice,
	StrategyChunked,
	StrategyPooled,
	StrategyPooledOffHeap,
}

// Options configures a sequence suite run.
type Options struct {
	Sizes      []int         // Workload sizes (appends per run).
	Repeats    int           // Timed repetitions per size; the best time wins.
	Config     memlab.Config // Chunk and pool sizing for the chunked strategies.
	Strategies []Strategy    // Strategies to measure; nil means all of them.
}

func (o Options) strategies() []Strategy {
	if o.Strategies == nil {
		return Strategies
	}
	return o.Strategies
}

func (o Options) validate() error {
	var errs []error
	if len(o.Sizes) == 0 {
		errs = append(errs, errors.New("invalid options: no workload sizes"))
	}
	for _, n := range o.Sizes {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("invalid options: workload size %d must be positive", n))
		}
	}
	if o.Repeats <= 0 {
		errs = append(errs, errors.New("invalid options: Repeats must be positive"))
	}
	if err := o.Config.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Result holds the measurements for one workload size.
type Result struct {
	N       int                        // Number of appended elements.
	Times   map[Strategy]time.Duration // Best-of-repeats elapsed time per strategy.
	Speedup float64                    // Slice time over pooled time.
}

// sink publishes each run's accumulated sum so the scan loops stay observable.
var sink int64

// Run measures every strategy at every workload size and returns one Result
// per size, in input order.
func Run(opts Options) ([]Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	strategies := opts.strategies()
	results := make([]Result, 0, len(opts.Sizes))
	for _, n := range opts.Sizes {
		r := Result{N: n, Times: make(map[Strategy]time.Duration, len(strategies))}
		for _, strategy := range strategies {
			run, err := workload(strategy, n, opts.Config)
			if err != nil {
				return nil, err
			}
			r.Times[strategy] = bestOf(opts.Repeats, run)
		}
		if pooled := r.Times[StrategyPooled]; pooled > 0 {
			r.Speedup = float64(r.Times[StrategySlice]) / float64(pooled)
		}
		results = append(results, r)
	}
	return results, nil
}

// workload builds the append-then-scan closure for a strategy. Construction
// errors surface here once instead of inside the timed loop.
func workload(strategy Strategy, n int, config memlab.Config) (func(), error) {
	switch strategy {
	case StrategySlice:
		return func() { runSlice(n) }, nil
	case StrategyChunked:
		return func() { runChunked(n, config) }, nil
	case StrategyPooled:
		config.OffHeap = false
		return func() { runPooled(n, config) }, nil
	case StrategyPooledOffHeap:
		config.OffHeap = true
		return func() { runPooled(n, config) }, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// runSlice is the baseline: a plain slice with preallocated capacity, the
// same head start the original reserve-then-push workload gets.
func runSlice(n int) {
	v := make([]int, 0, n)
	for k := 0; k < n; k++ {
		v = append(v, k)
	}
	var sum int64
	for _, x := range v {
		sum += int64(x)
	}
	sink = sum
}

func runChunked(n int, config memlab.Config) {
	s, err := memlab.NewChunked[int](config)
	if err != nil {
		panic(err) // Config was validated up front.
	}
	defer s.Release()
	appendScan(s, n)
}

func runPooled(n int, config memlab.Config) {
	s, err := memlab.NewPooledChunked[int](config)
	if err != nil {
		panic(err)
	}
	defer s.Release()
	appendScan(s, n)
}

func appendScan[A memlab.ChunkAllocator[int]](s *memlab.Chunked[int, A], n int) {
	for k := 0; k < n; k++ {
		s.Append(k)
	}
	var sum int64
	s.Scan(func(v int) bool {
		sum += int64(v)
		return true
	})
	sink = sum
}

// bestOf runs fn repeats times and returns the smallest elapsed wall time.
func bestOf(repeats int, fn func()) time.Duration {
	best := time.Duration(math.MaxInt64)
	for i := 0; i < repeats; i++ {
		start := time.Now()
		fn()
		if d := time.Since(start); d < best {
			best = d
		}
	}
	return best
}

// ParticleResult holds the layout-comparison measurements.
type ParticleResult struct {
	N           int
	AoS         time.Duration // Best-of-repeats interleaved scan time.
	SoA         time.Duration // Best-of-repeats separated scan time.
	Fingerprint uint64        // Shared digest of the generated collection.
}

var particleSink float64

// RunParticles initializes both layouts from the same seed, verifies they
// hold field-for-field identical data, and times the conditional mass
// accumulation over each. Only the scan is timed; initialization happens
// once up front.
func RunParticles(n, repeats int) (ParticleResult, error) {
	if n <= 0 {
		return ParticleResult{}, fmt.Errorf("invalid particle count %d: must be positive", n)
	}
	if repeats <= 0 {
		return ParticleResult{}, errors.New("invalid options: Repeats must be positive")
	}

	aos := particles.NewAoS(n)
	soa := particles.NewSoA(n)
	aos.Init(particles.DefaultSeed)
	soa.Init(particles.DefaultSeed)

	fp := aos.Fingerprint()
	if sfp := soa.Fingerprint(); sfp != fp {
		return ParticleResult{}, fmt.Errorf("layout fingerprints diverged: aos=%x soa=%x", fp, sfp)
	}

	return ParticleResult{
		N:           n,
		AoS:         bestOf(repeats, func() { particleSink = aos.AccumulateMass() }),
		SoA:         bestOf(repeats, func() { particleSink = soa.AccumulateMass() }),
		Fingerprint: fp,
	}, nil
}
