// Package particles is the layout half of the benchmark suite: the same
// collection of particle records stored interleaved (array of structures)
// and separated (structure of arrays), with an identical field-conditional
// scan over both. The two layouts are pure contiguous storage; the
// allocator core is not involved.
package particles

import (
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

// DefaultSeed is the seed used by the benchmark drivers. Generation is
// deterministic per seed within this package; no bit-for-bit equality with
// any other generator is implied.
const DefaultSeed int64 = 123

// Field values are drawn uniformly from [fieldMin, fieldMax).
const (
	fieldMin = -1000.0
	fieldMax = 1000.0
)

// Particle is the interleaved record: three float32 position fields followed
// by a float64 mass. The float64 forces 4 bytes of padding after Z, so each
// record carries dead space through the cache on a mass-only scan.
type Particle struct {
	X, Y, Z float32
	Mass    float64
}

// AoS stores one contiguous Particle record per entity.
type AoS struct {
	particles []Particle
}

// NewAoS creates an interleaved collection of n particles with zeroed fields.
func NewAoS(n int) *AoS {
	return &AoS{particles: make([]Particle, n)}
}

// Init fills every record with reproducible pseudo-random values drawn from
// the given seed, in field order x, y, z, mass per record.
func (p *AoS) Init(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range p.particles {
		p.particles[i] = Particle{
			X:    uniform(rng),
			Y:    uniform(rng),
			Z:    uniform(rng),
			Mass: float64(uniform(rng)),
		}
	}
}

// Len returns the number of particles.
func (p *AoS) Len() int {
	return len(p.particles)
}

// At returns a pointer to record i.
func (p *AoS) At(i int) *Particle {
	return &p.particles[i]
}

// AccumulateMass sums the mass of every particle with a positive X. The
// predicate field and the accumulated field sit in the same record, so every
// record is pulled through the cache whole.
func (p *AoS) AccumulateMass() float64 {
	sum := 0.0
	for i := range p.particles {
		if p.particles[i].X > 0 {
			sum += p.particles[i].Mass
		}
	}
	return sum
}

// Fingerprint returns an xxhash digest over the little-endian encoding of
// all fields in generation order. Two collections initialized from the same
// seed hash identically regardless of layout.
func (p *AoS) Fingerprint() uint64 {
	d := xxhash.New()
	for i := range p.particles {
		writeFields(d, p.particles[i].X, p.particles[i].Y, p.particles[i].Z, p.particles[i].Mass)
	}
	return d.Sum64()
}

// SoA stores each field in its own contiguous array; index i across the
// arrays forms one logical particle.
type SoA struct {
	X, Y, Z []float32
	Mass    []float64
}

// NewSoA creates a separated collection of n particles with zeroed fields.
func NewSoA(n int) *SoA {
	return &SoA{
		X:    make([]float32, n),
		Y:    make([]float32, n),
		Z:    make([]float32, n),
		Mass: make([]float64, n),
	}
}

// Init fills every logical record with reproducible pseudo-random values
// from the given seed. The draw order matches AoS.Init (x, y, z, mass per
// record), so equal seeds yield field-for-field identical collections.
func (p *SoA) Init(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range p.X {
		p.X[i] = uniform(rng)
		p.Y[i] = uniform(rng)
		p.Z[i] = uniform(rng)
		p.Mass[i] = float64(uniform(rng))
	}
}

// Len returns the number of particles.
func (p *SoA) Len() int {
	return len(p.X)
}

// AccumulateMass sums the mass of every particle with a positive X. Only the
// X and Mass arrays are touched; Y and Z never enter the cache.
func (p *SoA) AccumulateMass() float64 {
	sum := 0.0
	for i := range p.X {
		if p.X[i] > 0 {
			sum += p.Mass[i]
		}
	}
	return sum
}

// Fingerprint returns the same digest AoS.Fingerprint computes for an
// identical collection.
func (p *SoA) Fingerprint() uint64 {
	d := xxhash.New()
	for i := range p.X {
		writeFields(d, p.X[i], p.Y[i], p.Z[i], p.Mass[i])
	}
	return d.Sum64()
}

func uniform(rng *rand.Rand) float32 {
	return fieldMin + (fieldMax-fieldMin)*rng.Float32()
}

func writeFields(d *xxhash.Digest, x, y, z float32, mass float64) {
	var buf [20]byte
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(z))
	binary.LittleEndian.PutUint64(buf[12:20], math.Float64bits(mass))
	d.Write(buf[:])
}
