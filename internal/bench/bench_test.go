package bench

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memlab "github.com/memlab/go-memlab"
)

func testOptions(sizes ...int) Options {
	return Options{
		Sizes:   sizes,
		Repeats: 2,
		Config:  memlab.DefaultConfig(),
	}
}

func TestRun(t *testing.T) {
	results, err := Run(testOptions(1_000, 10_000))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 1_000, results[0].N)
	assert.Equal(t, 10_000, results[1].N)

	for _, r := range results {
		for _, s := range Strategies {
			d, ok := r.Times[s]
			require.True(t, ok, "missing measurement for strategy %q", s)
			assert.Greater(t, d, time.Duration(0), "strategy %q reported a zero time", s)
		}
		assert.Greater(t, r.Speedup, 0.0)
	}
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no sizes", testOptions()},
		{"non-positive size", testOptions(0)},
		{"negative size", testOptions(-5)},
		{"zero repeats", Options{Sizes: []int{100}, Repeats: 0, Config: memlab.DefaultConfig()}},
		{"invalid config", Options{Sizes: []int{100}, Repeats: 1, Config: memlab.Config{ChunkSize: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestRunParticles(t *testing.T) {
	r, err := RunParticles(10_000, 2)
	require.NoError(t, err)

	assert.Equal(t, 10_000, r.N)
	assert.GreaterOrEqual(t, r.AoS, time.Duration(0))
	assert.GreaterOrEqual(t, r.SoA, time.Duration(0))
	assert.NotZero(t, r.Fingerprint)
}

func TestRunParticlesRejectsInvalidArguments(t *testing.T) {
	_, err := RunParticles(0, 2)
	assert.Error(t, err)

	_, err = RunParticles(100, 0)
	assert.Error(t, err)
}

func TestWriteResults(t *testing.T) {
	results, err := Run(testOptions(1_000))
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, WriteResults(&sb, results))
	out := sb.String()

	assert.Contains(t, out, "1000")
	for _, s := range Strategies {
		assert.Contains(t, out, string(s))
	}
	assert.Contains(t, out, "speedup")
}

func TestWriteParticleResult(t *testing.T) {
	r, err := RunParticles(1_000, 2)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, WriteParticleResult(&sb, r))
	out := sb.String()

	assert.Contains(t, out, "aos")
	assert.Contains(t, out, "soa")
	assert.Contains(t, out, "fingerprint")
}
