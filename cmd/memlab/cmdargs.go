package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type cmdArgs struct {
	fs        *flag.FlagSet
	Sizes     string
	Repeats   uint
	Particles uint
	Tests     string
	ChunkSize uint
	PoolCap   uint
	OffHeap   bool
}

func newCmdArgs(output io.Writer) (ca *cmdArgs) {
	ca = &cmdArgs{
		fs: flag.NewFlagSet("memlab", flag.ContinueOnError),
	}
	ca.fs.SetOutput(output)
	ca.fs.StringVar(&ca.Sizes, "n", "5000000,10000000,25000000", "Comma separated workload sizes for the sequence suite")
	ca.fs.UintVar(&ca.Repeats, "r", 5, "Timed repetitions per measurement (best time is reported)")
	ca.fs.UintVar(&ca.Particles, "p", 5000000, "Number of particles for the layout suite")
	ca.fs.StringVar(&ca.Tests, "t", "vector,particles", "Comma separated list of suites to run")
	ca.fs.UintVar(&ca.ChunkSize, "chunk", 64, "Elements per chunk for the chunked sequences")
	ca.fs.UintVar(&ca.PoolCap, "poolcap", 2048, "Elements per pool buffer (must be a multiple of chunk)")
	ca.fs.BoolVar(&ca.OffHeap, "offheap", true, "Include the off-heap pooled strategy")
	return
}

func (ca *cmdArgs) Parse(arguments []string) (err error) {
	err = ca.fs.Parse(arguments)
	return
}

// SizeList parses the -n flag into workload sizes.
func (ca *cmdArgs) SizeList() ([]int, error) {
	parts := strings.Split(ca.Sizes, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid workload size %q: %w", part, err)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// TestList parses the -t flag into suite names.
func (ca *cmdArgs) TestList() []string {
	parts := strings.Split(ca.Tests, ",")
	tests := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			tests = append(tests, name)
		}
	}
	return tests
}
