// Command memlab runs the memory-layout benchmark suites and prints their
// results as plain-text tables.
//
// Usage:
//
//	memlab [-n sizes] [-r repeats] [-p particles] [-t suites] [-chunk n] [-poolcap n] [-offheap]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	memlab "github.com/memlab/go-memlab"
	"github.com/memlab/go-memlab/internal/bench"
)

func main() {
	ca := newCmdArgs(os.Stderr)
	if err := ca.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	for _, test := range ca.TestList() {
		switch test {
		case "vector":
			if err := runVectorSuite(ca); err != nil {
				slog.Error("sequence suite failed", "error", err)
				os.Exit(2)
			}
		case "particles":
			if err := runParticleSuite(ca); err != nil {
				slog.Error("particle suite failed", "error", err)
				os.Exit(2)
			}
		default:
			slog.Error("unknown suite", "name", test)
			os.Exit(2)
		}
	}
}

func runVectorSuite(ca *cmdArgs) error {
	sizes, err := ca.SizeList()
	if err != nil {
		return err
	}

	strategies := []bench.Strategy{bench.StrategySlice, bench.StrategyChunked, bench.StrategyPooled}
	if ca.OffHeap {
		strategies = append(strategies, bench.StrategyPooledOffHeap)
	}

	results, err := bench.Run(bench.Options{
		Sizes:   sizes,
		Repeats: int(ca.Repeats),
		Config: memlab.Config{
			ChunkSize:    int(ca.ChunkSize),
			PoolCapacity: int(ca.PoolCap),
		},
		Strategies: strategies,
	})
	if err != nil {
		return err
	}

	fmt.Println("Sequence growth strategies (times in seconds, best of", ca.Repeats, "runs)")
	fmt.Println()
	if err := bench.WriteResults(os.Stdout, results); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func runParticleSuite(ca *cmdArgs) error {
	result, err := bench.RunParticles(int(ca.Particles), int(ca.Repeats))
	if err != nil {
		return err
	}

	fmt.Println("AoS vs SoA field scan (times in seconds, best of", ca.Repeats, "runs)")
	fmt.Println()
	if err := bench.WriteParticleResult(os.Stdout, result); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
