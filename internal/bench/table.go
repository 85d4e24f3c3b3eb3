package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteResults renders the sequence suite as a plain-text table: one row per
// workload size, one column per strategy, times in seconds.
func WriteResults(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 3, ' ', tabwriter.AlignRight)

	// Columns follow the canonical strategy order, restricted to what was
	// actually measured.
	var columns []Strategy
	if len(results) > 0 {
		for _, s := range Strategies {
			if _, ok := results[0].Times[s]; ok {
				columns = append(columns, s)
			}
		}
	}

	fmt.Fprint(tw, "N")
	for _, s := range columns {
		fmt.Fprintf(tw, "\t%s", s)
	}
	fmt.Fprint(tw, "\tspeedup (slice/pooled)\n")

	for _, r := range results {
		fmt.Fprintf(tw, "%d", r.N)
		for _, s := range columns {
			fmt.Fprintf(tw, "\t%.6f", r.Times[s].Seconds())
		}
		fmt.Fprintf(tw, "\t%.2fx\n", r.Speedup)
	}
	return tw.Flush()
}

// WriteParticleResult renders the layout comparison in the same style as the
// sequence table.
func WriteParticleResult(w io.Writer, r ParticleResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 3, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "N\taos\tsoa\tdiff (aos-soa)\n")
	fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\n", r.N, r.AoS.Seconds(), r.SoA.Seconds(), (r.AoS - r.SoA).Seconds())
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "collection fingerprint: %016x (identical across layouts)\n", r.Fingerprint)
	return err
}
