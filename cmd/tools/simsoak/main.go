package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/bytebitgo/rackview/internal/logging"
	"github.com/bytebitgo/rackview/internal/telemetry"
	"github.com/bytebitgo/rackview/internal/topology"
)

// simsoak runs the telemetry simulation headless for a number of ticks and
// verifies every metric stays inside its bounds, printing the resulting
// status distribution. Useful for eyeballing threshold tuning.
func main() {
	ticks := flag.Int("ticks", 10000, "Number of simulation ticks to run")
	seed := flag.Int64("seed", 0, "PRNG seed (0 = time-based)")
	every := flag.Int("report-every", 1000, "Print a distribution line every N ticks")
	flag.Parse()

	logger := logging.NewDevelopment()
	topo := topology.Default()
	store := telemetry.NewStore(topo, *seed, logger)
	store.Initialize()

	violations := 0
	for i := 1; i <= *ticks; i++ {
		store.Tick()

		for _, rec := range store.Records() {
			if rec.Temperature < telemetry.TemperatureMin || rec.Temperature > telemetry.TemperatureMax ||
				rec.CPUUsage < telemetry.CPUUsageMin || rec.CPUUsage > telemetry.CPUUsageMax ||
				rec.MemoryUsage < telemetry.MemoryUsageMin || rec.MemoryUsage > telemetry.MemoryUsageMax {
				violations++
				fmt.Fprintf(os.Stderr, "tick %d: %s out of bounds: temp=%.2f cpu=%.2f mem=%.2f\n",
					i, rec.ID, rec.Temperature, rec.CPUUsage, rec.MemoryUsage)
			}
		}

		if *every > 0 && i%*every == 0 {
			fmt.Printf("tick %6d  %s\n", i, formatCounts(store.StatusCounts()))
		}
	}

	fmt.Printf("\nfinal   %s\n", formatCounts(store.StatusCounts()))
	if violations > 0 {
		fmt.Fprintf(os.Stderr, "%d bound violations in %d ticks\n", violations, *ticks)
		os.Exit(1)
	}
	fmt.Printf("%d ticks, all %d servers stayed in bounds\n", *ticks, store.Count())
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for _, k := range keys {
		out += fmt.Sprintf("%s=%-3d ", k, counts[k])
	}
	return out
}
