// Benchmark report tool for FlowLand Steward.
//
// Runs the store, metering and reflexologist benchmarks, then writes a
// summary table followed by the raw output to target/reports/bench.txt.
// Exits non-zero if any benchmark fails.
//
// Usage:
//
//	go run ./scripts/bench
//	BENCH_TIME=10s go run ./scripts/bench
//	BENCH_PKG=./internal/store/ go run ./scripts/bench
package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/bongona/FlowLandSteward/scripts/internal/reportkit"
)

// reBench matches a result line such as
// "BenchmarkLogs-8   12345   95012 ns/op   4096 B/op   61 allocs/op".
var reBench = regexp.MustCompile(`^(Benchmark\S+)\s+(\d+)\s+([\d.]+) ns/op(?:\s+(\d+) B/op)?(?:\s+(\d+) allocs/op)?`)

type benchResult struct {
	Name   string
	Iters  string
	NsOp   string
	BOp    string
	Allocs string
}

func parseResults(output string) []benchResult {
	var results []benchResult
	for line := range strings.SplitSeq(output, "\n") {
		m := reBench.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		results = append(results, benchResult{Name: m[1], Iters: m[2], NsOp: m[3], BOp: m[4], Allocs: m[5]})
	}
	return results
}

func main() {
	benchTime := envOr("BENCH_TIME", "3s")
	pkg := envOr("BENCH_PKG", "./...")

	fmt.Printf("Running benchmarks in %s (benchtime=%s)...\n\n", pkg, benchTime)

	output, runErr := reportkit.GoCommand("test",
		"-bench=.",
		"-benchmem",
		"-benchtime="+benchTime,
		"-run=^$",
		pkg,
	)

	var report strings.Builder
	reportkit.Header(&report, "Benchmark Report",
		reportkit.Field{Key: "Packages", Value: pkg},
		reportkit.Field{Key: "Benchmark Time", Value: benchTime + " per benchmark"},
	)

	results := parseResults(output)
	report.WriteString("Summary\n")
	report.WriteString(reportkit.Separator("-") + "\n")
	fmt.Fprintf(&report, "  %-40s  %14s  %10s  %8s\n", "Benchmark", "ns/op", "B/op", "allocs")
	for _, r := range results {
		fmt.Fprintf(&report, "  %-40s  %14s  %10s  %8s\n", r.Name, r.NsOp, dash(r.BOp), dash(r.Allocs))
	}
	report.WriteString(reportkit.Separator("-") + "\n\n")

	report.WriteString("Raw Output\n")
	report.WriteString(reportkit.Separator("=") + "\n")
	report.WriteString(output)
	if runErr != nil {
		fmt.Fprintf(&report, "\n[ERROR] %v\n", runErr)
	}

	path := reportkit.Save("bench.txt", report.String())
	fmt.Printf("\nBenchmark report: %s\n", path)

	if runErr != nil {
		os.Exit(1)
	}
	fmt.Printf("Benchmark run complete (%d results).\n", len(results))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
