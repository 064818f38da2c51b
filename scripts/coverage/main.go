// Coverage tool for FlowLand Steward.
//
// Runs the test suite with coverage, drops generated code from the profile,
// and compares the total against coverage_required.txt. The threshold only
// ever moves up: a run that beats it rewrites the file, a run that falls
// below it fails.
//
// Usage:
//
//	go run ./scripts/coverage
package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/bongona/FlowLandSteward/scripts/internal/reportkit"
)

// generated lists path fragments whose statements are excluded from the
// total. The swagger document is emitted by swag and has nothing to test.
var generated = []string{
	"/docs/swagger/",
	"/scripts/",
}

func main() {
	requiredFile := filepath.Join(scriptDir(), "coverage_required.txt")
	reportDir := reportkit.Dir()

	required, err := readRequired(requiredFile)
	if err != nil {
		log.Fatalf("reading coverage required: %v", err)
	}
	fmt.Printf("Coverage threshold: %d%%\n\n", required)

	profile := filepath.Join(reportDir, "coverage.out")
	filtered := filepath.Join(reportDir, "coverage-filtered.out")

	if _, err := reportkit.GoCommand("test",
		"./cmd/...",
		"./internal/...",
		"./templates/...",
		"-count=1",
		"-race",
		"-coverprofile="+profile,
	); err != nil {
		log.Fatalf("tests failed: %v", err)
	}

	if err := filterProfile(profile, filtered); err != nil {
		log.Fatalf("filtering coverage profile: %v", err)
	}

	out, err := exec.Command("go", "tool", "cover", "-func="+filtered).Output()
	if err != nil {
		log.Fatalf("generating coverage report: %v", err)
	}
	funcReport := string(out)

	total, err := totalCoverage(funcReport)
	if err != nil {
		log.Fatalf("extracting total coverage: %v", err)
	}

	var report strings.Builder
	reportkit.Header(&report, "Coverage Report",
		reportkit.Field{Key: "Threshold", Value: strconv.Itoa(required) + "%"},
		reportkit.Field{Key: "Total", Value: strconv.Itoa(total) + "%"},
	)
	report.WriteString("By Package\n")
	report.WriteString(reportkit.Separator("-") + "\n")
	for _, p := range packageCoverage(funcReport) {
		fmt.Fprintf(&report, "  %-56s  %6.1f%%\n", p.Name, p.Percent)
	}
	report.WriteString(reportkit.Separator("-") + "\n\n")
	report.WriteString(funcReport)
	fmt.Printf("\nCoverage report: %s\n", reportkit.Save("coverage.txt", report.String()))

	fmt.Printf("Total coverage: %d%%\n", total)
	fmt.Printf("Required:       %d%%\n", required)

	if total > required {
		fmt.Printf("\nCoverage improved! Updating threshold from %d%% to %d%%\n", required, total)
		if err := os.WriteFile(requiredFile, []byte(strconv.Itoa(total)+"\n"), 0o644); err != nil {
			log.Fatalf("updating coverage required: %v", err)
		}
	}
	if total < required {
		fmt.Printf("\nCoverage %d%% is below threshold %d%%, failing build\n", total, required)
		os.Exit(1)
	}

	htmlReport := filepath.Join(reportDir, "coverage.html")
	if err := exec.Command("go", "tool", "cover", "-html="+filtered, "-o", htmlReport).Run(); err != nil {
		fmt.Printf("Warning: could not generate HTML report: %v\n", err)
	} else {
		fmt.Printf("HTML coverage report: %s\n", htmlReport)
	}

	fmt.Println("\nCoverage check passed!")
}

func totalCoverage(funcReport string) (int, error) {
	for line := range strings.SplitSeq(funcReport, "\n") {
		if !strings.HasPrefix(line, "total:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			return 0, fmt.Errorf("unexpected total coverage line format: %s", line)
		}
		pct, err := strconv.ParseFloat(strings.TrimSuffix(parts[len(parts)-1], "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("parsing coverage percentage in %q: %w", line, err)
		}
		return int(pct), nil
	}
	return 0, fmt.Errorf("total coverage not found in output")
}

type pkgCoverage struct {
	Name    string
	Percent float64
}

// packageCoverage averages the per-function percentages of `go tool cover
// -func` output by package. It is a rough view; the statement-weighted
// figure is the total line.
func packageCoverage(funcReport string) []pkgCoverage {
	sums := map[string]float64{}
	counts := map[string]int{}
	for line := range strings.SplitSeq(funcReport, "\n") {
		parts := strings.Fields(line)
		if len(parts) < 3 || parts[0] == "total:" {
			continue
		}
		file, _, _ := strings.Cut(parts[0], ":")
		pct, err := strconv.ParseFloat(strings.TrimSuffix(parts[len(parts)-1], "%"), 64)
		if err != nil {
			continue
		}
		pkg := filepath.Dir(file)
		sums[pkg] += pct
		counts[pkg]++
	}

	out := make([]pkgCoverage, 0, len(sums))
	for pkg, sum := range sums {
		out = append(out, pkgCoverage{Name: pkg, Percent: sum / float64(counts[pkg])})
	}
	slices.SortFunc(out, func(a, b pkgCoverage) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func readRequired(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	val, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, fmt.Errorf("parsing coverage value from %s: %w", path, err)
	}
	return val, nil
}

func filterProfile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	var kept []string
	for line := range strings.SplitSeq(string(data), "\n") {
		if strings.HasPrefix(line, "mode:") || !slices.ContainsFunc(generated, func(frag string) bool {
			return strings.Contains(line, frag)
		}) {
			kept = append(kept, line)
		}
	}
	return os.WriteFile(dst, []byte(strings.Join(kept, "\n")), 0o644)
}

func scriptDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		log.Fatal("could not determine script directory")
	}
	return filepath.Dir(filename)
}
