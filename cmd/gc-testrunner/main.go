// Command gc-testrunner wraps internal/testrunner's `go test -json`
// harness for this module: concurrent per-package execution, a colored
// human-readable summary, and optional JSON/JUnit output, the same
// tooling the teacher repo ships for its own much larger test suite.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tersgc/gogc/internal/testrunner"
)

func main() {
	var (
		pattern     = flag.String("run", "", "test name regex forwarded to go test -run")
		parallel    = flag.Int("parallel", 0, "number of packages to test concurrently (default: NumCPU)")
		jsonOut     = flag.Bool("json", false, "stream raw go test -json events instead of a human summary")
		short       = flag.Bool("short", false, "pass -short to go test")
		race        = flag.Bool("race", false, "pass -race to go test")
		timeout     = flag.Duration("timeout", 10*time.Minute, "per-package go test -timeout")
		color       = flag.Bool("color", true, "colorize the human-readable summary")
		retries     = flag.Int("retries", 0, "re-run failing tests up to N times before reporting them failed")
		failFast    = flag.Bool("fail-fast", false, "stop at the first failing package")
		junitPath   = flag.String("junit", "", "optional path to write a JUnit XML report")
		summaryPath = flag.String("summary-json", "", "optional path to write a JSON summary report")
		pkgsFlag    = flag.String("pkgs", "./...", "comma-separated package patterns to test")
	)
	flag.Parse()

	opts := testrunner.Options{
		Packages:    strings.Split(*pkgsFlag, ","),
		RunPattern:  *pattern,
		Parallel:    *parallel,
		JSON:        *jsonOut,
		Short:       *short,
		Race:        *race,
		Timeout:     *timeout,
		Color:       *color,
		Retries:     *retries,
		FailFast:    *failFast,
		JUnitPath:   *junitPath,
		SummaryJSON: *summaryPath,
	}

	runner := testrunner.New(opts)
	res, err := runner.Run(context.Background(), os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gc-testrunner:", err)
		os.Exit(1)
	}
	if res.Failed > 0 {
		os.Exit(1)
	}
}
