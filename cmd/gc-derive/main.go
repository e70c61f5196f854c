// Command gc-derive generates Trace methods for //gc:trace-annotated
// struct types in a package, the idiomatic-Go stand-in for the original
// crate's ters_gc_derive proc macro (SPEC_FULL.md §C.1).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tersgc/gogc/internal/tracegen"
)

func main() {
	dir := flag.String("dir", ".", "package directory to scan for //gc:trace directives")
	out := flag.String("out", "", "output file path; defaults to <dir>/gctrace_generated.go")
	flag.Parse()

	destination := *out
	if destination == "" {
		destination = *dir + "/gctrace_generated.go"
	}

	code, err := tracegen.Generate(tracegen.Options{
		SourcePatterns: []string{*dir},
		Destination:    destination,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "gc-derive:", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "gc-derive: wrote %s (%d bytes)\n", destination, len(code))
}
