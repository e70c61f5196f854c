// Command gc-debug-server runs a Collector and serves its debug
// snapshot over HTTP, demonstrating internal/gcdebug (SPEC_FULL.md §C.3).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	gc "github.com/tersgc/gogc"
	"github.com/tersgc/gogc/internal/gcdebug"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8077", "address to serve the debug snapshot on")
	flag.Parse()

	collector := gc.NewCollector()
	for i := 0; i < 10; i++ {
		gc.Store(collector, i)
	}

	srv := gcdebug.NewServer(*addr, collector, nil)
	if err := srv.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "gc-debug-server:", err)
		os.Exit(1)
	}
	log.Printf("gc-debug-server: serving snapshot at http://%s/debug/gc/snapshot", *addr)
	select {}
}
