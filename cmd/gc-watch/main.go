// Command gc-watch is the live-reload front end for internal/workload: it
// watches a directory of workload programs and re-runs the matching demo
// graph through a fresh collector every time a file under it changes,
// printing the resulting live_count so a developer iterating on a
// workload shape doesn't need to restart a process by hand.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	gc "github.com/tersgc/gogc"
	"github.com/tersgc/gogc/internal/workload"
)

// runDijkstraLikeWorkload stores two nodes in a collector scoped to this
// one run, collects while both handles are still held, and reports how
// many objects the registry still tracks. The nodes are not linked to
// each other and path is not read; it does not rebuild the
// cmd/gc-dijkstra graph.
func runDijkstraLikeWorkload(path string) (int, error) {
	live := 0
	gc.RunWithGC(func(c *gc.Collector) any {
		type node struct {
			edges []gc.Strong[node]
		}
		a := gc.Store(c, node{})
		b := gc.Store(c, node{})
		_ = a
		_ = b
		c.Collect()
		live = c.NumTracked()
		return nil
	})
	return live, nil
}

func main() {
	dir := flag.String("dir", ".", "directory of workload files to watch")
	flag.Parse()

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
	}()

	fmt.Printf("gc-watch: watching %s\n", *dir)
	if err := workload.Watch(*dir, runDijkstraLikeWorkload, stop); err != nil {
		fmt.Fprintf(os.Stderr, "gc-watch: %v\n", err)
		os.Exit(1)
	}
}
