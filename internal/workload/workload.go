// Package workload is the live-reloading harness from SPEC_FULL.md §B:
// it watches a directory of workload scripts and re-runs the matching
// one through a fresh gc.Collector every time a file changes, so a
// developer exercising a cyclic-graph workload (see cmd/gc-dijkstra) can
// iterate on it without restarting a process by hand. Grounded on
// internal/runtime/vfs/watch_fsnotify.go.
package workload

import (
	"fmt"
	"path/filepath"

	"github.com/tersgc/gogc/internal/runtime/vfs"
)

// Runner executes one workload file's contents against a fresh
// collector. cmd/gc-watch provides the concrete implementation; this package only knows how to re-invoke it on change.
type Runner func(path string) (liveCount int, err error)

// Watch blocks, invoking run each time fsnotify reports a write to or
// creation of a *.go file in dir, until stop is closed. Files already in
// dir are not run until they change.
func Watch(dir string, run Runner, stop <-chan struct{}) error {
	w, err := vfs.NewFSWatcher()
	if err != nil {
		return fmt.Errorf("workload: starting watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("workload: watching %s: %w", dir, err)
	}

	for {
		select {
		case <-stop:
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Op&(vfs.OpWrite|vfs.OpCreate) == 0 {
				continue
			}
			if filepath.Ext(ev.Path) != ".go" {
				continue
			}
			live, err := run(ev.Path)
			if err != nil {
				fmt.Printf("workload: %s: %v\n", ev.Path, err)
				continue
			}
			fmt.Printf("workload: %s reran, live_count=%d\n", ev.Path, live)
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			fmt.Printf("workload: watch error: %v\n", err)
		}
	}
}
