// Package gcdebug is the introspection surface from SPEC_FULL.md §C.3: a
// JSON snapshot of collector state, servable over plain HTTP or,
// opt-in, over HTTP/3 the way the teacher repo's own
// internal/runtime/netstack exposes DebugSystemSnapshot for its actor
// runtime. original_source has no equivalent at all — a Rust crate with
// no service boundary has nothing to introspect remotely — but an
// embeddable collector meant to run inside a long-lived host benefits
// from the same always-on diagnostic surface the teacher ships for every
// other stateful subsystem.
package gcdebug

import (
	"encoding/json"
	"net/http"
)

// Snapshot mirrors the fields a host would want to poll: registry size,
// the collector's growth policy, pause state and a running tally of how
// many collections have run and how the last one split between root and
// branch marks.
type Snapshot struct {
	Tracked       int     `json:"tracked"`
	Threshold     int     `json:"threshold"`
	GrowthFactor  float64 `json:"growth_factor"`
	Paused        bool    `json:"paused"`
	Collections   int     `json:"collections"`
	// LastRootMarked and LastBranchMarked are the per-entry mark tally
	// from the most recent collection: how many stack slots matched a
	// tracked address (root marks) versus how many further entries were
	// reached by tracing from those roots (branch marks). Both are zero
	// until the first collection runs.
	LastRootMarked   int    `json:"last_root_marked"`
	LastBranchMarked int    `json:"last_branch_marked"`
	EngineVersion    string `json:"engine_version"`
}

// Snapshotter is implemented by *gc.Collector; kept as an interface here
// so this package never imports the root module (it is consumed by it
// instead, through cmd/gc-debug-server), avoiding an import cycle.
type Snapshotter interface {
	DebugSnapshot() Snapshot
}

// Handler serves a single collector's Snapshot as JSON.
func Handler(s Snapshotter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.DebugSnapshot()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
