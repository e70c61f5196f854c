// Package gc is an embeddable, single-threaded tracing garbage collector
// for Go values that want cycle-safe shared ownership without leaning on
// Go's own collector's reachability rules. Grounded throughout on
// original_source (the ters_gc Rust crate) and on this repository's
// teacher's own runtime coordinator style
// (internal/runtime/gc_avoidance_clean.go's GCAvoidanceEngine).
package gc

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/tersgc/gogc/internal/allocator"
	"github.com/tersgc/gogc/internal/gcdebug"
)

// tracerScratchWords sizes the scratch buffer a Collector hands each
// Tracer during mark. One word per outgoing reference a box typically
// holds is a generous guess; Tracer.AddTarget falls back to ordinary
// Go-managed append once it's exceeded, the same fallback-on-exhaustion
// pattern internal/allocator's own pool allocator uses.
const tracerScratchWords = 32

var tracerScratchBytes = uintptr(tracerScratchWords) * unsafe.Sizeof(uintptr(0))

type lifecycleState int32

const (
	stateIdle lifecycleState = iota
	stateRunning
	statePaused
)

// CollectorOptions configures a Collector at construction, mirroring the
// NewXxx(config) convention internal/allocator uses throughout the
// teacher repo.
type CollectorOptions struct {
	// InitialThreshold is the tracked-object count that triggers the
	// first automatic collection. original_source/src/lib.rs: 25.
	InitialThreshold int
	// GrowthFactor controls how much headroom a collection buys before
	// the next one triggers: new_threshold = live + floor(live*GrowthFactor) + 1.
	// original_source/src/lib.rs's sweep_factor: 0.5.
	GrowthFactor float64
	// ShrinkRegistry, when true, lets the registry's backing map be
	// reallocated smaller after a collection that reclaimed most of its
	// entries, instead of retaining its largest-ever bucket count.
	ShrinkRegistry bool
}

func DefaultOptions() CollectorOptions {
	return CollectorOptions{
		InitialThreshold: 25,
		GrowthFactor:     0.5,
		ShrinkRegistry:   true,
	}
}

// Collector is the scope/proxy object from spec.md's data model: the
// single entry point a mutator allocates through, collects through, and
// pauses/resumes. Every Collector, and every handle derived from it, is
// pinned to the goroutine that created it (checkOwnerThread enforces
// this at runtime since Go's type system has no lifetime mechanism to
// reject it at compile time the way the original's PhantomData does).
type Collector struct {
	mu   sync.Mutex
	reg  *registry
	opts CollectorOptions

	threshold int
	paused    bool
	state     lifecycleState
	live      int // count observed as of the last completed collection

	ownerGoroutine int64
	stackBottom    uintptr

	scratch *allocator.SystemAllocatorImpl

	// lastRootMarked and lastBranchMarked record the previous collection's
	// split between stack-root matches and entries reached by tracing
	// from those roots; set at the end of collectLocked and surfaced via
	// DebugSnapshot.
	lastRootMarked   int
	lastBranchMarked int
	collections      int
}

// NewCollector constructs a Collector bound to the calling goroutine. It
// does not itself establish stack_bottom — call RunWithGC to do that, or,
// for a same-package test that wants to manage its own stack bounds,
// assign c.stackBottom directly (see collector_test.go).
func NewCollector(opts ...CollectorOptions) *Collector {
	o := DefaultOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	return &Collector{
		reg:            newRegistry(),
		opts:           o,
		threshold:      o.InitialThreshold,
		ownerGoroutine: currentGoroutineID(),
		scratch: allocator.NewSystemAllocator(&allocator.Config{
			EnableTracking: true,
			AlignmentSize:  8,
			MemoryLimit:    0,
		}),
	}
}

// RunWithGC is the managed scope from spec.md §4.3/§8.5
// ("with_scope(f) ... enters the scope, pinning stack_bottom, invokes
// f(scope), returns its result"), named after original_source's own
// run_with_gc. It captures stack_bottom in a non-inlined prologue before
// calling fn and tears the scope down (running one final collection)
// after fn returns, so a caller that stored nothing outside the scope
// observes live_count == 0 on the way out.
func RunWithGC[R any](fn func(c *Collector) R, opts ...CollectorOptions) R {
	c := NewCollector(opts...)
	result := c.enter(func(cc *Collector) any { return fn(cc) })
	return result.(R)
}

// enter is the non-generic trampoline RunWithGC boxes its result
// through, since Go methods cannot themselves carry type parameters.
//
//go:noinline
func (c *Collector) enter(fn func(c *Collector) any) any {
	growStackGuard(guardStackBytes)
	c.stackBottom = captureStackBottom()
	c.mu.Lock()
	c.state = stateRunning
	c.mu.Unlock()
	defer func() {
		c.Collect()
		c.mu.Lock()
		c.state = stateIdle
		c.mu.Unlock()
	}()
	return fn(c)
}

// Store allocates v in a fresh box, registers it, and returns a Strong
// handle. Spec.md §4.2's alloc contract: "monomorphise rebox/trace/refs
// per T" — registryAlloc's closures are built against the concrete T
// supplied here. Store also runs should_collect's check afterward,
// matching original_source/src/lib.rs's alloc -> should_collect -> run.
func Store[T any](c *Collector, v T) Strong[T] {
	c.mu.Lock()
	addr := registryAlloc(c.reg, v)
	c.mu.Unlock()
	h := Strong[T]{addr: addr, owner: c}
	if c.shouldCollect() {
		c.Collect()
	}
	return h
}

// Free immediately reclaims h's object without waiting for the next
// sweep, matching spec.md's "destroyed by allocator during sweep (or by
// explicit free in tests)" allowance. Freeing a handle whose address has
// already left the registry — whether via an earlier Free or a prior
// sweep — is a double free: a detected, fatal condition (spec.md §7).
func Free[T any](c *Collector, h Strong[T]) {
	h.owner.checkOwnerThread(h.addr)
	if !c.reg.free(h.addr) {
		panic(errDoubleFree(h.addr))
	}
}

// shouldCollect mirrors original_source/src/lib.rs's should_collect:
// strictly greater than, not at-or-above, the threshold. This means a
// Store call that brings the registry exactly to the threshold does not
// itself trigger a collection — the next one does.
func (c *Collector) shouldCollect() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.paused && c.reg.len() > c.threshold
}

// Pause suspends automatic collection; Store keeps allocating but will
// not trigger Collect until Resume. Matches original_source's pause/resume.
func (c *Collector) Pause() {
	c.mu.Lock()
	c.paused = true
	c.state = statePaused
	c.mu.Unlock()
}

func (c *Collector) Resume() {
	c.mu.Lock()
	c.paused = false
	if c.state == statePaused {
		c.state = stateRunning
	}
	c.mu.Unlock()
}

func (c *Collector) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// NumTracked reports the registry's current live count.
func (c *Collector) NumTracked() int {
	return c.reg.len()
}

// Collect runs one mark/sweep cycle: clear marks, scan the goroutine's
// own stack for root candidates, descend from every root through each
// object's Trace method, then sweep every address left unmarked. Mirrors
// original_source/src/lib.rs's run/mark/sweep triad.
func (c *Collector) Collect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collectLocked()
}

func (c *Collector) collectLocked() {
	c.reg.clearAllMarks()

	top := captureStackTop()
	roots := c.scanStack(c.stackBottom, top)

	branches := c.markReachable()
	freed := c.sweepUnreached()

	c.live = c.reg.len()
	c.threshold = c.live + int(float64(c.live)*c.opts.GrowthFactor) + 1
	c.collections++
	c.lastRootMarked = roots
	c.lastBranchMarked = branches
	if c.opts.ShrinkRegistry && freed > c.live {
		c.reg.mu.Lock()
		shrunk := make(map[uintptr]*AllocInfo, len(c.reg.items))
		for addr, info := range c.reg.items {
			shrunk[addr] = info
		}
		c.reg.items = shrunk
		c.reg.mu.Unlock()
	}
}

// markReachable repeatedly re-visits every currently-marked entry and
// traces it, marking anything it reaches as a branch (non-root) mark,
// until a full pass adds nothing new. This is the iterative equivalent
// of original_source's recursive mark_ptr: Go has no tail-call
// elimination guarantee, and an arbitrarily deep reference chain would
// otherwise risk a stack overflow during collection itself. Returns the
// total number of markBranch calls made across every pass, the branch
// half of the per-collection mark tally internal/gcdebug's Snapshot
// reports.
func (c *Collector) markReachable() int {
	branches := 0
	for {
		progressed := false
		for _, info := range c.reg.snapshot() {
			if !info.reachable() {
				continue
			}
			sink := c.newTracer()
			info.trace(sink)
			for _, addr := range sink.targets {
				target, ok := c.reg.infoFor(addr)
				if !ok {
					continue
				}
				if !target.reachable() {
					progressed = true
				}
				target.markBranch()
				branches++
			}
			c.releaseTracer(sink)
		}
		if !progressed {
			return branches
		}
	}
}

// sweepUnreached frees every registry entry that was never marked during
// this cycle, the same way original_source/src/lib.rs's sweep collects
// unreachable boxes into a vec and frees them after the scan completes
// (so a destructor running during sweep can't invalidate the iteration
// it's part of).
func (c *Collector) sweepUnreached() int {
	var dead []uintptr
	for _, info := range c.reg.snapshot() {
		if !info.reachable() {
			dead = append(dead, info.addr)
		}
	}
	for _, addr := range dead {
		c.reg.free(addr)
	}
	return len(dead)
}

// newTracer hands mark a Tracer whose targets slice is backed by a
// chunk pulled from the collector's scratch allocator rather than a
// fresh Go allocation, cutting per-box allocation churn during a large
// collection. The values held in that chunk are always uintptr
// addresses used only as registry lookup keys, never reinterpreted as
// pointers, so borrowing raw memory for them carries none of the risk
// it would for a slice of live object references.
func (c *Collector) newTracer() *Tracer {
	ptr := c.scratch.Alloc(tracerScratchBytes)
	if ptr == nil {
		return &Tracer{}
	}
	backing := unsafe.Slice((*uintptr)(ptr), tracerScratchWords)[:0]
	return &Tracer{targets: backing, scratch: ptr}
}

func (c *Collector) releaseTracer(t *Tracer) {
	if t.scratch != nil {
		c.scratch.Free(t.scratch)
	}
}

// DebugSnapshot implements gcdebug.Snapshotter, exposing a point-in-time
// view of collector state for internal/gcdebug's HTTP/HTTP3 handler.
func (c *Collector) DebugSnapshot() gcdebug.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gcdebug.Snapshot{
		Tracked:          c.reg.len(),
		Threshold:        c.threshold,
		GrowthFactor:     c.opts.GrowthFactor,
		Paused:           c.paused,
		Collections:      c.collections,
		LastRootMarked:   c.lastRootMarked,
		LastBranchMarked: c.lastBranchMarked,
		EngineVersion:    EngineVersion,
	}
}

func (c *Collector) String() string {
	return fmt.Sprintf("Collector(tracked=%d threshold=%d paused=%v collections=%d)",
		c.reg.len(), c.threshold, c.paused, c.collections)
}
