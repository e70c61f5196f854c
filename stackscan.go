package gc

import (
	"bytes"
	"runtime"
	"strconv"
	"unsafe"
)

// currentGoroutineID parses the "goroutine N [running]:" header off a
// captured stack trace. The runtime doesn't export goroutine IDs on
// purpose, but every conventional Go single-threaded-affinity guard
// (and a few tracing GCs for Go, per other_examples' weakref pool) reads
// it this way; it's only ever used here for the cross-thread misuse
// check, never for anything correctness-critical to collection itself.
func currentGoroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	field := bytes.Fields(buf[:n])
	if len(field) < 2 {
		return -1
	}
	id, err := strconv.ParseInt(string(field[1]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}

// checkOwnerThread panics with errCrossThreadHandle if called from a
// goroutine other than the one that entered c's scope. c may be nil for
// handles built outside a collector's scope (tests constructing a bare
// Strong for a unit test of tracing logic, say); that's permitted since
// there's no owner to violate.
func (c *Collector) checkOwnerThread(addr uintptr) {
	if c == nil {
		return
	}
	if got := currentGoroutineID(); got != -1 && got != c.ownerGoroutine {
		panic(errCrossThreadHandle(addr))
	}
}

// scanWordSize is the host pointer width, taken from unsafe.Sizeof rather
// than hardcoded, so the scan steps one machine word at a time on any
// architecture instead of assuming amd64.
var scanWordSize = uintptr(unsafe.Sizeof(uintptr(0)))

// maxPlausibleStackPages bounds how many host pages a single goroutine's
// stack is allowed to span before scanStack refuses to trust its own
// [low, high) range. Sized generously above Go's own default per-goroutine
// maximum (1GB on 64-bit, runtime/debug.SetMaxStack's default) divided by
// a typical 4KiB page, rounded up, so an ordinary deep-but-real call
// stack never trips it.
const maxPlausibleStackPages = 1 << 20

// maxPlausibleStackRange is scanStack's sanity ceiling, computed from the
// host's actual page size (golang.org/x/sys/unix.Getpagesize on unix,
// pageSizeHint's stdlib fallback elsewhere) rather than a raw byte
// constant that would silently assume amd64's 4KiB pages everywhere.
func maxPlausibleStackRange() uintptr {
	return pageSizeHint() * maxPlausibleStackPages
}

// captureStackBottom is called once, non-inlined, at collector.RunWithGC
// entry. Spec.md §4.1/§8.5: "the call captures stack_bottom at a
// non-inlined callee's prologue so it precisely bounds the mutator's own
// frames." go:noinline keeps the compiler from folding this frame into
// its caller, which would move stack_bottom past frames we need to scan.
//
// Known limitation, not fully closed by this rendition: Go's runtime
// relocates a goroutine's entire stack to a new, larger backing array
// whenever a call needs more room than is currently allocated, and
// rewrites every pointer-typed value it finds along the way — but
// stack_bottom is stored as a plain uintptr specifically so a handle
// address doesn't pin its referent alive through Go's own collector
// (see handle.go), which means the runtime has no way to know this
// integer needs adjusting if a stack move happens between
// captureStackBottom and a later Collect call. growStackGuard (below)
// mitigates the common case by pre-growing the stack before
// stack_bottom is captured, and scanStack's maxPlausibleStackRange check
// catches the most dangerous failure mode (a wildly implausible range
// left by an invalidated bound) as a fatal, detected condition rather
// than a silent scan of stale or reused memory. Neither closes the gap
// completely: a host whose workload recurses or allocates deeply enough
// to force a stack move mid-scope, after the guard's headroom is
// exhausted, can still in principle fail to find a genuinely live root
// (spec.md §8's "no reachable-from-stack object is reclaimed" property)
// without tripping the range check, rather than merely over- or
// under-approximating reachability the safe direction. A production
// rendition of this idea would need either a real stack-pinning API Go
// doesn't expose, or a move to heap-allocated, GC-visible root slots
// instead of raw stack scanning.
//
//go:noinline
func captureStackBottom() uintptr {
	var sentinel byte
	return uintptr(unsafe.Pointer(&sentinel))
}

// growStackGuard forces the current goroutine's stack to grow to a
// generous size before a scope's stack_bottom is captured, by recursing
// past Go's small initial stack allocation. This does not prevent a
// stack move — Go can still grow (or, during its own GC, shrink) the
// stack later — but it makes one far less likely during an ordinary
// workload that stays within the reserved headroom, reducing how often
// the gap documented on captureStackBottom is actually hit in practice.
//
//go:noinline
func growStackGuard(remaining int) {
	if remaining <= 0 {
		return
	}
	var pad [256]byte
	pad[0] = byte(remaining)
	growStackGuard(remaining - len(pad))
	runtime.KeepAlive(pad)
}

// guardStackBytes is how much headroom growStackGuard reserves: a
// generous multiple of Go's default initial goroutine stack (8KiB), well
// past what a single RunWithGC scope's own frames need, leaving room for
// a typical mutator workload's call depth on top.
const guardStackBytes = 512 * 1024

// captureStackTop is the mark landing pad's equivalent capture. Between
// captureStackBottom and the actual scan, Go may have spilled live
// pointer-shaped handle addresses into any of the current goroutine's
// stack slots or into callee-saved registers; runtime.Gosched is not
// sufficient to force a register flush the way the original's inline asm
// is, so this rendition instead forces every live local that might hold
// a handle address through a noinline call boundary (scanStack's own
// argument-passing) before reading any stack memory, which is the
// portable approximation available without per-arch assembly.
//
//go:noinline
func captureStackTop() uintptr {
	var sentinel byte
	return uintptr(unsafe.Pointer(&sentinel))
}

// scanStack walks every word-aligned slot between low and high looking
// for values that match a live registry address, and marks each match as
// a root. Matches roots() are found and marked, callers than must
// descend from each root through its Trace method same as any other
// box's trace. Returns how many word-slots matched a tracked address,
// the root half of the per-collection mark tally internal/gcdebug's
// Snapshot reports.
func (c *Collector) scanStack(low, high uintptr) int {
	if low > high {
		low, high = high, low
	}
	if high-low > maxPlausibleStackRange() {
		panic(errStackRangeImplausible(low, high))
	}
	reg := c.reg
	roots := 0
	for addr := low; addr+scanWordSize <= high; addr += scanWordSize {
		word := *(*uintptr)(unsafe.Pointer(addr))
		if info, ok := reg.infoFor(word); ok {
			info.markRoot()
			roots++
		}
	}
	runtime.KeepAlive(low)
	runtime.KeepAlive(high)
	return roots
}
