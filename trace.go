package gc

import "unsafe"

// Traceable is implemented by any value that may itself hold managed
// handles. A Trace method must call sink.AddTarget (directly or via one
// of the Trace* helpers below) for every field that can reach a Strong
// or Safe handle. Fields of types that cannot reach a handle — scalars,
// strings, plain structs with no managed fields — are simply not passed
// to the sink; spec.md §4.5 treats "not traceable" as the default rather
// than requiring a no-op implementation for every primitive, which is
// the one place this rendition diverges from the original's blanket
// trait impls: Go has no impl-for-all-T, so hand-written Trace methods
// only need to mention fields that are actually Traceable, while the
// derive tool (cmd/gc-derive) passes every field not tagged gc:"-" to
// TraceValue, which does nothing for a value that is not Traceable.
type Traceable interface {
	Trace(sink *Tracer)
}

// Destroyable is implemented by a managed value that needs to run cleanup
// when its box is reclaimed, beyond simply letting its own fields drop.
type Destroyable interface {
	Destroy()
}

// Tracer is the sink a Trace method deposits its outgoing managed
// references into. The collector hands the mark phase's descent one of
// these per visited box; AddTarget appends the address the target
// handle was pointing at.
type Tracer struct {
	targets []uintptr
	scratch unsafe.Pointer // non-nil when targets' backing array came from a Collector's scratch allocator
}

// AddTarget records v as reachable from whatever box is currently being
// traced, if v is itself Traceable. nil interfaces are ignored so that
// fields holding a nil Option-like wrapper don't have to special-case
// tracing.
func (t *Tracer) AddTarget(v Traceable) {
	if v == nil {
		return
	}
	v.Trace(t)
}

func (t *Tracer) addAddr(addr uintptr) {
	if addr != 0 {
		t.targets = append(t.targets, addr)
	}
}

// TraceSlice traces every element of a slice whose element type is
// Traceable. Mirrors the original's blanket impl for `[T]`.
func TraceSlice[T Traceable](sink *Tracer, s []T) {
	for _, v := range s {
		v.Trace(sink)
	}
}

// TraceMapValues traces every value of a map whose value type is
// Traceable, matching the original's HashMap/BTreeMap impls (keys are
// never traced there either).
func TraceMapValues[K comparable, V Traceable](sink *Tracer, m map[K]V) {
	for _, v := range m {
		v.Trace(sink)
	}
}

func runDestroy[T any](v *T) {
	if d, ok := any(v).(Destroyable); ok {
		d.Destroy()
		return
	}
	if d, ok := any(*v).(Destroyable); ok {
		d.Destroy()
	}
}

func traceValue[T any](sink *Tracer, v *T) {
	if tr, ok := any(v).(Traceable); ok {
		tr.Trace(sink)
		return
	}
	if tr, ok := any(*v).(Traceable); ok {
		tr.Trace(sink)
	}
}

// TraceValue traces v if its type is Traceable and does nothing
// otherwise. Exported for container types outside this package (e.g.
// internal/stdlib/core's Option/Result, internal/stdlib/collections'
// Vector/Set/Deque/PriorityQueue) that hold a type parameter with no
// Traceable constraint of their own and need to trace through it exactly
// the way original_source/src/trace.rs's Option/Result/Vec/HashMap impls
// trace through their own type parameters.
func TraceValue[T any](sink *Tracer, v T) {
	traceValue(sink, &v)
}

func addrOf[T any](p *T) uintptr {
	return uintptr(unsafe.Pointer(p))
}
