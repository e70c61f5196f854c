package gc

// Strong is a refcounted handle to a managed object, grounded on
// original_source/src/ptr.rs's Gc<'arena, T>. Cloning a Strong bumps the
// box's strong count; Drop decrements it. The count is exposed through
// RefCount; the conservative scan does not consult it, and it is never
// what keeps an object alive on its own; only reachability discovered
// during mark does that.
//
// owner is the Collector the handle was produced by. The original binds
// a handle to its arena's lifetime so the Rust type system rejects it
// escaping to another thread at compile time; Go has no lifetimes, so
// this rendition checks the same invariant at the only point it can:
// every operation that touches the box confirms it's running on the
// goroutine that owns owner.
type Strong[T any] struct {
	addr  uintptr
	owner *Collector
}

func (s Strong[T]) box() *managedBox[T] {
	return boxFromAddr[T](s.addr)
}

// Borrow returns a pointer to the referent. Valid only for as long as
// the handle itself would be found reachable by the collector — calling
// this on a handle whose object has already been reclaimed by a bug
// elsewhere (a mis-traced type, see spec.md §7) is undefined behaviour
// this library does not detect.
func (s Strong[T]) Borrow() *T {
	s.owner.checkOwnerThread(s.addr)
	return s.box().borrow()
}

func (s Strong[T]) Clone() Strong[T] {
	s.owner.checkOwnerThread(s.addr)
	s.box().incrStrong()
	return Strong[T]{addr: s.addr, owner: s.owner}
}

// Drop releases this handle's contribution to the strong count. It does
// not free anything by itself; reclamation only happens when the
// collector sweeps an unreachable address out of the registry.
func (s Strong[T]) Drop() {
	s.owner.checkOwnerThread(s.addr)
	s.box().decrStrong()
}

func (s Strong[T]) RefCount() int32 {
	return s.box().strongCount()
}

func (s Strong[T]) addrValue() uintptr { return s.addr }

// Trace adds this handle's referent as a mark target. Built-in
// traceable type per spec.md §4.5.
func (s Strong[T]) Trace(sink *Tracer) {
	sink.addAddr(s.addr)
}

// Downgrade produces a Weak observer of s's referent, sharing the box's
// single lazily-created death record.
func Downgrade[T any](s Strong[T]) Weak[T] {
	return Weak[T]{death: s.box().trackingRef(), owner: s.owner}
}

// Weak observes a managed object without keeping it reachable. Get
// returns ok=false once the object has been swept, matching
// original_source/src/ptr.rs's Weak::get.
type Weak[T any] struct {
	death *deathRecord
	owner *Collector
}

func (w Weak[T]) Get() (*T, bool) {
	if w.death == nil {
		return nil, false
	}
	w.owner.checkOwnerThread(w.death.addr)
	if !w.death.isAlive() {
		return nil, false
	}
	return boxFromAddr[T](w.death.addr).borrow(), true
}

// Trace is a no-op: a Weak reference never keeps its target reachable,
// built-in traceable type per spec.md §4.5.
func (w Weak[T]) Trace(sink *Tracer) {}

// Safe pairs a Strong with a Weak observing the same object: it keeps
// the referent alive for as long as the Safe handle itself exists
// (spec.md §4.4), while also exposing the same "has this been severed?"
// query a bare Weak gives. original_source/src/ptr.rs never finishes
// this type (Gc::safe is unimplemented!() in the Rust source); its
// liveness guarantee is resolved here by having Safe.Trace propagate
// through its embedded Strong, since a handle that traced as a no-op
// could not truthfully be documented as keeping anything alive.
type Safe[T any] struct {
	strong Strong[T]
	weak   Weak[T]
}

func MakeSafe[T any](s Strong[T]) Safe[T] {
	return Safe[T]{strong: s.Clone(), weak: Downgrade(s)}
}

func (s Safe[T]) Get() (*T, bool) {
	return s.weak.Get()
}

func (s Safe[T]) Clone() Safe[T] {
	return Safe[T]{strong: s.strong.Clone(), weak: s.weak}
}

func (s Safe[T]) Drop() {
	s.strong.Drop()
}

func (s Safe[T]) Trace(sink *Tracer) {
	s.strong.Trace(sink)
}
