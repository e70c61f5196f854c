package gc

import (
	"sync/atomic"
	"unsafe"
)

// deathRecord is the lazily-allocated, shared cell a weak or safe handle
// polls to find out whether its referent has been reclaimed. Spec.md
// §4.1: "allocated lazily the first time a handle is downgraded... the
// box keeps a single record and hands out the same pointer to every
// weak/safe handle derived from it."
type deathRecord struct {
	addr  uintptr
	alive int32
}

func newDeathRecord(addr uintptr) *deathRecord {
	return &deathRecord{addr: addr, alive: 1}
}

func (d *deathRecord) isAlive() bool {
	return atomic.LoadInt32(&d.alive) != 0
}

func (d *deathRecord) markDead() {
	atomic.StoreInt32(&d.alive, 0)
}

// managedBox is the generic container the registry allocates one of per
// Store call. It is a perfectly ordinary Go heap value — the unsafe part
// of this system is not the box itself, it is that Strong/Weak/Safe
// handles remember its address as a plain uintptr rather than a typed
// *managedBox[T], so that Go's own collector does not treat a handle as
// a reference keeping the value alive. Only the registry's AllocInfo,
// which closes over the box directly, does that.
type managedBox[T any] struct {
	value  T
	strong int32
	death  *deathRecord
}

func newManagedBox[T any](v T) *managedBox[T] {
	return &managedBox[T]{value: v, strong: 1}
}

func (b *managedBox[T]) borrow() *T {
	return &b.value
}

func (b *managedBox[T]) incrStrong() int32 {
	return atomic.AddInt32(&b.strong, 1)
}

func (b *managedBox[T]) decrStrong() int32 {
	n := atomic.AddInt32(&b.strong, -1)
	if n < 0 {
		panic(errRefcountUnderflow(b))
	}
	return n
}

func (b *managedBox[T]) strongCount() int32 {
	return atomic.LoadInt32(&b.strong)
}

// trackingRef lazily creates and returns the box's single death record,
// sharing it across every weak or safe handle downgraded from the same
// strong handle.
func (b *managedBox[T]) trackingRef() *deathRecord {
	if b.death == nil {
		b.death = newDeathRecord(addrOf(b))
	}
	return b.death
}

// reclaim is the registry's destroy thunk for this box: it marks the
// death record dead before running the payload's Destroy hook (if any),
// matching spec.md §4.1's ordering requirement, then drops the value so
// nothing it held keeps referring to other managed objects.
func (b *managedBox[T]) reclaim() {
	if b.death != nil {
		b.death.markDead()
	}
	runDestroy(&b.value)
	var zero T
	b.value = zero
}

func sizeOfBox[T any](b *managedBox[T]) uintptr {
	return unsafe.Sizeof(*b)
}

// boxFromAddr reconstructs a typed box pointer from the raw address a
// Strong or Weak handle carries. Valid only while the registry still
// holds the corresponding AllocInfo. This function does not check that;
// see Strong.Borrow in handle.go for what happens when a handle outlives
// its object.
func boxFromAddr[T any](addr uintptr) *managedBox[T] {
	return (*managedBox[T])(unsafe.Pointer(addr))
}
