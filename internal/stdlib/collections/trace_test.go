package collections

import (
	"testing"

	gc "github.com/tersgc/gogc"
)

// Each test here stores a managed handle and a container holding that
// same handle through a shared Collector, drops the direct handle, and
// checks the contained one only survives a collection for as long as
// the container's Trace method is actually wired to reach it — one
// test per stdlib container that SPEC_FULL.md §C.5 gives a Trace
// method. RunWithGC is used (rather than poking at gc's
// unexported Collector fields) since this package sits outside it.

func TestVectorTracesContainedHandles(t *testing.T) {
	survived, reclaimed := runContainerTraceCheck(t, func(c *gc.Collector, inner gc.Strong[int]) any {
		v := NewVector[gc.Strong[int]](1)
		v.Append(inner)
		return v
	})
	if !survived {
		t.Fatalf("handle appended to a Vector must survive a collection while the Vector is reachable")
	}
	if !reclaimed {
		t.Fatalf("handle must be reclaimed once the Vector holding it is no longer reachable")
	}
}

func TestSetTracesContainedHandles(t *testing.T) {
	survived, reclaimed := runContainerTraceCheck(t, func(c *gc.Collector, inner gc.Strong[int]) any {
		s := NewSet[gc.Strong[int]](1)
		s.Add(inner)
		return s
	})
	if !survived {
		t.Fatalf("handle added to a Set must survive a collection while the Set is reachable")
	}
	if !reclaimed {
		t.Fatalf("handle must be reclaimed once the Set holding it is no longer reachable")
	}
}

func TestDequeTracesContainedHandles(t *testing.T) {
	survived, reclaimed := runContainerTraceCheck(t, func(c *gc.Collector, inner gc.Strong[int]) any {
		d := &Deque[gc.Strong[int]]{}
		d.PushBack(inner)
		return d
	})
	if !survived {
		t.Fatalf("handle pushed to a Deque must survive a collection while the Deque is reachable")
	}
	if !reclaimed {
		t.Fatalf("handle must be reclaimed once the Deque holding it is no longer reachable")
	}
}

func TestPriorityQueueTracesContainedHandles(t *testing.T) {
	survived, reclaimed := runContainerTraceCheck(t, func(c *gc.Collector, inner gc.Strong[int]) any {
		pq := NewPriorityQueue(func(a, b gc.Strong[int]) bool { return a.RefCount() < b.RefCount() })
		pq.Push(inner)
		return pq
	})
	if !survived {
		t.Fatalf("handle pushed to a PriorityQueue must survive a collection while the queue is reachable")
	}
	if !reclaimed {
		t.Fatalf("handle must be reclaimed once the PriorityQueue holding it is no longer reachable")
	}
}

func TestMapTracesContainedHandles(t *testing.T) {
	survived, reclaimed := runContainerTraceCheck(t, func(c *gc.Collector, inner gc.Strong[int]) any {
		m := NewMap[string, gc.Strong[int]](1)
		m.Put("k", inner)
		return m
	})
	if !survived {
		t.Fatalf("handle put in a Map must survive a collection while the Map is reachable")
	}
	if !reclaimed {
		t.Fatalf("handle must be reclaimed once the Map holding it is no longer reachable")
	}
}

func TestRingBufferTracesContainedHandles(t *testing.T) {
	survived, reclaimed := runContainerTraceCheck(t, func(c *gc.Collector, inner gc.Strong[int]) any {
		r := NewRingBuffer[gc.Strong[int]](4)
		r.Push(inner)
		return r
	})
	if !survived {
		t.Fatalf("handle pushed to a RingBuffer must survive a collection while the buffer is reachable")
	}
	if !reclaimed {
		t.Fatalf("handle must be reclaimed once the RingBuffer holding it is no longer reachable")
	}
}

func TestLRUTracesContainedHandles(t *testing.T) {
	survived, reclaimed := runContainerTraceCheck(t, func(c *gc.Collector, inner gc.Strong[int]) any {
		l := NewLRU[string, gc.Strong[int]](4)
		l.Put("k", inner)
		return l
	})
	if !survived {
		t.Fatalf("handle put in an LRU must survive a collection while the cache is reachable")
	}
	if !reclaimed {
		t.Fatalf("handle must be reclaimed once the LRU holding it is no longer reachable")
	}
}

// runContainerTraceCheck stores an int handle, hands it to build (which
// wraps it in a managed container), stores that container too, then
// drops the direct handle and checks: (survived) the handle is still
// alive right after a collection while only the container is reachable,
// and (reclaimed) it is gone after the container itself is also dropped
// and collected. build's returned container must itself be Traceable.
func runContainerTraceCheck(t *testing.T, build func(c *gc.Collector, inner gc.Strong[int]) any) (survived, reclaimed bool) {
	t.Helper()
	type result struct{ survived, reclaimed bool }

	out := gc.RunWithGC(func(c *gc.Collector) result {
		c.Pause()
		inner := gc.Store(c, 1)
		weak := gc.Downgrade(inner)

		container := build(c, inner)
		outer := storeTraceable(c, container)

		inner.Drop()
		inner = gc.Strong[int]{}

		c.Collect()
		_, stillAlive := weak.Get()

		outer.drop()
		c.Collect()
		_, stillAliveAfter := weak.Get()

		return result{survived: stillAlive, reclaimed: !stillAliveAfter}
	}, gc.CollectorOptions{InitialThreshold: 1000, GrowthFactor: 0.5})

	return out.survived, out.reclaimed
}

// droppable erases the concrete Strong[T] type build() produced so
// runContainerTraceCheck can drop it generically regardless of which
// container type T names.
type droppable interface {
	drop()
}

type typedHandle[T any] struct {
	h gc.Strong[T]
}

func (t typedHandle[T]) drop() { t.h.Drop() }

// storeTraceable stores container (expected to implement gc.Traceable)
// through c and returns a droppable wrapper around the resulting handle.
func storeTraceable(c *gc.Collector, container any) droppable {
	switch v := container.(type) {
	case *Vector[gc.Strong[int]]:
		return typedHandle[*Vector[gc.Strong[int]]]{h: gc.Store(c, v)}
	case *Set[gc.Strong[int]]:
		return typedHandle[*Set[gc.Strong[int]]]{h: gc.Store(c, v)}
	case *Deque[gc.Strong[int]]:
		return typedHandle[*Deque[gc.Strong[int]]]{h: gc.Store(c, v)}
	case *PriorityQueue[gc.Strong[int]]:
		return typedHandle[*PriorityQueue[gc.Strong[int]]]{h: gc.Store(c, v)}
	case *Map[string, gc.Strong[int]]:
		return typedHandle[*Map[string, gc.Strong[int]]]{h: gc.Store(c, v)}
	case *RingBuffer[gc.Strong[int]]:
		return typedHandle[*RingBuffer[gc.Strong[int]]]{h: gc.Store(c, v)}
	case *LRU[string, gc.Strong[int]]:
		return typedHandle[*LRU[string, gc.Strong[int]]]{h: gc.Store(c, v)}
	default:
		panic("storeTraceable: unhandled container type")
	}
}
