package core

import (
	"testing"

	gc "github.com/tersgc/gogc"
)

// These tests exercise Option/Result's Trace methods the way spec.md
// §4.5 requires any container wrapping a managed handle to: the handle
// must only be reachable through the collector's mark phase, never
// incidentally through a leftover stack root, so each test stores both
// the inner handle and its container through the collector itself and
// drops the direct inner handle before collecting. RunWithGC (rather
// than poking at unexported Collector fields the way collector_test.go
// in the root package can) is the only way an external package can pin
// stack_bottom for itself.

type traceOutcome struct {
	survivedWhileHeld  bool
	reclaimedAfterDrop bool
}

func TestOptionTracesContainedHandle(t *testing.T) {
	out := gc.RunWithGC(func(c *gc.Collector) traceOutcome {
		c.Pause()
		inner := gc.Store(c, 99)
		weak := gc.Downgrade(inner)
		outer := gc.Store(c, Some(inner))

		inner.Drop()
		inner = gc.Strong[int]{}

		c.Collect()
		_, stillAlive := weak.Get()

		outer.Drop()
		outer = gc.Strong[Option[gc.Strong[int]]]{}
		c.Collect()
		_, stillAliveAfter := weak.Get()

		return traceOutcome{survivedWhileHeld: stillAlive, reclaimedAfterDrop: !stillAliveAfter}
	}, gc.CollectorOptions{InitialThreshold: 1000, GrowthFactor: 0.5})

	if !out.survivedWhileHeld {
		t.Fatalf("handle held by a Some must survive a collection while the Option is reachable")
	}
	if !out.reclaimedAfterDrop {
		t.Fatalf("handle must be reclaimed once the Option holding it is no longer reachable")
	}
}

func TestOptionNoneDoesNotTraceStaleValue(t *testing.T) {
	reclaimed := gc.RunWithGC(func(c *gc.Collector) bool {
		c.Pause()
		inner := gc.Store(c, "x")
		weak := gc.Downgrade(inner)
		_ = gc.Store(c, None[gc.Strong[string]]())

		inner.Drop()
		inner = gc.Strong[string]{}

		c.Collect()
		_, stillAlive := weak.Get()
		return !stillAlive
	}, gc.CollectorOptions{InitialThreshold: 1000, GrowthFactor: 0.5})

	if !reclaimed {
		t.Fatalf("None must not keep a handle reachable even if one was dropped into it earlier")
	}
}

func TestResultTracesContainedHandle(t *testing.T) {
	out := gc.RunWithGC(func(c *gc.Collector) traceOutcome {
		c.Pause()
		inner := gc.Store(c, "payload")
		weak := gc.Downgrade(inner)
		outer := gc.Store(c, Ok(inner))

		inner.Drop()
		inner = gc.Strong[string]{}

		c.Collect()
		_, stillAlive := weak.Get()

		outer.Drop()
		outer = gc.Strong[Result[gc.Strong[string]]]{}
		c.Collect()
		_, stillAliveAfter := weak.Get()

		return traceOutcome{survivedWhileHeld: stillAlive, reclaimedAfterDrop: !stillAliveAfter}
	}, gc.CollectorOptions{InitialThreshold: 1000, GrowthFactor: 0.5})

	if !out.survivedWhileHeld {
		t.Fatalf("handle held by an Ok result must survive a collection while the Result is reachable")
	}
	if !out.reclaimedAfterDrop {
		t.Fatalf("handle must be reclaimed once the Result holding it is no longer reachable")
	}
}

func TestResultErrDoesNotTraceStaleValue(t *testing.T) {
	reclaimed := gc.RunWithGC(func(c *gc.Collector) bool {
		c.Pause()
		inner := gc.Store(c, 7)
		weak := gc.Downgrade(inner)
		_ = gc.Store(c, Err[gc.Strong[int]](nil))

		inner.Drop()
		inner = gc.Strong[int]{}

		c.Collect()
		_, stillAlive := weak.Get()
		return !stillAlive
	}, gc.CollectorOptions{InitialThreshold: 1000, GrowthFactor: 0.5})

	if !reclaimed {
		t.Fatalf("an Err result must never trace through to the zero value it discarded")
	}
}
