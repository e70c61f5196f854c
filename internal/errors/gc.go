package errors

// The three fatal conditions spec.md §7 calls out as "undefined if
// violated, but violations the library chooses to detect anyway." They
// are raised as panics rather than returned errors — the mutator has
// already broken the handle discipline by the time one of these fires,
// so there's no well-defined value left to return.

func DoubleFree(addr uintptr) *StandardError {
	return NewStandardError(CategoryMemory, "DOUBLE_FREE",
		"address was already reclaimed by the registry",
		map[string]interface{}{"addr": addr})
}

func RefcountUnderflow(addr uintptr) *StandardError {
	return NewStandardError(CategoryMemory, "REFCOUNT_UNDERFLOW",
		"strong handle dropped more times than it was cloned",
		map[string]interface{}{"addr": addr})
}

func CrossThreadHandle(addr uintptr) *StandardError {
	return NewStandardError(CategoryMemory, "CROSS_THREAD_HANDLE",
		"handle used from a goroutine other than the one that owns its collector",
		map[string]interface{}{"addr": addr})
}

// StackRangeImplausible fires when scanStack's [low, high) span is wider
// than any real single-goroutine stack this process could plausibly
// have grown, the signature a stale stack_bottom (captured before a
// goroutine stack move invalidated it) leaves behind. Detected rather
// than scanned through, so a corrupted bound fails the collection
// instead of reading unmapped or reused memory.
func StackRangeImplausible(low, high uintptr) *StandardError {
	return NewStandardError(CategoryMemory, "STACK_RANGE_IMPLAUSIBLE",
		"conservative stack scan range exceeds the plausible maximum; stack_bottom may have been invalidated by a goroutine stack move",
		map[string]interface{}{"low": low, "high": high})
}
