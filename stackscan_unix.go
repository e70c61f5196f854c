//go:build unix

package gc

import "golang.org/x/sys/unix"

// pageSizeHint reports the host's page size, used only to sanity-check
// that a captured stack_bottom/stack_top pair falls within one
// contiguous goroutine stack segment before a scan begins.
func pageSizeHint() uintptr {
	if sz := unix.Getpagesize(); sz > 0 {
		return uintptr(sz)
	}
	return 4096
}
