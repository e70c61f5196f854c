//go:build !unix

package gc

// pageSizeHint reports a conservative default page size on platforms
// golang.org/x/sys/unix doesn't cover.
func pageSizeHint() uintptr {
	return 4096
}
