//go:build linux

// Package unix provides platform-specific Unix file metadata helpers.
package unix

import (
	"os"
	"syscall"
)

// FileUID returns the owning uid recorded in fi, or false if the
// underlying stat data is not available.
func FileUID(fi os.FileInfo) (uint32, bool) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return st.Uid, true
}
