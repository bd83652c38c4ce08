//go:build linux

package fsutil

import (
	"os"
	"syscall"
	"time"
)

// accessTime returns the last access time recorded for fi, or its mtime if
// the platform data is unavailable.
func accessTime(fi os.FileInfo) time.Time {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fi.ModTime()
	}
	return time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
}
