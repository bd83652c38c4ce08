//go:build !linux

package fsutil

import (
	"os"
	"time"
)

func accessTime(fi os.FileInfo) time.Time { return fi.ModTime() }
