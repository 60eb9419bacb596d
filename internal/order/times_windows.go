//go:build windows

package order

import (
	"os"
	"syscall"
	"time"
)

func fileTimes(_ string, fi os.FileInfo) (created, accessed time.Time) {
	d, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return fi.ModTime(), fi.ModTime()
	}
	return time.Unix(0, d.CreationTime.Nanoseconds()), time.Unix(0, d.LastAccessTime.Nanoseconds())
}
