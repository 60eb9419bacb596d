//go:build linux

package order

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes returns the birth and access times of path. Filesystems that do
// not record a birth time report the modification time instead.
func fileTimes(path string, fi os.FileInfo) (created, accessed time.Time) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME|unix.STATX_ATIME, &stx)
	if err != nil {
		return fi.ModTime(), fi.ModTime()
	}

	accessed = time.Unix(stx.Atime.Sec, int64(stx.Atime.Nsec))
	if stx.Mask&unix.STATX_BTIME != 0 {
		created = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	} else {
		created = fi.ModTime()
	}
	return created, accessed
}
