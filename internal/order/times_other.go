//go:build !linux && !darwin && !windows

package order

import (
	"os"
	"time"
)

// fileTimes falls back to the modification time where the platform offers
// no portable birth or access time.
func fileTimes(_ string, fi os.FileInfo) (created, accessed time.Time) {
	return fi.ModTime(), fi.ModTime()
}
