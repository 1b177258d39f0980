//go:build linux

package types

import (
	"os"
	"syscall"
	"time"
)

// createTime returns the creation time of a file.
// Linux doesn't reliably expose birth time through syscall.Stat_t, so
// the zero value is returned and rendered as "Unknown".
func createTime(_ os.FileInfo) time.Time {
	return time.Time{}
}

// accessTime returns the last access time from the stat structure.
func accessTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(stat.Atim.Sec, stat.Atim.Nsec)
}
