//go:build !darwin && !linux

package types

import (
	"os"
	"time"
)

// createTime returns the creation time of a file.
// Unsupported platforms report the zero value, rendered as "Unknown".
func createTime(_ os.FileInfo) time.Time {
	return time.Time{}
}

// accessTime returns the last access time of a file.
// Unsupported platforms report the zero value, rendered as "Unknown".
func accessTime(_ os.FileInfo) time.Time {
	return time.Time{}
}
