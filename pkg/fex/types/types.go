// Package types provides the core data types for the fex file browser:
// disk entries, file and directory metadata, and formatting helpers
// shared by the explorer model, the TUI, and the export writer.
package types

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Separator is the OS path separator as a string. Directory entry names
// carry it as a suffix so directories are visually distinct in lists.
const Separator = string(os.PathSeparator)

// ParentEntryName returns the display name of the synthetic parent
// directory entry ("../" on Unix).
func ParentEntryName() string {
	return ".." + Separator
}

// Entry is one filesystem object as seen by the explorer. It is created
// when a directory is listed or matched during a search and never
// mutated afterwards; a changed filesystem produces a new snapshot.
type Entry struct {
	// Name is the display name. Directories include a trailing separator.
	Name string `json:"name"`

	// Path is the full path to the entry.
	Path string `json:"path"`

	// IsDir reports whether the entry is a directory.
	IsDir bool `json:"is_dir"`

	// Metadata holds eagerly captured file metadata. It is nil for
	// directories; their metadata is computed on demand by a recursive
	// walk.
	Metadata *FileMetadata `json:"metadata,omitempty"`
}

// NewDirEntry builds an entry for a directory, appending the separator
// to the display name.
func NewDirEntry(name, path string) Entry {
	return Entry{Name: name + Separator, Path: path, IsDir: true}
}

// NewFileEntry builds an entry for a regular file.
func NewFileEntry(name, path string, meta *FileMetadata) Entry {
	return Entry{Name: name, Path: path, Metadata: meta}
}

// Base returns the entry name without the trailing separator.
func (e Entry) Base() string {
	return strings.TrimSuffix(e.Name, Separator)
}

// FileMetadata captures the per-file attributes shown on the metadata
// page. Timestamps the platform cannot provide are left at the zero
// value.
type FileMetadata struct {
	Created  time.Time `json:"created,omitzero"`
	Accessed time.Time `json:"accessed,omitzero"`
	Modified time.Time `json:"modified,omitzero"`
	Size     int64     `json:"size"`
	ReadOnly bool      `json:"read_only"`
}

// NewFileMetadata extracts metadata from a stat result.
func NewFileMetadata(info os.FileInfo) *FileMetadata {
	return &FileMetadata{
		Created:  createTime(info),
		Accessed: accessTime(info),
		Modified: info.ModTime(),
		Size:     info.Size(),
		ReadOnly: info.Mode().Perm()&0o200 == 0,
	}
}

// DirMetadata aggregates the results of a recursive metadata walk over
// one directory.
type DirMetadata struct {
	// Name is the display name of the directory the walk started at.
	Name string `json:"name"`

	Created  time.Time `json:"created,omitzero"`
	Modified time.Time `json:"modified,omitzero"`

	// FileCount and DirCount are the number of files and directories
	// found below the root, excluding the root itself.
	FileCount int64 `json:"file_count"`
	DirCount  int64 `json:"dir_count"`

	// TotalSize is the accumulated size of all files in bytes.
	TotalSize int64 `json:"total_size"`
}

// NewDirMetadata seeds directory metadata from a stat result; the walk
// counters start at zero and are filled in by the recursive walk.
func NewDirMetadata(name string, info os.FileInfo) *DirMetadata {
	return &DirMetadata{
		Name:     name,
		Created:  createTime(info),
		Modified: info.ModTime(),
	}
}

// FormatSize converts a size in bytes to a human-readable string using
// binary (IEC) units, matching common filesystem tools.
func FormatSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}

// FormatTime renders a timestamp for display. The zero value renders as
// "Unknown" because not every platform exposes every timestamp.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("2006-01-02 15:04:05")
}

// DisplayPath shortens a path for use as a pane title: the user's home
// directory collapses to "~".
func DisplayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if rel, err := filepath.Rel(home, path); err == nil && !strings.HasPrefix(rel, "..") {
		return "~" + Separator + rel
	}
	return path
}
