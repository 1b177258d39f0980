package types

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEntryNames(t *testing.T) {
	dir := NewDirEntry("Sub", "/tmp/Sub")
	if !strings.HasSuffix(dir.Name, Separator) {
		t.Errorf("directory name %q missing trailing separator", dir.Name)
	}
	if dir.Base() != "Sub" {
		t.Errorf("expected base Sub, got %q", dir.Base())
	}

	file := NewFileEntry("a.txt", "/tmp/a.txt", nil)
	if file.Name != "a.txt" {
		t.Errorf("file name %q should carry no separator", file.Name)
	}
	if file.IsDir {
		t.Error("file entry marked as directory")
	}
}

func TestParentEntryName(t *testing.T) {
	if ParentEntryName() != ".."+Separator {
		t.Errorf("unexpected parent entry name %q", ParentEntryName())
	}
}

func TestNewFileMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	if err := os.WriteFile(path, []byte("data"), 0o444); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	meta := NewFileMetadata(info)
	if meta.Size != 4 {
		t.Errorf("expected size 4, got %d", meta.Size)
	}
	if !meta.ReadOnly {
		t.Error("expected a 0444 file to be read-only")
	}
	if meta.Modified.IsZero() {
		t.Error("expected a modification time")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatTimeZero(t *testing.T) {
	if got := FormatTime(time.Time{}); got != "Unknown" {
		t.Errorf("expected Unknown for the zero time, got %q", got)
	}
	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	if got := FormatTime(ts); got == "Unknown" || got == "" {
		t.Errorf("expected a formatted time, got %q", got)
	}
}

func TestDisplayPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got := DisplayPath(filepath.Join(home, "docs"))
	if !strings.HasPrefix(got, "~") {
		t.Errorf("expected home-relative display path, got %q", got)
	}
	if DisplayPath("/etc") != "/etc" {
		t.Errorf("paths outside home must be unchanged, got %q", DisplayPath("/etc"))
	}
}
