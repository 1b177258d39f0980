package explorer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// searchTree builds:
//
//	root/
//	  notes.txt
//	  Sub/
//	    notes.md
//	    deep/
//	      more-notes.txt
//	  other.log
func searchTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	if err := os.MkdirAll(filepath.Join(root, "Sub", "deep"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := []string{
		"notes.txt",
		filepath.Join("Sub", "notes.md"),
		filepath.Join("Sub", "deep", "more-notes.txt"),
		"other.log",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// TestSearchFlat verifies depth-1 search only sees immediate children.
func TestSearchFlat(t *testing.T) {
	root := searchTree(t)

	res, err := Search(context.Background(), root, "notes", 1, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res == nil {
		t.Fatal("expected matches")
	}
	if res.Len() != 1 {
		t.Fatalf("expected 1 flat match, got %d", res.Len())
	}
	if res.Entries()[0].Path != filepath.Join(root, "notes.txt") {
		t.Errorf("unexpected match %q", res.Entries()[0].Path)
	}
}

// TestSearchDeep verifies unbounded search finds nested matches in walk
// order.
func TestSearchDeep(t *testing.T) {
	root := searchTree(t)

	res, err := Search(context.Background(), root, "notes", 0, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || res.Len() != 3 {
		t.Fatalf("expected 3 deep matches, got %v", res)
	}

	// Lexical DFS order: Sub/deep/more-notes.txt, Sub/notes.md, notes.txt.
	want := []string{
		filepath.Join(root, "Sub", "deep", "more-notes.txt"),
		filepath.Join(root, "Sub", "notes.md"),
		filepath.Join(root, "notes.txt"),
	}
	for i, p := range want {
		if res.Entries()[i].Path != p {
			t.Errorf("match %d: expected %q, got %q", i, p, res.Entries()[i].Path)
		}
	}
}

// TestSearchCaseInsensitive verifies substring matching ignores case.
func TestSearchCaseInsensitive(t *testing.T) {
	root := searchTree(t)

	res, err := Search(context.Background(), root, "SUB", 1, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || res.Len() != 1 {
		t.Fatalf("expected the Sub directory to match, got %v", res)
	}
	if !res.Entries()[0].IsDir {
		t.Error("expected a directory entry")
	}
}

// TestSearchNoMatches verifies a nil result for zero matches.
func TestSearchNoMatches(t *testing.T) {
	root := searchTree(t)

	res, err := Search(context.Background(), root, "zzz", 0, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Fatalf("expected nil result, got %d entries", res.Len())
	}
}

// TestSearchProgress verifies the progress callback runs for every
// visited entry.
func TestSearchProgress(t *testing.T) {
	root := searchTree(t)

	var calls int
	var lastFiles, lastDirs int64
	progress := func(files, dirs int64) {
		calls++
		lastFiles, lastDirs = files, dirs
	}

	if _, err := Search(context.Background(), root, "notes", 0, false, progress); err != nil {
		t.Fatal(err)
	}
	// 4 files + 2 directories under root.
	if calls != 6 {
		t.Errorf("expected 6 progress calls, got %d", calls)
	}
	if lastFiles != 4 || lastDirs != 2 {
		t.Errorf("expected final counts (4,2), got (%d,%d)", lastFiles, lastDirs)
	}
}

// TestSearchCancelled verifies a cancelled context aborts the walk with
// an error.
func TestSearchCancelled(t *testing.T) {
	root := searchTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Search(ctx, root, "notes", 0, false, nil); err == nil {
		t.Fatal("expected an error from a cancelled walk")
	}
}

// TestRecursiveMetadata verifies counts and total size across the tree.
func TestRecursiveMetadata(t *testing.T) {
	root := searchTree(t)

	meta, err := RecursiveMetadata(context.Background(), "root", root, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if meta == nil {
		t.Fatal("expected metadata")
	}
	if meta.FileCount != 4 {
		t.Errorf("expected 4 files, got %d", meta.FileCount)
	}
	if meta.DirCount != 2 {
		t.Errorf("expected 2 dirs, got %d", meta.DirCount)
	}
	if meta.TotalSize != 4 {
		t.Errorf("expected total size 4, got %d", meta.TotalSize)
	}
	if meta.Name != "root" {
		t.Errorf("expected name root, got %q", meta.Name)
	}
}

// TestRecursiveMetadataMissing verifies a nil result when the directory
// cannot be statted.
func TestRecursiveMetadataMissing(t *testing.T) {
	meta, err := RecursiveMetadata(context.Background(), "gone",
		filepath.Join(t.TempDir(), "gone"), false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if meta != nil {
		t.Fatal("expected nil metadata for a missing directory")
	}
}
