package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmlane/fex/pkg/fex/action"
	"github.com/rmlane/fex/pkg/fex/explorer"
)

func loadedExplorerView(t *testing.T, names []string) *explorerView {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	v := newExplorerView(false)
	v.Update(action.LoadDir{Path: dir})
	v.Update(action.LoadDirDone{Snapshot: explorer.LoadDirectory(dir, false)})
	return v
}

func manyNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = string(rune('a'+i%26)) + "-file"
	}
	return names
}

// TestExplorerResizeResetsViewport verifies shrinking the window below
// the current cursor position snaps the viewport back to the top.
func TestExplorerResizeResetsViewport(t *testing.T) {
	v := loadedExplorerView(t, manyNames(20))

	for range 15 {
		v.HandleKey(action.ContextExplorer, keyMsg("j"))
	}
	if v.snapshot.Selected() != 15 {
		t.Fatalf("expected selection at 15, got %d", v.snapshot.Selected())
	}

	v.Update(action.Resize{Width: 80, Height: 10})

	if v.snapshot.Selected() != 0 || v.snapshot.Viewport().Start() != 0 {
		t.Errorf("expected reset to (0,0) after resize, got (%d,%d)",
			v.snapshot.Selected(), v.snapshot.Viewport().Start())
	}
}

// TestExplorerResizeSameHeightKeepsCursor verifies a resize that does
// not change the list height leaves the selection alone.
func TestExplorerResizeSameHeightKeepsCursor(t *testing.T) {
	v := loadedExplorerView(t, manyNames(20))

	for range 5 {
		v.HandleKey(action.ContextExplorer, keyMsg("j"))
	}
	v.Update(action.Resize{Width: 120, Height: v.height})

	if v.snapshot.Selected() != 5 {
		t.Errorf("expected selection to stay at 5, got %d", v.snapshot.Selected())
	}
}

// TestExplorerLetterJumpCycles verifies pressing a letter repeatedly
// cycles the selection through entries starting with it.
func TestExplorerLetterJumpCycles(t *testing.T) {
	v := loadedExplorerView(t, []string{"alpha", "beta", "bravo", "delta"})

	var visited []string
	for range 3 {
		if a := v.HandleKey(action.ContextExplorer, keyMsg("b")); a == nil {
			t.Fatal("expected the letter key to be consumed")
		}
		entry, ok := v.snapshot.SelectedEntry()
		if !ok {
			t.Fatal("expected a selected entry")
		}
		visited = append(visited, entry.Name)
	}

	want := []string{"beta", "bravo", "beta"}
	for i, name := range want {
		if visited[i] != name {
			t.Errorf("jump %d: expected %q, got %q", i, name, visited[i])
		}
	}
}

// TestExplorerLetterJumpNoMatch verifies an unmatched letter reports a
// failure status instead of moving the cursor.
func TestExplorerLetterJumpNoMatch(t *testing.T) {
	v := loadedExplorerView(t, []string{"alpha"})

	a := v.HandleKey(action.ContextExplorer, keyMsg("z"))
	s, ok := a.(action.UpdateStatus)
	if !ok {
		t.Fatalf("expected a status action, got %T", a)
	}
	if s.Status.Kind != action.StatusFailure {
		t.Errorf("expected a failure status, got %v", s.Status.Kind)
	}
}

// TestExplorerSnapshotReplacementClearsLetterIndex verifies a reload
// drops the ephemeral letter-jump index.
func TestExplorerSnapshotReplacementClearsLetterIndex(t *testing.T) {
	v := loadedExplorerView(t, []string{"alpha", "apex"})

	v.HandleKey(action.ContextExplorer, keyMsg("a"))
	if v.filtered == nil {
		t.Fatal("expected a letter index after a jump")
	}

	next := t.TempDir()
	v.Update(action.LoadDir{Path: next})
	v.Update(action.LoadDirDone{Snapshot: explorer.LoadDirectory(next, false)})
	if v.filtered != nil {
		t.Error("expected the letter index to be cleared on reload")
	}
}

// TestExplorerIgnoresUnrequestedSnapshot verifies a terminal action with
// no load outstanding does not replace the page's snapshot.
func TestExplorerIgnoresUnrequestedSnapshot(t *testing.T) {
	v := newExplorerView(false)

	v.Update(action.LoadDirDone{Snapshot: explorer.LoadDirectory(t.TempDir(), false)})
	if v.snapshot != nil {
		t.Fatal("expected an unrequested snapshot to be ignored")
	}

	dir := t.TempDir()
	v.Update(action.LoadDir{Path: dir})
	v.Update(action.LoadDirDone{Snapshot: explorer.LoadDirectory(dir, false)})
	if v.snapshot == nil {
		t.Fatal("expected the requested snapshot to be installed")
	}
	if v.waiting {
		t.Error("expected the waiting flag to clear on the terminal action")
	}
}
