package task

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmlane/fex/pkg/fex/action"
)

func collectEmissions(op Op, ctx context.Context) []action.Action {
	var out []action.Action
	op.Run(ctx, func(a action.Action) { out = append(out, a) })
	return out
}

func TestLoadDirOp(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	out := collectEmissions(LoadDirOp{Path: dir}, context.Background())
	if len(out) != 2 {
		t.Fatalf("expected status + terminal, got %d actions", len(out))
	}
	if _, ok := out[0].(action.UpdateStatus); !ok {
		t.Errorf("expected a working status first, got %T", out[0])
	}
	done, ok := out[1].(action.LoadDirDone)
	if !ok {
		t.Fatalf("expected LoadDirDone, got %T", out[1])
	}
	if done.Snapshot.FileCount() != 1 {
		t.Errorf("expected 1 file in snapshot, got %d", done.Snapshot.FileCount())
	}
}

func TestSearchOpEmitsProgressAndTerminal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "match.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	out := collectEmissions(SearchOp{Root: dir, Query: "match", MaxDepth: 0}, context.Background())
	if len(out) < 2 {
		t.Fatalf("expected progress and terminal actions, got %d", len(out))
	}

	last, ok := out[len(out)-1].(action.SearchDone)
	if !ok {
		t.Fatalf("expected terminal SearchDone, got %T", out[len(out)-1])
	}
	if last.Result == nil || last.Result.Len() != 1 {
		t.Errorf("expected one match, got %v", last.Result)
	}
	for _, a := range out[:len(out)-1] {
		if _, ok := a.(action.UpdateStatus); !ok {
			t.Errorf("expected only status updates before the terminal, got %T", a)
		}
	}
}

// TestSearchOpCancelledEmitsNoTerminal verifies an aborted walk stays
// silent so a superseding run owns the status line.
func TestSearchOpCancelledEmitsNoTerminal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := collectEmissions(SearchOp{Root: t.TempDir(), Query: "x"}, ctx)
	for _, a := range out {
		if _, ok := a.(action.SearchDone); ok {
			t.Fatal("cancelled search must not emit a terminal action")
		}
	}
}

func TestDirMetadataOp(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a"), []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := collectEmissions(DirMetadataOp{DirName: "root", Path: dir}, context.Background())
	if len(out) == 0 {
		t.Fatal("expected emissions")
	}
	done, ok := out[len(out)-1].(action.LoadDirMetadataDone)
	if !ok {
		t.Fatalf("expected LoadDirMetadataDone, got %T", out[len(out)-1])
	}
	if done.Meta == nil || done.Meta.TotalSize != 3 {
		t.Errorf("expected total size 3, got %+v", done.Meta)
	}
}
