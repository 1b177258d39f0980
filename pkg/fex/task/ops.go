package task

import (
	"context"
	"fmt"

	"github.com/rmlane/fex/pkg/fex/action"
	"github.com/rmlane/fex/pkg/fex/explorer"
	"github.com/rmlane/fex/pkg/fex/logging"
)

// LoadDirOp lists one directory and delivers the snapshot.
type LoadDirOp struct {
	Path           string
	FollowSymlinks bool
}

// Name implements Op.
func (LoadDirOp) Name() string { return "load-dir" }

// Run implements Op.
func (op LoadDirOp) Run(_ context.Context, emit func(action.Action)) {
	emit(action.UpdateStatus{Status: action.Working("Loading directory...")})
	snapshot := explorer.LoadDirectory(op.Path, op.FollowSymlinks)
	emit(action.LoadDirDone{Snapshot: snapshot})
}

// SearchOp runs a search walk and delivers the result snapshot.
type SearchOp struct {
	Root           string
	Query          string
	MaxDepth       int
	FollowSymlinks bool
}

// Name implements Op.
func (SearchOp) Name() string { return "search" }

// Run implements Op.
func (op SearchOp) Run(ctx context.Context, emit func(action.Action)) {
	progress := func(files, dirs int64) {
		emit(action.UpdateStatus{Status: action.Working(
			fmt.Sprintf("Search in progress... %d files, %d dirs", files, dirs))})
	}

	result, err := explorer.Search(ctx, op.Root, op.Query, op.MaxDepth, op.FollowSymlinks, progress)
	if err != nil {
		// Cancelled by a superseding submission or shutdown; the
		// superseding run owns the status line now.
		logging.Get("task").Debug("search walk aborted", "root", op.Root, "err", err)
		return
	}
	emit(action.SearchDone{Result: result})
}

// DirMetadataOp runs an unbounded metadata walk over one directory.
type DirMetadataOp struct {
	DirName        string
	Path           string
	FollowSymlinks bool
}

// Name implements Op.
func (DirMetadataOp) Name() string { return "dir-metadata" }

// Run implements Op.
func (op DirMetadataOp) Run(ctx context.Context, emit func(action.Action)) {
	progress := func(files, dirs int64) {
		emit(action.UpdateStatus{Status: action.Working(
			fmt.Sprintf("Calculating metadata... %d files, %d dirs", files, dirs))})
	}

	meta, err := explorer.RecursiveMetadata(ctx, op.DirName, op.Path, op.FollowSymlinks, progress)
	if err != nil {
		logging.Get("task").Debug("metadata walk aborted", "path", op.Path, "err", err)
		return
	}
	emit(action.LoadDirMetadataDone{Meta: meta})
}
