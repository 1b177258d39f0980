package explorer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charlievieth/fastwalk"

	"github.com/rmlane/fex/pkg/fex/types"
)

// ProgressFunc receives the running file/directory counters of a walk.
// It is invoked after every visited entry; during long walks it is the
// only feedback the user gets, so emission is mandatory rather than an
// optimization.
type ProgressFunc func(files, dirs int64)

// walkConfig returns the fastwalk configuration used by search and
// metadata walks. A single worker with lexical sorting yields a
// deterministic depth-first order, which the result snapshot exposes as
// "walk order".
func walkConfig(followSymlinks bool) *fastwalk.Config {
	return &fastwalk.Config{
		Follow:     followSymlinks,
		NumWorkers: 1,
		Sort:       fastwalk.SortLexical,
	}
}

// depthOf returns the depth of path below root; direct children are at
// depth 1.
func depthOf(root, path string) int {
	rel := strings.TrimPrefix(path, root+types.Separator)
	return strings.Count(rel, types.Separator) + 1
}

// Search walks root up to maxDepth (<= 0 means unbounded) and collects
// entries whose base name contains query, case-insensitively. The root
// itself is excluded. Unreadable entries are skipped and the walk
// continues. The context is checked on every visited entry; a
// cancelled walk returns the context error and no result. A completed
// walk with zero matches returns (nil, nil).
func Search(ctx context.Context, root, query string, maxDepth int, followSymlinks bool, progress ProgressFunc) (*SearchResult, error) {
	lowerQuery := strings.ToLower(query)

	var matches []types.Entry
	var files, dirs int64

	err := fastwalk.Walk(walkConfig(followSymlinks), root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}

		isDir := d.IsDir()
		if isDir {
			dirs++
		} else {
			files++
		}

		name := d.Name()
		if matchesQuery(name, lowerQuery) {
			if isDir {
				matches = append(matches, types.NewDirEntry(name, path))
			} else if info, infoErr := d.Info(); infoErr == nil {
				matches = append(matches, types.NewFileEntry(name, path, types.NewFileMetadata(info)))
			}
		}

		if progress != nil {
			progress(files, dirs)
		}

		if isDir && maxDepth > 0 && depthOf(root, path) >= maxDepth {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, nil
	}
	return &SearchResult{
		rootDisplayName: types.DisplayPath(root),
		query:           query,
		entries:         matches,
	}, nil
}

// RecursiveMetadata walks path without a depth bound and accumulates
// file count, directory count, and total size, reporting progress after
// every visited entry exactly like Search. It returns (nil, nil) when
// the directory itself cannot be statted.
func RecursiveMetadata(ctx context.Context, name, path string, followSymlinks bool, progress ProgressFunc) (*types.DirMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil
	}
	meta := types.NewDirMetadata(name, info)

	err = fastwalk.Walk(walkConfig(followSymlinks), path, func(entryPath string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return nil
		}
		if entryPath == path {
			return nil
		}

		if d.IsDir() {
			meta.DirCount++
		} else {
			meta.FileCount++
			if entryInfo, infoErr := d.Info(); infoErr == nil {
				meta.TotalSize += entryInfo.Size()
			}
		}

		if progress != nil {
			progress(meta.FileCount, meta.DirCount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}
