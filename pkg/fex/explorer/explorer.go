// Package explorer provides the navigable directory and search data
// model: immutable per-load snapshots of one directory's entries or one
// query's matches, each paired with a scrollable viewport, plus the
// recursive walks that produce search results and directory metadata.
package explorer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/rmlane/fex/pkg/fex/types"
	"github.com/rmlane/fex/pkg/fex/view"
)

// Explorer is an immutable-per-load snapshot of one directory. It is
// replaced wholesale on every successful reload and never partially
// updated. Only the embedded viewport carries mutable cursor state.
type Explorer struct {
	cwd         string
	displayName string
	entries     []types.Entry
	fileCount   int
	dirCount    int
	hasParent   bool

	vp view.Viewport
}

// LoadDirectory lists the immediate children of path (depth 1),
// partitions them into directories and files sorted case-sensitively by
// name, and prepends a synthetic parent entry when a parent exists.
// File metadata is captured eagerly; unreadable entries are skipped
// silently so a partially readable directory still loads.
func LoadDirectory(path string, followSymlinks bool) *Explorer {
	// A relative path would make filepath.Dir(".") == "." and lose the
	// parent entry; the snapshot always carries an absolute cwd.
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	var dirs, files []types.Entry

	listing, err := os.ReadDir(path)
	if err != nil {
		listing = nil
	}

	for _, de := range listing {
		full := filepath.Join(path, de.Name())

		isDir := de.IsDir()
		var info os.FileInfo
		if followSymlinks && de.Type()&os.ModeSymlink != 0 {
			// Classify symlinks by their target when following.
			resolved, statErr := os.Stat(full)
			if statErr != nil {
				continue
			}
			isDir = resolved.IsDir()
			info = resolved
		}

		if isDir {
			dirs = append(dirs, types.NewDirEntry(de.Name(), full))
			continue
		}

		if info == nil {
			info, err = de.Info()
			if err != nil {
				continue
			}
		}
		files = append(files, types.NewFileEntry(de.Name(), full, types.NewFileMetadata(info)))
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	parent := filepath.Dir(path)
	hasParent := parent != path

	entries := make([]types.Entry, 0, 1+len(dirs)+len(files))
	if hasParent {
		entries = append(entries, types.Entry{
			Name:  types.ParentEntryName(),
			Path:  parent,
			IsDir: true,
		})
	}
	entries = append(entries, dirs...)
	entries = append(entries, files...)

	return &Explorer{
		cwd:         path,
		displayName: types.DisplayPath(path),
		entries:     entries,
		fileCount:   len(files),
		dirCount:    len(dirs),
		hasParent:   hasParent,
	}
}

// Cwd returns the loaded directory path.
func (e *Explorer) Cwd() string { return e.cwd }

// DisplayName returns the shortened directory path used as pane title.
func (e *Explorer) DisplayName() string { return e.displayName }

// Entries returns the full ordered entry sequence, parent entry first.
func (e *Explorer) Entries() []types.Entry { return e.entries }

// FileCount returns the number of file entries.
func (e *Explorer) FileCount() int { return e.fileCount }

// DirCount returns the number of directory entries, excluding the
// synthetic parent entry.
func (e *Explorer) DirCount() int { return e.dirCount }

// HasParent reports whether the snapshot carries a synthetic parent
// entry, false only at a filesystem root.
func (e *Explorer) HasParent() bool { return e.hasParent }

// Viewport exposes the snapshot's viewport for cursor operations.
func (e *Explorer) Viewport() *view.Viewport { return &e.vp }

// Len returns the number of entries.
func (e *Explorer) Len() int { return len(e.entries) }

// ScrollDown moves the selection down one entry, with wraparound.
func (e *Explorer) ScrollDown() { e.vp.ScrollDown(len(e.entries)) }

// ScrollUp moves the selection up one entry, with wraparound.
func (e *Explorer) ScrollUp() { e.vp.ScrollUp(len(e.entries)) }

// PageDown scrolls down by the window height, clamped at the last entry.
func (e *Explorer) PageDown() { e.vp.PageDownBy(e.vp.Height(), len(e.entries)) }

// PageUp scrolls up by the window height, clamped at the first entry.
func (e *Explorer) PageUp() { e.vp.PageUpBy(e.vp.Height(), len(e.entries)) }

// GoTo moves the selection to the given entry index.
func (e *Explorer) GoTo(index int) { e.vp.GoTo(index, len(e.entries)) }

// Selected returns the index of the selected entry.
func (e *Explorer) Selected() int { return e.vp.Selected() }

// SelectedEntry returns the selected entry, or false when the snapshot
// is empty (a root directory with no children).
func (e *Explorer) SelectedEntry() (types.Entry, bool) {
	if len(e.entries) == 0 {
		return types.Entry{}, false
	}
	return e.entries[e.vp.Selected()], true
}

// Visible returns the slice of entries inside the current window.
func (e *Explorer) Visible() []types.Entry {
	start, end := e.vp.VisibleRange(len(e.entries))
	return e.entries[start:end]
}

// FindEntriesWithInitial builds the ephemeral letter-jump index: the
// positions of all entries (excluding the parent entry) whose name
// starts with the given rune, case-insensitively. Returns nil when
// nothing matches.
func (e *Explorer) FindEntriesWithInitial(initial rune) *FilteredEntries {
	want := unicode.ToLower(initial)

	var indices []int
	for i, entry := range e.entries {
		if e.hasParent && i == 0 {
			continue
		}
		first, ok := firstRune(entry.Name)
		if ok && unicode.ToLower(first) == want {
			indices = append(indices, i)
		}
	}

	if len(indices) == 0 {
		return nil
	}
	return &FilteredEntries{initial: initial, indices: indices}
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// FilteredEntries is the cyclic index behind "press a letter repeatedly
// to jump through entries starting with it". It is rebuilt whenever the
// letter changes and reset when the snapshot is reloaded or navigation
// leaves letter-jump mode.
type FilteredEntries struct {
	initial rune
	// indices into the Explorer's entry sequence, in original order.
	indices []int
	// hintPos is 1-based; it only feeds the user hint in the footer.
	hintPos int
}

// FindNext returns the next matching index strictly after selected,
// cycling to the first match when selected is at or past the last one.
func (f *FilteredEntries) FindNext(selected int) (int, bool) {
	if len(f.indices) == 0 {
		return 0, false
	}

	for pos, idx := range f.indices {
		if idx == selected {
			next := (pos + 1) % len(f.indices)
			f.hintPos = next + 1
			return f.indices[next], true
		}
	}

	for pos, idx := range f.indices {
		if idx > selected {
			f.hintPos = pos + 1
			return idx, true
		}
	}

	f.hintPos = 1
	return f.indices[0], true
}

// MatchesLetter reports whether the index was built for the given rune.
func (f *FilteredEntries) MatchesLetter(r rune) bool {
	return unicode.ToLower(f.initial) == unicode.ToLower(r)
}

// HintPos returns the 1-based position of the current match.
func (f *FilteredEntries) HintPos() int { return f.hintPos }

// Total returns the number of matching entries.
func (f *FilteredEntries) Total() int { return len(f.indices) }

// SearchResult is an immutable-per-query snapshot of matched entries in
// walk order. A nil *SearchResult denotes a completed search with zero
// matches, distinct from "search not yet run".
type SearchResult struct {
	rootDisplayName string
	query           string
	entries         []types.Entry

	vp view.Viewport
}

// RootDisplayName returns the shortened originating directory path.
func (r *SearchResult) RootDisplayName() string { return r.rootDisplayName }

// Query returns the query string the snapshot was built for.
func (r *SearchResult) Query() string { return r.query }

// Entries returns the matched entries in walk order.
func (r *SearchResult) Entries() []types.Entry { return r.entries }

// Viewport exposes the snapshot's viewport for cursor operations.
func (r *SearchResult) Viewport() *view.Viewport { return &r.vp }

// Len returns the number of matched entries.
func (r *SearchResult) Len() int { return len(r.entries) }

// ScrollDown moves the selection down one entry, with wraparound.
func (r *SearchResult) ScrollDown() { r.vp.ScrollDown(len(r.entries)) }

// ScrollUp moves the selection up one entry, with wraparound.
func (r *SearchResult) ScrollUp() { r.vp.ScrollUp(len(r.entries)) }

// PageDown scrolls down by the window height, clamped at the last entry.
func (r *SearchResult) PageDown() { r.vp.PageDownBy(r.vp.Height(), len(r.entries)) }

// PageUp scrolls up by the window height, clamped at the first entry.
func (r *SearchResult) PageUp() { r.vp.PageUpBy(r.vp.Height(), len(r.entries)) }

// GoTo moves the selection to the given entry index.
func (r *SearchResult) GoTo(index int) { r.vp.GoTo(index, len(r.entries)) }

// Selected returns the index of the selected entry.
func (r *SearchResult) Selected() int { return r.vp.Selected() }

// SelectedEntry returns the selected entry, or false when empty.
func (r *SearchResult) SelectedEntry() (types.Entry, bool) {
	if len(r.entries) == 0 {
		return types.Entry{}, false
	}
	return r.entries[r.vp.Selected()], true
}

// Visible returns the slice of entries inside the current window.
func (r *SearchResult) Visible() []types.Entry {
	start, end := r.vp.VisibleRange(len(r.entries))
	return r.entries[start:end]
}

// matchesQuery reports a case-insensitive substring match of query
// against an entry's base name.
func matchesQuery(name, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(name), lowerQuery)
}
