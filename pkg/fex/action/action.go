// Package action defines the message type every part of the application
// communicates with: an Action either describes an intent ("load this
// directory") or a fact ("this directory finished loading"). The
// dispatch loop and the background task supervisor exchange Actions
// exclusively; no component reaches into another component's state.
package action

import (
	"github.com/rmlane/fex/pkg/fex/explorer"
	"github.com/rmlane/fex/pkg/fex/types"
)

// Context identifies which page owns the keyboard.
type Context int

const (
	ContextExplorer Context = iota
	ContextSearch
	ContextResults
	ContextHelp
)

func (c Context) String() string {
	switch c {
	case ContextExplorer:
		return "Explorer"
	case ContextSearch:
		return "Search"
	case ContextResults:
		return "Results"
	case ContextHelp:
		return "Help"
	default:
		return ""
	}
}

// SearchMode selects between a flat (depth 1) and a deep (unbounded)
// search walk.
type SearchMode int

const (
	SearchFlat SearchMode = iota
	SearchDeep
)

// MaxDepth returns the walk depth bound for the mode; 0 means
// unbounded.
func (m SearchMode) MaxDepth() int {
	if m == SearchFlat {
		return 1
	}
	return 0
}

func (m SearchMode) String() string {
	if m == SearchFlat {
		return "flat"
	}
	return "deep"
}

// StatusKind classifies a status line update.
type StatusKind int

const (
	// StatusWorking indicates an operation in progress.
	StatusWorking StatusKind = iota
	// StatusDone indicates the last operation completed.
	StatusDone
	// StatusFailure indicates a recoverable, user-visible failure.
	StatusFailure
)

// Status is the user-visible state shown in the footer.
type Status struct {
	Kind    StatusKind
	Message string
}

// Working builds an in-progress status.
func Working(msg string) Status { return Status{Kind: StatusWorking, Message: msg} }

// Done builds a completed status.
func Done(msg string) Status { return Status{Kind: StatusDone, Message: msg} }

// Failure builds a recoverable-failure status.
func Failure(msg string) Status { return Status{Kind: StatusFailure, Message: msg} }

// Action is the closed set of messages flowing through the dispatch
// loop. Every consumer type-switches over the variants; adding a
// variant means revisiting every consumer.
type Action interface {
	isAction()
}

// Error is the one fatal variant: it aborts the dispatch loop and
// surfaces at the process boundary.
type Error struct{ Err error }

// Quit requests an orderly shutdown of the dispatch loop.
type Quit struct{}

// Render requests a redraw.
type Render struct{}

// Tick is the low-frequency application tick.
type Tick struct{}

// Resize reports new terminal dimensions.
type Resize struct{ Width, Height int }

// Suspend reports terminal focus loss.
type Suspend struct{}

// Resume reports terminal focus gain.
type Resume struct{}

// UpdateStatus replaces the footer status line.
type UpdateStatus struct{ Status Status }

// ForcedShutdown records that a background operation could not be
// cancelled within the bounded wait.
type ForcedShutdown struct{}

// LoadDir asks the supervisor to list a directory.
type LoadDir struct {
	Path           string
	FollowSymlinks bool
}

// LoadDirDone delivers a freshly loaded directory snapshot.
type LoadDirDone struct{ Snapshot *explorer.Explorer }

// LoadDirMetadata asks the supervisor for a recursive metadata walk.
type LoadDirMetadata struct {
	Name           string
	Path           string
	FollowSymlinks bool
}

// LoadDirMetadataDone delivers directory metadata; Meta is nil when the
// directory could not be statted.
type LoadDirMetadataDone struct{ Meta *types.DirMetadata }

// StartSearch asks the supervisor to run a search walk.
type StartSearch struct {
	Root           string
	Query          string
	MaxDepth       int
	FollowSymlinks bool
}

// SearchDone delivers a search snapshot; Result is nil when nothing
// matched.
type SearchDone struct{ Result *explorer.SearchResult }

// ShowSearchPage switches to the search page rooted at the given
// directory.
type ShowSearchPage struct{ Root string }

// ShowResultsPage switches to the results page for a completed search.
type ShowResultsPage struct {
	Result *explorer.SearchResult
	Mode   SearchMode
}

// ShowFileMetadata opens the metadata overlay for a file.
type ShowFileMetadata struct {
	Path string
	Meta *types.FileMetadata
}

// ShowDirMetadata opens the metadata overlay for a directory.
type ShowDirMetadata struct{ Meta *types.DirMetadata }

// CloseMetadata dismisses the metadata overlay.
type CloseMetadata struct{}

// SwitchContext hands the keyboard to another page.
type SwitchContext struct{ Context Context }

// Export asks the loop to write a search result to the export
// directory.
type Export struct{ Result *explorer.SearchResult }

// ExportDone reports a successful search-result export.
type ExportDone struct{ Path string }

// ExportFailure reports a failed search-result export.
type ExportFailure struct{ Err error }

func (Error) isAction()               {}
func (Quit) isAction()                {}
func (Render) isAction()              {}
func (Tick) isAction()                {}
func (Resize) isAction()              {}
func (Suspend) isAction()             {}
func (Resume) isAction()              {}
func (UpdateStatus) isAction()        {}
func (ForcedShutdown) isAction()      {}
func (LoadDir) isAction()             {}
func (LoadDirDone) isAction()         {}
func (LoadDirMetadata) isAction()     {}
func (LoadDirMetadataDone) isAction() {}
func (StartSearch) isAction()         {}
func (SearchDone) isAction()          {}
func (ShowSearchPage) isAction()      {}
func (ShowResultsPage) isAction()     {}
func (ShowFileMetadata) isAction()    {}
func (ShowDirMetadata) isAction()     {}
func (CloseMetadata) isAction()       {}
func (SwitchContext) isAction()       {}
func (Export) isAction()              {}
func (ExportDone) isAction()          {}
func (ExportFailure) isAction()       {}
