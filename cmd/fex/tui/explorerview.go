package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rmlane/fex/pkg/fex/action"
	"github.com/rmlane/fex/pkg/fex/explorer"
	"github.com/rmlane/fex/pkg/fex/types"
)

// explorerView is the main directory listing page. It owns the current
// Explorer snapshot and the ephemeral letter-jump index; both are
// replaced wholesale, never mutated in place.
type explorerView struct {
	snapshot *explorer.Explorer
	filtered *explorer.FilteredEntries
	follow   bool

	// waiting is set when this page has a directory load outstanding
	// and cleared only by that load's terminal action.
	waiting bool

	width  int
	height int
}

func newExplorerView(follow bool) *explorerView {
	return &explorerView{follow: follow, width: 80, height: 24}
}

// listHeight is the entry window height: total height minus the header,
// divider, hint line, footer, and outer border rows.
func (v *explorerView) listHeight() int {
	h := v.height - 8
	if h < 1 {
		h = 1
	}
	return h
}

// HandleKey implements Component.
func (v *explorerView) HandleKey(ctx action.Context, msg tea.KeyMsg) action.Action {
	if ctx != action.ContextExplorer {
		return nil
	}

	key := msg.String()
	switch key {
	case "q":
		return action.Quit{}
	case "?":
		return action.SwitchContext{Context: action.ContextHelp}
	case "esc":
		v.filtered = nil
		return action.Render{}
	}

	if v.snapshot == nil {
		return nil
	}

	switch key {
	case "up", "k":
		v.snapshot.ScrollUp()
		return action.Render{}
	case "down", "j":
		v.snapshot.ScrollDown()
		return action.Render{}
	case "pgup":
		v.snapshot.PageUp()
		return action.Render{}
	case "pgdown":
		v.snapshot.PageDown()
		return action.Render{}
	case "home", "g":
		v.snapshot.GoTo(0)
		return action.Render{}
	case "end", "G":
		v.snapshot.GoTo(v.snapshot.Len() - 1)
		return action.Render{}

	case "enter", "right", "l":
		entry, ok := v.snapshot.SelectedEntry()
		if !ok {
			return nil
		}
		if entry.IsDir {
			return action.LoadDir{Path: entry.Path, FollowSymlinks: v.follow}
		}
		return action.ShowFileMetadata{Path: entry.Path, Meta: entry.Metadata}

	case "backspace", "left", "h":
		if !v.snapshot.HasParent() {
			return nil
		}
		return action.LoadDir{
			Path:           filepath.Dir(v.snapshot.Cwd()),
			FollowSymlinks: v.follow,
		}

	case "s":
		return action.ShowSearchPage{Root: v.snapshot.Cwd()}

	case "r":
		return action.LoadDir{Path: v.snapshot.Cwd(), FollowSymlinks: v.follow}

	case "m":
		entry, ok := v.snapshot.SelectedEntry()
		if !ok {
			return nil
		}
		if entry.IsDir {
			return action.LoadDirMetadata{
				Name:           entry.Base(),
				Path:           entry.Path,
				FollowSymlinks: v.follow,
			}
		}
		return action.ShowFileMetadata{Path: entry.Path, Meta: entry.Metadata}
	}

	if r, ok := singleLetter(key); ok {
		return v.jumpToLetter(r)
	}
	return nil
}

// singleLetter reports whether the key press is one plain letter rune.
func singleLetter(key string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(key)
	if size != len(key) || !unicode.IsLetter(r) {
		return 0, false
	}
	return r, true
}

// jumpToLetter cycles the selection through entries starting with r,
// rebuilding the index when the letter changes.
func (v *explorerView) jumpToLetter(r rune) action.Action {
	if v.filtered == nil || !v.filtered.MatchesLetter(r) {
		v.filtered = v.snapshot.FindEntriesWithInitial(r)
	}
	if v.filtered == nil {
		return action.UpdateStatus{
			Status: action.Failure(fmt.Sprintf("No entries starting with %q", r)),
		}
	}

	if idx, ok := v.filtered.FindNext(v.snapshot.Selected()); ok {
		v.snapshot.GoTo(idx)
	}
	return action.Render{}
}

// Update implements Component.
func (v *explorerView) Update(a action.Action) []action.Action {
	switch act := a.(type) {
	case action.LoadDir:
		v.waiting = true

	case action.LoadDirDone:
		if !v.waiting {
			return nil
		}
		v.waiting = false
		v.filtered = nil
		if act.Snapshot != nil {
			v.snapshot = act.Snapshot
			v.snapshot.Viewport().SetHeight(v.listHeight())
		}

	case action.Resize:
		v.width = act.Width
		v.height = act.Height
		if v.snapshot != nil && v.snapshot.Viewport().SetHeight(v.listHeight()) {
			v.snapshot.Viewport().Reset()
		}
	}
	return nil
}

// View renders the directory listing page.
func (v *explorerView) View() string {
	contentWidth := v.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	var b strings.Builder
	b.WriteString(v.renderHeader(contentWidth))
	b.WriteString("\n")
	b.WriteString(renderDivider(contentWidth))
	b.WriteString("\n")

	if v.snapshot == nil {
		b.WriteString(mutedTextStyle.Render("  Loading..."))
		b.WriteString("\n")
		return b.String()
	}

	start := v.snapshot.Viewport().Start()
	selected := v.snapshot.Selected()
	for i, entry := range v.snapshot.Visible() {
		b.WriteString(renderEntry(entry, start+i == selected, contentWidth))
		b.WriteString("\n")
	}
	if v.snapshot.Len() == 0 {
		b.WriteString(mutedTextStyle.Render("  (empty directory)"))
		b.WriteString("\n")
	}

	b.WriteString(renderDivider(contentWidth))
	b.WriteString("\n")
	b.WriteString(v.renderHint(contentWidth))
	return b.String()
}

func (v *explorerView) renderHeader(width int) string {
	if v.snapshot == nil {
		return titleStyle.Render("  fex")
	}
	title := titleStyle.Render("  " + v.snapshot.DisplayName())
	counts := mutedTextStyle.Render(fmt.Sprintf("%d dirs, %d files",
		v.snapshot.DirCount(), v.snapshot.FileCount()))

	spacing := width - lipgloss.Width(title) - lipgloss.Width(counts)
	if spacing < 1 {
		spacing = 1
	}
	return title + strings.Repeat(" ", spacing) + counts
}

func (v *explorerView) renderHint(width int) string {
	if v.filtered != nil {
		return warningTextStyle.Render(fmt.Sprintf("  match %d/%d",
			v.filtered.HintPos(), v.filtered.Total()))
	}
	hint := keyStyle.Render("[s]") + keyDescStyle.Render(" search  ") +
		keyStyle.Render("[m]") + keyDescStyle.Render(" metadata  ") +
		keyStyle.Render("[r]") + keyDescStyle.Render(" reload  ") +
		keyStyle.Render("[?]") + keyDescStyle.Render(" help  ") +
		keyStyle.Render("[q]") + keyDescStyle.Render(" quit")
	return "  " + hint
}

// renderEntry renders one listing row: cursor, name, size for files.
func renderEntry(entry types.Entry, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}

	name := truncatePath(entry.Name, width-16)
	var row string
	switch {
	case selected:
		row = selectedItemStyle.Render(name)
	case entry.IsDir:
		row = dirItemStyle.Render(name)
	default:
		row = normalItemStyle.Render(name)
	}

	size := ""
	if !entry.IsDir && entry.Metadata != nil {
		size = entrySizeStyle.Render(types.FormatSize(entry.Metadata.Size))
	}

	pad := width - lipgloss.Width(cursor) - lipgloss.Width(row) - lipgloss.Width(size)
	if pad < 1 {
		pad = 1
	}
	return cursor + row + strings.Repeat(" ", pad) + size
}
