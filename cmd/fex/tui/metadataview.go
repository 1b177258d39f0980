package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmlane/fex/pkg/fex/action"
	"github.com/rmlane/fex/pkg/fex/types"
)

// metadataView is the modal metadata overlay. While open it swallows
// every key so the page underneath stays untouched; it is registered
// first in the component chain for exactly that reason.
type metadataView struct {
	fileMeta *types.FileMetadata
	filePath string
	dirMeta  *types.DirMetadata

	// waiting is set while a recursive metadata walk is outstanding.
	waiting bool
}

func newMetadataView() *metadataView {
	return &metadataView{}
}

func (v *metadataView) open() bool {
	return v.fileMeta != nil || v.dirMeta != nil
}

// HandleKey implements Component.
func (v *metadataView) HandleKey(_ action.Context, msg tea.KeyMsg) action.Action {
	if !v.open() {
		return nil
	}

	switch msg.String() {
	case "esc", "enter", "m", "q":
		return action.CloseMetadata{}
	}
	// Swallow everything else while the overlay is up.
	return action.Render{}
}

// Update implements Component.
func (v *metadataView) Update(a action.Action) []action.Action {
	switch act := a.(type) {
	case action.ShowFileMetadata:
		v.filePath = act.Path
		v.fileMeta = act.Meta
		v.dirMeta = nil

	case action.ShowDirMetadata:
		v.dirMeta = act.Meta
		v.fileMeta = nil

	case action.LoadDirMetadata:
		v.waiting = true

	case action.LoadDirMetadataDone:
		if !v.waiting {
			return nil
		}
		v.waiting = false
		if act.Meta == nil {
			return []action.Action{
				action.UpdateStatus{Status: action.Failure("Could not read directory metadata")},
			}
		}
		return []action.Action{action.ShowDirMetadata{Meta: act.Meta}}

	case action.CloseMetadata:
		v.fileMeta = nil
		v.dirMeta = nil
	}
	return nil
}

// View renders the overlay box, or "" when closed.
func (v *metadataView) View() string {
	switch {
	case v.fileMeta != nil:
		return v.renderFile()
	case v.dirMeta != nil:
		return v.renderDir()
	}
	return ""
}

func (v *metadataView) renderFile() string {
	m := v.fileMeta

	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render("File Metadata"))
	b.WriteString("\n\n")
	b.WriteString(metaRow("Path", types.DisplayPath(v.filePath)))
	b.WriteString(metaRow("Size", types.FormatSize(m.Size)))
	b.WriteString(metaRow("Created", types.FormatTime(m.Created)))
	b.WriteString(metaRow("Accessed", types.FormatTime(m.Accessed)))
	b.WriteString(metaRow("Modified", types.FormatTime(m.Modified)))
	readOnly := "no"
	if m.ReadOnly {
		readOnly = "yes"
	}
	b.WriteString(metaRow("Read-only", readOnly))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("[esc]") + keyDescStyle.Render(" close"))

	return overlayBoxStyle.Render(b.String())
}

func (v *metadataView) renderDir() string {
	m := v.dirMeta

	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render("Directory Metadata"))
	b.WriteString("\n\n")
	b.WriteString(metaRow("Name", m.Name))
	b.WriteString(metaRow("Created", types.FormatTime(m.Created)))
	b.WriteString(metaRow("Modified", types.FormatTime(m.Modified)))
	b.WriteString(metaRow("Files", fmt.Sprintf("%d", m.FileCount)))
	b.WriteString(metaRow("Dirs", fmt.Sprintf("%d", m.DirCount)))
	b.WriteString(metaRow("Total size", types.FormatSize(m.TotalSize)))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("[esc]") + keyDescStyle.Render(" close"))

	return overlayBoxStyle.Render(b.String())
}

func metaRow(label, value string) string {
	return overlayLabelStyle.Render(label) + value + "\n"
}
