package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rmlane/fex/pkg/fex/action"
	"github.com/rmlane/fex/pkg/fex/explorer"
)

// resultsView is the search results page. The result snapshot is
// immutable; only its viewport moves.
type resultsView struct {
	result *explorer.SearchResult
	mode   action.SearchMode

	width  int
	height int
}

func newResultsView() *resultsView {
	return &resultsView{width: 80, height: 24}
}

func (v *resultsView) listHeight() int {
	h := v.height - 8
	if h < 1 {
		h = 1
	}
	return h
}

// HandleKey implements Component.
func (v *resultsView) HandleKey(ctx action.Context, msg tea.KeyMsg) action.Action {
	if ctx != action.ContextResults {
		return nil
	}

	switch msg.String() {
	case "esc", "backspace", "q":
		return action.SwitchContext{Context: action.ContextExplorer}
	case "?":
		return action.SwitchContext{Context: action.ContextHelp}
	}

	if v.result == nil {
		return nil
	}

	switch msg.String() {
	case "up", "k":
		v.result.ScrollUp()
		return action.Render{}
	case "down", "j":
		v.result.ScrollDown()
		return action.Render{}
	case "pgup":
		v.result.PageUp()
		return action.Render{}
	case "pgdown":
		v.result.PageDown()
		return action.Render{}
	case "home", "g":
		v.result.GoTo(0)
		return action.Render{}
	case "end", "G":
		v.result.GoTo(v.result.Len() - 1)
		return action.Render{}
	case "e":
		return action.Export{Result: v.result}
	}
	return nil
}

// Update implements Component.
func (v *resultsView) Update(a action.Action) []action.Action {
	switch act := a.(type) {
	case action.ShowResultsPage:
		v.result = act.Result
		v.mode = act.Mode
		v.result.Viewport().SetHeight(v.listHeight())
		v.result.Viewport().Reset()

	case action.Resize:
		v.width = act.Width
		v.height = act.Height
		if v.result != nil && v.result.Viewport().SetHeight(v.listHeight()) {
			v.result.Viewport().Reset()
		}
	}
	return nil
}

// View renders the results page.
func (v *resultsView) View() string {
	contentWidth := v.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	var b strings.Builder
	b.WriteString(v.renderHeader(contentWidth))
	b.WriteString("\n")
	b.WriteString(renderDivider(contentWidth))
	b.WriteString("\n")

	if v.result == nil {
		b.WriteString(mutedTextStyle.Render("  No results"))
		b.WriteString("\n")
		return b.String()
	}

	start := v.result.Viewport().Start()
	selected := v.result.Selected()
	for i, entry := range v.result.Visible() {
		cursor := "  "
		if start+i == selected {
			cursor = cursorStyle.Render("> ")
		}
		path := truncatePath(entry.Path, contentWidth-4)
		if start+i == selected {
			b.WriteString(cursor + selectedItemStyle.Render(path))
		} else if entry.IsDir {
			b.WriteString(cursor + dirItemStyle.Render(path))
		} else {
			b.WriteString(cursor + normalItemStyle.Render(path))
		}
		b.WriteString("\n")
	}

	b.WriteString(renderDivider(contentWidth))
	b.WriteString("\n")
	hint := keyStyle.Render("[e]") + keyDescStyle.Render(" export  ") +
		keyStyle.Render("[esc]") + keyDescStyle.Render(" back")
	b.WriteString("  " + hint)
	return b.String()
}

func (v *resultsView) renderHeader(width int) string {
	if v.result == nil {
		return titleStyle.Render("  Results")
	}
	title := titleStyle.Render(fmt.Sprintf("  Results for %q in %s",
		v.result.Query(), v.result.RootDisplayName()))
	counts := mutedTextStyle.Render(fmt.Sprintf("%d matches, %s",
		v.result.Len(), v.mode))

	spacing := width - lipgloss.Width(title) - lipgloss.Width(counts)
	if spacing < 1 {
		spacing = 1
	}
	return title + strings.Repeat(" ", spacing) + counts
}
