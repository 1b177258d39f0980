package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmlane/fex/pkg/fex/action"
	"github.com/rmlane/fex/pkg/fex/types"
)

// searchView is the query entry page. It remembers which root it was
// opened for and which mode the last search ran in, so SearchDone can
// be labelled correctly on the results page.
type searchView struct {
	input  textinput.Model
	mode   action.SearchMode
	root   string
	follow bool

	waiting bool

	width  int
	height int
}

func newSearchView(follow bool) *searchView {
	input := textinput.New()
	input.Placeholder = "file or directory name"
	input.CharLimit = 255
	input.Width = 40

	return &searchView{input: input, follow: follow, width: 80, height: 24}
}

// HandleKey implements Component.
func (v *searchView) HandleKey(ctx action.Context, msg tea.KeyMsg) action.Action {
	if ctx != action.ContextSearch {
		return nil
	}

	switch msg.String() {
	case "esc":
		v.input.Blur()
		return action.SwitchContext{Context: action.ContextExplorer}

	case "tab":
		if v.mode == action.SearchFlat {
			v.mode = action.SearchDeep
		} else {
			v.mode = action.SearchFlat
		}
		return action.Render{}

	case "enter":
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return action.UpdateStatus{Status: action.Failure("Search query is empty")}
		}
		return action.StartSearch{
			Root:           v.root,
			Query:          query,
			MaxDepth:       v.mode.MaxDepth(),
			FollowSymlinks: v.follow,
		}
	}

	v.input, _ = v.input.Update(msg)
	return action.Render{}
}

// Update implements Component.
func (v *searchView) Update(a action.Action) []action.Action {
	switch act := a.(type) {
	case action.ShowSearchPage:
		v.root = act.Root
		v.input.SetValue("")
		v.input.Focus()
		return []action.Action{action.SwitchContext{Context: action.ContextSearch}}

	case action.StartSearch:
		v.waiting = true

	case action.SearchDone:
		if !v.waiting {
			return nil
		}
		v.waiting = false
		if act.Result == nil {
			return []action.Action{
				action.UpdateStatus{Status: action.Failure("No matches found")},
			}
		}
		return []action.Action{
			action.ShowResultsPage{Result: act.Result, Mode: v.mode},
			action.SwitchContext{Context: action.ContextResults},
		}

	case action.Resize:
		v.width = act.Width
		v.height = act.Height
		v.input.Width = v.width - 20
	}
	return nil
}

// View renders the search page.
func (v *searchView) View() string {
	contentWidth := v.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("  Search in " + types.DisplayPath(v.root)))
	b.WriteString("\n")
	b.WriteString(renderDivider(contentWidth))
	b.WriteString("\n\n")

	b.WriteString("  " + v.input.View())
	b.WriteString("\n\n")

	modeDesc := "current directory only"
	if v.mode == action.SearchDeep {
		modeDesc = "recursive"
	}
	b.WriteString(fmt.Sprintf("  Mode: %s (%s)",
		warningTextStyle.Render(v.mode.String()), modeDesc))
	b.WriteString("\n\n")

	hint := keyStyle.Render("[enter]") + keyDescStyle.Render(" search  ") +
		keyStyle.Render("[tab]") + keyDescStyle.Render(" mode  ") +
		keyStyle.Render("[esc]") + keyDescStyle.Render(" back")
	b.WriteString("  " + hint)
	return b.String()
}
