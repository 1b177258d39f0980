package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmlane/fex/pkg/fex/action"
)

// helpView is the static keybinding reference page.
type helpView struct {
	width  int
	height int
}

func newHelpView() *helpView {
	return &helpView{width: 80, height: 24}
}

// HandleKey implements Component. Any key leaves the help page.
func (v *helpView) HandleKey(ctx action.Context, _ tea.KeyMsg) action.Action {
	if ctx != action.ContextHelp {
		return nil
	}
	return action.SwitchContext{Context: action.ContextExplorer}
}

// Update implements Component.
func (v *helpView) Update(a action.Action) []action.Action {
	if act, ok := a.(action.Resize); ok {
		v.width = act.Width
		v.height = act.Height
	}
	return nil
}

var helpBindings = []struct {
	key  string
	desc string
}{
	{"↑/k  ↓/j", "move selection (wraps around)"},
	{"pgup/pgdown", "page up / page down"},
	{"g / G", "first / last entry"},
	{"enter/l/→", "open directory or show file metadata"},
	{"backspace/h/←", "go to parent directory"},
	{"a-z", "jump to next entry starting with letter"},
	{"esc", "leave letter-jump mode"},
	{"s", "search from current directory"},
	{"m", "metadata for selected entry"},
	{"r", "reload current directory"},
	{"e", "export search results (results page)"},
	{"tab", "toggle flat/deep search (search page)"},
	{"?", "this help"},
	{"q / ctrl+c", "quit"},
}

// View renders the help page.
func (v *helpView) View() string {
	contentWidth := v.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("  Keybindings"))
	b.WriteString("\n")
	b.WriteString(renderDivider(contentWidth))
	b.WriteString("\n\n")

	for _, binding := range helpBindings {
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(binding.key))
		pad := 18 - len(binding.key)
		if pad < 1 {
			pad = 1
		}
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(keyDescStyle.Render(binding.desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedTextStyle.Render("  Press any key to return"))
	return b.String()
}
