package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rmlane/fex/pkg/fex/action"
	"github.com/rmlane/fex/pkg/fex/types"
)

// footerView is the one-line status bar: current status message with a
// spinner while an operation runs, active context, and a clock updated
// on the application tick.
type footerView struct {
	status  action.Status
	spinner spinner.Model
	context action.Context
	clock   time.Time
	width   int
}

func newFooterView() *footerView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(warningColor)

	return &footerView{
		status:  action.Done("Ready"),
		spinner: s,
		clock:   time.Now(),
		width:   80,
	}
}

// HandleKey implements Component. The footer never consumes keys.
func (v *footerView) HandleKey(action.Context, tea.KeyMsg) action.Action {
	return nil
}

// Update implements Component. The footer derives status messages from
// terminal actions so individual pages do not have to emit them.
func (v *footerView) Update(a action.Action) []action.Action {
	switch act := a.(type) {
	case action.UpdateStatus:
		v.status = act.Status

	case action.Tick:
		v.clock = time.Now()

	case action.SwitchContext:
		v.context = act.Context

	case action.Resize:
		v.width = act.Width

	case action.LoadDirDone:
		if act.Snapshot != nil {
			v.status = action.Done(fmt.Sprintf("Loaded %d dirs, %d files",
				act.Snapshot.DirCount(), act.Snapshot.FileCount()))
		}

	case action.SearchDone:
		if act.Result != nil {
			v.status = action.Done(fmt.Sprintf("%d matches", act.Result.Len()))
		}

	case action.ExportDone:
		v.status = action.Done("Exported to " + types.DisplayPath(act.Path))

	case action.ExportFailure:
		v.status = action.Failure("Export failed: " + act.Err.Error())
	}
	return nil
}

// UpdateSpinner advances the spinner animation.
func (v *footerView) UpdateSpinner(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	v.spinner, cmd = v.spinner.Update(msg)
	return cmd
}

// View renders the footer line.
func (v *footerView) View() string {
	width := v.width - 4
	if width < 40 {
		width = 40
	}

	var status string
	switch v.status.Kind {
	case action.StatusWorking:
		status = v.spinner.View() + " " + warningTextStyle.Render(v.status.Message)
	case action.StatusFailure:
		status = errorTextStyle.Render(v.status.Message)
	default:
		status = successTextStyle.Render(v.status.Message)
	}

	right := mutedTextStyle.Render(v.context.String() + "  " + v.clock.Format("15:04:05"))

	spacing := width - lipgloss.Width(status) - lipgloss.Width(right) - 2
	if spacing < 1 {
		spacing = 1
	}
	return "  " + status + strings.Repeat(" ", spacing) + right
}
