package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rmlane/fex/pkg/fex/action"
	"github.com/rmlane/fex/pkg/fex/logging"
	"github.com/rmlane/fex/pkg/fex/output"
	"github.com/rmlane/fex/pkg/fex/task"
)

// Options configures the TUI application.
type Options struct {
	StartDir       string
	ExportDir      string
	FollowSymlinks bool
	TickRate       time.Duration
	FrameRate      int
}

// App is the Bubble Tea model hosting the dispatch loop. Bubble Tea's
// update goroutine is the single-threaded cooperative loop: every
// external event is mapped to canonical actions and the queue is
// drained to a fixed point before the next event is taken.
type App struct {
	opts Options

	queue *action.Queue
	disp  *dispatcher
	sup   *task.Supervisor
	watch *dirWatcher

	metadata *metadataView
	explorer *explorerView
	search   *searchView
	results  *resultsView
	help     *helpView
	footer   *footerView

	width     int
	height    int
	suspended bool
	stopped   bool
}

// NewApp assembles the application and enqueues the initial directory
// load; the first drain submits it to the supervisor.
func NewApp(opts Options) (*App, error) {
	queue := action.NewQueue()

	a := &App{
		opts:     opts,
		queue:    queue,
		sup:      task.NewSupervisor(queue),
		metadata: newMetadataView(),
		explorer: newExplorerView(opts.FollowSymlinks),
		search:   newSearchView(opts.FollowSymlinks),
		results:  newResultsView(),
		help:     newHelpView(),
		footer:   newFooterView(),
		width:    80,
		height:   24,
	}

	watch, err := newDirWatcher(queue, opts.FollowSymlinks)
	if err != nil {
		// Auto-reload is a convenience; run without it.
		logging.Get("tui").Warn("filesystem watcher unavailable", "err", err)
	}
	a.watch = watch

	// The metadata overlay goes first so it can swallow keys while open.
	a.disp = newDispatcher(queue, a.effect,
		a.metadata, a.explorer, a.search, a.results, a.help, a.footer)

	queue.Push(action.LoadDir{Path: opts.StartDir, FollowSymlinks: opts.FollowSymlinks})
	return a, nil
}

// effect performs the loop-owned side effects of an action: supervisor
// submissions, watcher retargeting, exports, and window bookkeeping.
func (a *App) effect(act action.Action) {
	switch v := act.(type) {
	case action.LoadDir:
		a.sup.Submit(task.LoadDirOp{Path: v.Path, FollowSymlinks: v.FollowSymlinks})

	case action.StartSearch:
		a.sup.Submit(task.SearchOp{
			Root:           v.Root,
			Query:          v.Query,
			MaxDepth:       v.MaxDepth,
			FollowSymlinks: v.FollowSymlinks,
		})

	case action.LoadDirMetadata:
		a.sup.Submit(task.DirMetadataOp{
			DirName:        v.Name,
			Path:           v.Path,
			FollowSymlinks: v.FollowSymlinks,
		})

	case action.LoadDirDone:
		if v.Snapshot != nil && a.watch != nil {
			a.watch.Watch(v.Snapshot.Cwd())
		}

	case action.Export:
		path, err := output.WriteSearchResult(v.Result, a.opts.ExportDir)
		if err != nil {
			a.queue.Push(action.ExportFailure{Err: err})
			return
		}
		a.queue.Push(action.ExportDone{Path: path})

	case action.Resize:
		a.width = v.Width
		a.height = v.Height

	case action.Suspend:
		a.suspended = true

	case action.Resume:
		a.suspended = false
	}
}

type tickMsg struct{}
type renderTickMsg struct{}
type queueReadyMsg struct{}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.opts.TickRate, func(time.Time) tea.Msg { return tickMsg{} })
}

func (a *App) renderTick() tea.Cmd {
	interval := time.Second / time.Duration(a.opts.FrameRate)
	return tea.Tick(interval, func(time.Time) tea.Msg { return renderTickMsg{} })
}

// listenQueue parks on the queue's wake channel; one wake covers any
// number of pushes because the drain empties the queue completely.
func (a *App) listenQueue() tea.Cmd {
	return func() tea.Msg {
		<-a.queue.Ready()
		return queueReadyMsg{}
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.tick(),
		a.renderTick(),
		a.listenQueue(),
		a.footer.spinner.Tick,
	)
}

// Update implements tea.Model. Raw Bubble Tea messages are mapped to
// canonical actions; the queue is then drained to a fixed point.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.queue.Push(action.Resize{Width: msg.Width, Height: msg.Height})

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.queue.Push(action.Quit{})
		} else {
			a.disp.OfferKey(msg)
		}

	case tea.FocusMsg:
		a.queue.Push(action.Resume{})

	case tea.BlurMsg:
		a.queue.Push(action.Suspend{})

	case tickMsg:
		a.queue.Push(action.Tick{})
		cmds = append(cmds, a.tick())

	case renderTickMsg:
		a.queue.Push(action.Render{})
		cmds = append(cmds, a.renderTick())

	case queueReadyMsg:
		cmds = append(cmds, a.listenQueue())

	case spinner.TickMsg:
		cmds = append(cmds, a.footer.UpdateSpinner(msg))
	}

	a.disp.Drain()

	if a.disp.fatal != nil || a.disp.quitting {
		return a, a.shutdown()
	}
	return a, tea.Batch(cmds...)
}

// shutdown runs once: it stops the watcher, synchronously stops the
// supervisor (bounded by its hard ceiling), and closes the queue so
// late emissions are dropped instead of accumulating.
func (a *App) shutdown() tea.Cmd {
	if a.stopped {
		return tea.Quit
	}
	a.stopped = true

	if a.watch != nil {
		a.watch.Close()
	}
	a.sup.Stop()
	if a.sup.ForcedShutdown() {
		a.disp.forced = true
	}
	a.queue.Close()
	return tea.Quit
}

// View implements tea.Model.
func (a *App) View() string {
	if a.stopped || a.suspended {
		return ""
	}

	var page string
	switch a.disp.context {
	case action.ContextSearch:
		page = a.search.View()
	case action.ContextResults:
		page = a.results.View()
	case action.ContextHelp:
		page = a.help.View()
	default:
		page = a.explorer.View()
	}

	content := page + "\n" + a.footer.View()

	// Pad to full height so the footer stays at the bottom.
	contentLines := strings.Count(content, "\n") + 1
	available := a.height - 2
	if available > contentLines {
		content += strings.Repeat("\n", available-contentLines)
	}

	screen := outerBoxStyle.Width(a.width - 2).Height(a.height - 2).Render(content)

	if overlay := a.metadata.View(); overlay != "" {
		screen = a.overlayCentered(screen, overlay)
	}
	return screen
}

// overlayCentered composites the overlay box over the background view.
func (a *App) overlayCentered(bg, overlay string) string {
	overlayLines := strings.Split(overlay, "\n")
	bgLines := strings.Split(bg, "\n")

	startRow := (a.height - len(overlayLines)) / 2
	if startRow < 0 {
		startRow = 0
	}
	startCol := (a.width - lipgloss.Width(overlay)) / 2
	if startCol < 0 {
		startCol = 0
	}

	var result []string
	for i := 0; i < max(len(bgLines), startRow+len(overlayLines)); i++ {
		if i < startRow || i >= startRow+len(overlayLines) {
			if i < len(bgLines) {
				result = append(result, bgLines[i])
			} else {
				result = append(result, "")
			}
			continue
		}
		result = append(result, strings.Repeat(" ", startCol)+overlayLines[i-startRow])
	}
	return strings.Join(result, "\n")
}

// Run starts the TUI application and blocks until it exits. A fatal
// Error action surfaces as the returned error; a forced shutdown is
// reported on stderr once the terminal is restored.
func Run(opts Options) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	if _, err := p.Run(); err != nil {
		return err
	}
	if app.disp.fatal != nil {
		return app.disp.fatal
	}
	if app.disp.forced {
		fmt.Fprintln(os.Stderr, "warning: a background operation did not stop in time and was abandoned")
	}
	return nil
}
