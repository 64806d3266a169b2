package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/yeonwoo-dev/studyr/internal/export"
	"github.com/yeonwoo-dev/studyr/internal/store"
	"github.com/yeonwoo-dev/studyr/internal/timer"
)

// App is the root Bubble Tea model. It is the presentation shell around
// the core: all state changes go through the store and the timer engine,
// and the tick loop here is the external scheduler that advances the
// engine once per second.
type App struct {
	store  *store.Store
	engine *timer.Engine
	clock  clockwork.Clock
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	home    homeModel
	planner plannerModel
	focus   focusModel
	routine routineModel
	stats   statsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, e *timer.Engine, clock clockwork.Clock) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		engine:     e,
		clock:      clock,
		activeView: viewHome,
		home:       newHomeModel(s, clock),
		planner:    newPlannerModel(s, clock),
		focus:      newFocusModel(e),
		routine:    newRoutineModel(s),
		stats:      newStatsModel(s, clock),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.home.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.planner.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		a.routine.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewHome
			return a, a.home.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewPlanner
			return a, a.planner.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewFocus
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewRoutine
			return a, a.routine.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		// The tick loop is the engine's scheduler; the engine checks
		// for cancellation on its own, this just advances the countdown.
		a.engine.Tick()
		for drained := false; !drained; {
			select {
			case ev := <-a.engine.Events():
				a.status = eventStatus(ev)
			default:
				drained = true
			}
		}
		return a, tickCmd()

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func eventStatus(ev timer.Event) string {
	switch ev.Kind {
	case timer.FocusCompleted:
		return "Focus phase complete, break time! \a"
	case timer.CycleCompleted:
		return "Cycle complete, well done! \a"
	case timer.Cancelled:
		return "Timer cancelled"
	}
	return ""
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHome:
		a.home, cmd = a.home.update(msg)
	case viewPlanner:
		a.planner, cmd = a.planner.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewRoutine:
		a.routine, cmd = a.routine.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewPlanner:
		return a.planner.formActive
	case viewFocus:
		return a.focus.formActive
	case viewRoutine:
		return a.routine.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewHome:
		return a.home.refresh()
	case viewPlanner:
		return a.planner.refresh()
	case viewRoutine:
		return a.routine.refresh()
	case viewStats:
		return a.stats.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHome:
		content = a.home.view()
	case viewPlanner:
		content = a.planner.view()
	case viewFocus:
		content = a.focus.view()
	case viewRoutine:
		content = a.routine.view()
	case viewStats:
		content = a.stats.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("studyr")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Timer indicator in footer
	timerInfo := ""
	if sess := a.engine.Session(); sess.Phase != timer.PhaseIdle {
		label := formatCountdown(sess.Remaining)
		switch sess.Phase {
		case timer.PhaseFocusing:
			timerInfo = successStyle.Render(" ● " + label)
		case timer.PhaseResting:
			timerInfo = warningStyle.Render(" ☕ " + label)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		plans := a.store.ListPlans(store.PlanFilter{})

		home, _ := os.UserHomeDir()
		dateStr := a.clock.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("studyr-export-%s.csv", dateStr))
			if err := export.ToCSV(plans, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("studyr-export-%s.json", dateStr))
			if err := export.ToJSON(plans, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
