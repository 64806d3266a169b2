package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yeonwoo-dev/studyr/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewPlanner
	viewFocus
	viewRoutine
	viewStats
)

var viewNames = []string{"Home", "Planner", "Focus", "Routine", "Stats"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type plansDataMsg struct {
	plans []store.PlanEntry
}

type routineDataMsg struct {
	tasks []store.RoutineTask
}

type statsDataMsg struct {
	plans []store.PlanEntry
}

type sleepDataMsg struct {
	today store.SleepTimes
}

type exportDoneMsg struct {
	path string
}

// errStatus turns an error into a status bar message command.
func errStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: "Error: " + err.Error(), isError: true}
	}
}

// --- Formatting helpers ---

// formatCountdown renders a remaining duration as MM:SS.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

// formatHours renders an hour count such as 1.5 as "1.5h".
func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}
