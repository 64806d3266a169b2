package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/yeonwoo-dev/studyr/internal/timer"
)

var (
	focusChoices = []string{"15", "25", "45", "60", "90"}
	breakChoices = []string{"5", "10", "15", "20", "30"}
)

// focusModel renders the interval timer. It never advances the engine
// itself; the root app's tick loop does that once per second.
type focusModel struct {
	engine *timer.Engine
	width  int
	height int

	formActive bool
	form       *huh.Form

	formFocus *string
	formBreak *string
}

func newFocusModel(e *timer.Engine) focusModel {
	focus, brk := "25", "5"
	return focusModel{
		engine:    e,
		formFocus: &focus,
		formBreak: &brk,
	}
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	if f.formActive && f.form != nil {
		return f.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if !f.engine.Running() {
				return f.showStartForm()
			}
			return f, errStatus(timer.ErrAlreadyRunning)
		case key.Matches(msg, keys.Cancel):
			if f.engine.Running() {
				f.engine.Cancel()
			}
		}
	}
	return f, nil
}

func (f focusModel) showStartForm() (focusModel, tea.Cmd) {
	options := func(choices []string) []huh.Option[string] {
		opts := make([]huh.Option[string], len(choices))
		for i, c := range choices {
			opts[i] = huh.NewOption(c+" min", c)
		}
		return opts
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Focus").Options(options(focusChoices)...).Value(f.formFocus),
			huh.NewSelect[string]().Title("Break").Options(options(breakChoices)...).Value(f.formBreak),
		),
	).WithShowHelp(true).WithShowErrors(true)

	f.formActive = true
	return f, f.form.Init()
}

func (f focusModel) updateForm(msg tea.Msg) (focusModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.formActive = false
			f.form = nil
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if frm, ok := form.(*huh.Form); ok {
		f.form = frm
	}

	if f.form.State == huh.StateCompleted {
		f.formActive = false
		focusMin, _ := strconv.Atoi(*f.formFocus)
		breakMin, _ := strconv.Atoi(*f.formBreak)
		if err := f.engine.Start(focusMin, breakMin); err != nil {
			return f, errStatus(err)
		}
		return f, nil
	}

	return f, cmd
}

func (f focusModel) view() string {
	w := f.width - 4

	if f.formActive && f.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Start Focus Cycle"), "", f.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Focus Timer")
	sess := f.engine.Session()

	var timeDisplay, phaseLabel, controls string
	switch sess.Phase {
	case timer.PhaseFocusing:
		timeDisplay = accentStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(sess.Remaining))
		phaseLabel = accentStyle.Bold(true).Render("FOCUS")
		controls = mutedStyle.Render("x: cancel")
	case timer.PhaseResting:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(sess.Remaining))
		phaseLabel = successStyle.Bold(true).Render("BREAK")
		controls = mutedStyle.Render("x: cancel")
	default:
		timeDisplay = countdownStyle.Width(w - 6).Render("--:--")
		phaseLabel = mutedStyle.Render("Ready for one focus+break cycle")
		controls = mutedStyle.Render("s: start  q: quit")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		phaseLabel,
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}
