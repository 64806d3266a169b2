package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/yeonwoo-dev/studyr/internal/store"
)

type routineModel struct {
	store  *store.Store
	width  int
	height int

	tasks  []store.RoutineTask
	cursor int

	formActive bool
	form       *huh.Form
	formText   *string
}

func newRoutineModel(s *store.Store) routineModel {
	text := ""
	return routineModel{store: s, formText: &text}
}

func (r *routineModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r routineModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return routineDataMsg{tasks: r.store.ListRoutine()}
	}
}

func (r routineModel) update(msg tea.Msg) (routineModel, tea.Cmd) {
	if r.formActive && r.form != nil {
		return r.updateForm(msg)
	}

	switch msg := msg.(type) {
	case routineDataMsg:
		r.tasks = msg.tasks
		if r.cursor >= len(r.tasks) {
			r.cursor = max(0, len(r.tasks)-1)
		}
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if r.cursor > 0 {
				r.cursor--
			}
		case key.Matches(msg, keys.Down):
			if r.cursor < len(r.tasks)-1 {
				r.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if r.cursor < len(r.tasks) {
				if err := r.store.ToggleRoutine(r.tasks[r.cursor].ID); err != nil {
					return r, errStatus(err)
				}
				return r, r.refresh()
			}
		case key.Matches(msg, keys.New):
			return r.showAddForm()
		case key.Matches(msg, keys.Delete):
			if r.cursor < len(r.tasks) {
				if err := r.store.RemoveRoutine(r.tasks[r.cursor].ID); err != nil {
					return r, errStatus(err)
				}
				return r, r.refresh()
			}
		}
	}
	return r, nil
}

func (r routineModel) showAddForm() (routineModel, tea.Cmd) {
	*r.formText = ""

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Routine task").Value(r.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r routineModel) updateForm(msg tea.Msg) (routineModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.formActive = false
			r.form = nil
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.formActive = false
		if _, err := r.store.AddRoutine(*r.formText); err != nil {
			return r, errStatus(err)
		}
		return r, r.refresh()
	}

	return r, cmd
}

func (r routineModel) view() string {
	w := r.width - 4

	if r.formActive && r.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New Routine Task"), "", r.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Daily Routine")

	if len(r.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No routine tasks yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, task := range r.tasks {
		cursor := "  "
		style := normalItemStyle
		if i == r.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		box := "[ ]"
		if task.Done {
			box = successStyle.Render("[x]")
		}
		rows = append(rows, style.Render(cursor+box+" "+task.Task))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  n: new  d: delete"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
