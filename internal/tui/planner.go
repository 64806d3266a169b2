package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/yeonwoo-dev/studyr/internal/storage"
	"github.com/yeonwoo-dev/studyr/internal/store"
)

type plannerModel struct {
	store  *store.Store
	clock  clockwork.Clock
	width  int
	height int

	plans  []store.PlanEntry
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "create", "complete"

	// Form field pointers (survive value copies)
	formSubject *string
	formContent *string
	formGoal    *string
	formActual  *string
	formAch     *string

	completingID int64
}

func newPlannerModel(s *store.Store, clock clockwork.Clock) plannerModel {
	subject, content, goal, actual, ach := "", "", "", "", "perfect"
	return plannerModel{
		store:       s,
		clock:       clock,
		formSubject: &subject,
		formContent: &content,
		formGoal:    &goal,
		formActual:  &actual,
		formAch:     &ach,
	}
}

func (p *plannerModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p plannerModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return plansDataMsg{plans: p.store.ListPlans(store.PlanFilter{})}
	}
}

func (p plannerModel) update(msg tea.Msg) (plannerModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case plansDataMsg:
		p.plans = msg.plans
		if p.cursor >= len(p.plans) {
			p.cursor = max(0, len(p.plans)-1)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.plans)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showCreateForm()
		case key.Matches(msg, keys.Complete):
			if p.cursor < len(p.plans) && p.plans[p.cursor].Status == store.StatusPlanned {
				return p.showCompleteForm(p.plans[p.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if p.cursor < len(p.plans) {
				if err := p.store.DeletePlan(p.plans[p.cursor].ID); err != nil {
					return p, errStatus(err)
				}
				return p, p.refresh()
			}
		}
	}
	return p, nil
}

func (p plannerModel) showCreateForm() (plannerModel, tea.Cmd) {
	*p.formSubject = ""
	*p.formContent = ""
	*p.formGoal = "1.0"
	p.formType = "create"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subject").Value(p.formSubject),
			huh.NewInput().Title("What will you study?").Value(p.formContent),
			huh.NewInput().Title("Goal hours (0-24)").Value(p.formGoal),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p plannerModel) showCompleteForm(entry store.PlanEntry) (plannerModel, tea.Cmd) {
	*p.formActual = fmt.Sprintf("%.1f", entry.GoalHours)
	*p.formAch = "perfect"
	p.formType = "complete"
	p.completingID = entry.ID

	achOptions := []huh.Option[string]{
		huh.NewOption("◎ Perfect", "perfect"),
		huh.NewOption("○ Partial", "partial"),
		huh.NewOption("△ Poor", "poor"),
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Actual hours (0-24)").Value(p.formActual),
			huh.NewSelect[string]().Title("Achievement").Options(achOptions...).Value(p.formAch),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p plannerModel) updateForm(msg tea.Msg) (plannerModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		switch p.formType {
		case "create":
			return p.submitCreate()
		case "complete":
			return p.submitComplete()
		}
	}

	return p, cmd
}

func (p plannerModel) submitCreate() (plannerModel, tea.Cmd) {
	goal, err := strconv.ParseFloat(*p.formGoal, 64)
	if err != nil {
		return p, errStatus(fmt.Errorf("goal hours: %q is not a number", *p.formGoal))
	}
	if _, err := p.store.CreatePlan(p.clock.Now(), *p.formSubject, *p.formContent, goal); err != nil {
		return p, errStatus(err)
	}
	return p, p.refresh()
}

func (p plannerModel) submitComplete() (plannerModel, tea.Cmd) {
	actual, err := strconv.ParseFloat(*p.formActual, 64)
	if err != nil {
		return p, errStatus(fmt.Errorf("actual hours: %q is not a number", *p.formActual))
	}
	ach, _ := store.ParseAchievement(*p.formAch)
	if _, err := p.store.CompletePlan(p.completingID, actual, ach); err != nil {
		return p, errStatus(err)
	}
	return p, p.refresh()
}

func (p plannerModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Plan")
		if p.formType == "complete" {
			title = titleStyle.Render("Complete Plan")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Planner")

	if len(p.plans) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No plans yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-14s %-24s %7s %7s  %s",
		"Date", "Subject", "Content", "Goal", "Actual", "Result")))

	for i, entry := range p.plans {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-12s %-14s %-24s %7s %7s  %s",
			cursor,
			entry.Date.Format(storage.DateLayout),
			truncate(entry.Subject, 14),
			truncate(entry.Content, 24),
			formatHours(entry.GoalHours),
			formatHours(entry.ActualHours),
			renderResult(entry),
		)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  c: complete  d: delete"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderResult(entry store.PlanEntry) string {
	if entry.Status == store.StatusPlanned {
		return mutedStyle.Render("planned")
	}
	switch entry.Achievement {
	case store.AchievementPerfect:
		return successStyle.Render("perfect")
	case store.AchievementPartial:
		return warningStyle.Render("partial")
	case store.AchievementPoor:
		return errorStyle.Render("poor")
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
