package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/yeonwoo-dev/studyr/internal/stats"
	"github.com/yeonwoo-dev/studyr/internal/store"
)

var subjectColors = []string{"#7AA2F7", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#BB9AF7", "#E74C3C", "#3498DB"}

type statsModel struct {
	store  *store.Store
	clock  clockwork.Clock
	width  int
	height int

	plans  []store.PlanEntry
	offset int // months back from the current one (0 = current)

	chart barchart.Model
}

func newStatsModel(s *store.Store, clock clockwork.Clock) statsModel {
	return statsModel{
		store: s,
		clock: clock,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return statsDataMsg{plans: m.store.ListPlans(store.PlanFilter{})}
	}
}

// month returns the first day of the viewed month.
func (m statsModel) month() time.Time {
	now := store.DateOf(m.clock.Now())
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -m.offset, 0)
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.plans = msg.plans
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	breakdown := stats.SubjectBreakdown(m.plans)
	subjects := make([]string, 0, len(breakdown))
	for s := range breakdown {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	var bars []barchart.BarData
	for i, subject := range subjects {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(subjectColors[i%len(subjectColors)]))
		bars = append(bars, barchart.BarData{
			Label: truncate(subject, 10),
			Values: []barchart.BarValue{
				{Name: subject, Value: breakdown[subject], Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	first := m.month()
	last := first.AddDate(0, 1, -1)
	today := m.clock.Now()

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Statistics"), "  ",
		mutedStyle.Render(first.Format("January 2006")),
	)

	calendar := m.renderCalendar(first, today)

	scoreLine := mutedStyle.Render("  Today's score: no completed plans yet")
	if score, ok := stats.DailyScore(m.plans, today); ok {
		scoreLine = fmt.Sprintf("  Today's score: %s", highlightStyle.Render(fmt.Sprintf("%.2f / 3", score)))
	}
	totalLine := fmt.Sprintf("  Month total:   %s studied",
		successStyle.Render(formatHours(stats.PeriodTotal(m.plans, first, last))))

	chartTitle := titleStyle.Render("Hours by subject")
	chartView := m.chart.View()
	if len(stats.SubjectBreakdown(m.plans)) == 0 {
		chartView = mutedStyle.Render("  No completed plans to chart")
	}

	nav := mutedStyle.Render("  ←/→: change month")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", calendar, "", scoreLine, totalLine, "", chartTitle, chartView, "", nav,
		),
	)
}

// renderCalendar draws the month grid, one cell per day: plain days,
// a dot for days with activity, and today highlighted.
func (m statsModel) renderCalendar(first, today time.Time) string {
	cells := stats.CalendarGrid(m.plans, first.Year(), first.Month(), today)

	var rows []string
	var row []string
	// Lead with blanks so weeks line up Monday-first.
	lead := (int(first.Weekday()) + 6) % 7
	for i := 0; i < lead; i++ {
		row = append(row, "    ")
	}

	for _, cell := range cells {
		label := fmt.Sprintf("%3d", cell.Day)
		switch {
		case cell.IsToday:
			label = highlightStyle.Bold(true).Render(label) + "•"
		case cell.HasActivity:
			label = successStyle.Render(label) + "·"
		default:
			label = mutedStyle.Render(label) + " "
		}
		row = append(row, label)

		if len(row) == 7 {
			rows = append(rows, "  "+strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, "  "+strings.Join(row, " "))
	}

	weekHeader := mutedStyle.Render("  " + strings.Join([]string{" Mo ", " Tu ", " We ", " Th ", " Fr ", " Sa ", " Su "}, " "))
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{weekHeader}, rows...)...)
}
