package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/yeonwoo-dev/studyr/internal/storage"
	"github.com/yeonwoo-dev/studyr/internal/store"
)

var quotes = []string{
	"Today's effort builds tomorrow's self.",
	"If you give up now, this is where you stay.",
	"Studying never betrays you.",
	"Go slowly if you must, but never stop.",
}

// quoteOfDay picks a deterministic quote per calendar day.
func quoteOfDay(t time.Time) string {
	return quotes[t.YearDay()%len(quotes)]
}

type homeModel struct {
	store  *store.Store
	clock  clockwork.Clock
	width  int
	height int

	today store.SleepTimes
}

func newHomeModel(s *store.Store, clock clockwork.Clock) homeModel {
	return homeModel{store: s, clock: clock}
}

func (h *homeModel) setSize(w, hgt int) {
	h.width = w
	h.height = hgt
}

func (h homeModel) refresh() tea.Cmd {
	return func() tea.Msg {
		key := h.clock.Now().UTC().Format(storage.DateLayout)
		return sleepDataMsg{today: h.store.SleepLog()[key]}
	}
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sleepDataMsg:
		h.today = msg.today
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Wake):
			stamp, err := h.store.RecordWake()
			if err != nil {
				return h, errStatus(err)
			}
			h.today.Wake = stamp
			return h, func() tea.Msg {
				return statusMsg{text: "Wake time recorded: " + stamp}
			}
		case key.Matches(msg, keys.Sleep):
			stamp, err := h.store.RecordSleep()
			if err != nil {
				return h, errStatus(err)
			}
			h.today.Sleep = stamp
			return h, func() tea.Msg {
				return statusMsg{text: "Sleep time recorded: " + stamp}
			}
		}
	}
	return h, nil
}

func (h homeModel) view() string {
	w := h.width - 4

	quote := panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Quote of the day"),
		"",
		highlightStyle.Render(quoteOfDay(h.clock.Now())),
	))

	wake := mutedStyle.Render("not yet")
	if h.today.Wake != "" {
		wake = successStyle.Render(h.today.Wake)
	}
	sleep := mutedStyle.Render("not yet")
	if h.today.Sleep != "" {
		sleep = successStyle.Render(h.today.Sleep)
	}

	checkins := panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Today"),
		"",
		"  🌅 Wake:  "+wake,
		"  🌙 Sleep: "+sleep,
		"",
		mutedStyle.Render("  w: wake check-in  z: sleep check-in"),
	))

	return lipgloss.JoinVertical(lipgloss.Left, quote, checkins)
}
