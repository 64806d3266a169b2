// Package stats computes derived views over a plan snapshot. Every
// function is a pure read-only consumer: it recomputes from the entries
// it is handed and keeps no state of its own.
package stats

import (
	"time"

	"github.com/yeonwoo-dev/studyr/internal/store"
)

// DayCell is one day of the month view.
type DayCell struct {
	Day         int
	HasActivity bool
	IsToday     bool
}

// DailyScore averages the achievement scores of completed entries on the
// given date (perfect=3, partial=2, poor=1). ok is false when the date
// has no completed entries; "no data" is distinct from a zero score.
func DailyScore(plans []store.PlanEntry, date time.Time) (score float64, ok bool) {
	day := store.DateOf(date)
	sum, n := 0, 0
	for _, p := range plans {
		if p.Status != store.StatusCompleted || !p.Date.Equal(day) {
			continue
		}
		sum += p.Achievement.Score()
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// PeriodTotal sums actual hours of completed entries with dates in
// [start, end] inclusive.
func PeriodTotal(plans []store.PlanEntry, start, end time.Time) float64 {
	from, to := store.DateOf(start), store.DateOf(end)
	total := 0.0
	for _, p := range plans {
		if p.Status != store.StatusCompleted {
			continue
		}
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		total += p.ActualHours
	}
	return total
}

// SubjectBreakdown sums actual hours per subject over all completed
// entries, one key per distinct subject.
func SubjectBreakdown(plans []store.PlanEntry) map[string]float64 {
	out := map[string]float64{}
	for _, p := range plans {
		if p.Status != store.StatusCompleted {
			continue
		}
		out[p.Subject] += p.ActualHours
	}
	return out
}

// CalendarGrid builds the month view: exactly one cell per day of the
// given month, flagging days with any plan activity and today.
func CalendarGrid(plans []store.PlanEntry, year int, month time.Month, today time.Time) []DayCell {
	active := map[int]bool{}
	for _, p := range plans {
		if p.Date.Year() == year && p.Date.Month() == month {
			active[p.Date.Day()] = true
		}
	}

	now := store.DateOf(today)
	// Day 0 of the next month is the last day of this one.
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]DayCell, 0, days)
	for d := 1; d <= days; d++ {
		cells = append(cells, DayCell{
			Day:         d,
			HasActivity: active[d],
			IsToday:     now.Year() == year && now.Month() == month && now.Day() == d,
		})
	}
	return cells
}
