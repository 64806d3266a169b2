package tui

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/yeonwoo-dev/studyr/internal/timer"
)

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{25 * time.Minute, "25:00"},
		{90 * time.Second, "01:30"},
		{59 * time.Second, "00:59"},
		{0, "00:00"},
		{-3 * time.Second, "00:00"},
		{120 * time.Minute, "120:00"},
	}
	for _, tt := range tests {
		if got := formatCountdown(tt.d); got != tt.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		h    float64
		want string
	}{
		{0, "0.0h"},
		{1.5, "1.5h"},
		{2, "2.0h"},
		{10.25, "10.2h"},
	}
	for _, tt := range tests {
		if got := formatHours(tt.h); got != tt.want {
			t.Errorf("formatHours(%v) = %q, want %q", tt.h, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short, 10) = %q", got)
	}
	if got := truncate("a very long subject name", 10); got != "a very lo…" {
		t.Errorf("truncate long = %q", got)
	}
	if got := truncate("수학 공부하기", 5); got != "수학 공…" {
		t.Errorf("truncate multibyte = %q", got)
	}
}

func TestQuoteOfDayIsStablePerDay(t *testing.T) {
	morning := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)

	if quoteOfDay(morning) != quoteOfDay(evening) {
		t.Fatal("quote should not change within a day")
	}

	// Consecutive days walk the list.
	next := morning.AddDate(0, 0, 1)
	if quoteOfDay(morning) == quoteOfDay(next) {
		t.Fatal("consecutive days should pick different quotes")
	}
}

func TestEventStatus(t *testing.T) {
	now := time.Now()
	tests := []struct {
		kind timer.EventKind
		want string
	}{
		{timer.FocusCompleted, "Focus phase complete, break time! \a"},
		{timer.CycleCompleted, "Cycle complete, well done! \a"},
		{timer.Cancelled, "Timer cancelled"},
	}
	for _, tt := range tests {
		if got := eventStatus(timer.Event{Kind: tt.kind, At: now}); got != tt.want {
			t.Errorf("eventStatus(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestStatsMonthOffset(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC))
	m := newStatsModel(nil, clock)

	if got := m.month(); !got.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("current month = %v", got)
	}

	m.offset = 2
	if got := m.month(); !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("two months back = %v", got)
	}
}
