package store

import "time"

// Status is the lifecycle state of a plan entry.
type Status int

const (
	StatusPlanned Status = iota
	StatusCompleted
)

func (s Status) String() string {
	if s == StatusCompleted {
		return "completed"
	}
	return "planned"
}

// ParseStatus decodes the persisted status label.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "planned":
		return StatusPlanned, true
	case "completed":
		return StatusCompleted, true
	}
	return StatusPlanned, false
}

// Achievement is the qualitative outcome rating of a completed plan.
type Achievement int

const (
	AchievementUnset Achievement = iota
	AchievementPerfect
	AchievementPartial
	AchievementPoor
)

var achievementLabels = map[Achievement]string{
	AchievementUnset:   "unset",
	AchievementPerfect: "perfect",
	AchievementPartial: "partial",
	AchievementPoor:    "poor",
}

func (a Achievement) String() string {
	if l, ok := achievementLabels[a]; ok {
		return l
	}
	return "unset"
}

// Score maps achievements to the fixed daily-score weights.
// Unset scores 0 and never contributes to a daily score.
func (a Achievement) Score() int {
	switch a {
	case AchievementPerfect:
		return 3
	case AchievementPartial:
		return 2
	case AchievementPoor:
		return 1
	}
	return 0
}

// ParseAchievement decodes the persisted achievement label.
func ParseAchievement(s string) (Achievement, bool) {
	for a, l := range achievementLabels {
		if l == s {
			return a, true
		}
	}
	return AchievementUnset, false
}

// PlanEntry is one unit of intended-then-executed study.
type PlanEntry struct {
	ID          int64
	Date        time.Time // calendar day, midnight UTC
	Subject     string
	Content     string
	GoalHours   float64
	ActualHours float64
	Achievement Achievement
	Status      Status
	CreatedAt   time.Time
}

// RoutineTask is one toggleable item on the daily checklist.
type RoutineTask struct {
	ID   int64
	Task string
	Done bool
}

// SleepTimes holds the wake and sleep check-ins for one day, as
// "HH:MM" wall-clock strings. Later check-ins overwrite earlier ones.
type SleepTimes struct {
	Wake  string
	Sleep string
}

// PlanFilter narrows ListPlans results.
type PlanFilter struct {
	From   *time.Time
	To     *time.Time
	Status *Status
}

// DateOf truncates a timestamp to its calendar day at midnight UTC.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
