package store

import (
	"fmt"
	"time"
)

// CreatePlan appends a new plan entry in the Planned state and persists.
// The assigned id is stable across process restarts.
func (s *Store) CreatePlan(date time.Time, subject, content string, goalHours float64) (*PlanEntry, error) {
	if goalHours < 0 || goalHours > 24 {
		return nil, &ValidationError{Field: "goal hours", Reason: "must be between 0 and 24"}
	}

	s.mu.Lock()
	entry := &PlanEntry{
		ID:        s.nextPlanID,
		Date:      DateOf(date),
		Subject:   subject,
		Content:   content,
		GoalHours: goalHours,
		Status:    StatusPlanned,
		CreatedAt: s.clock.Now().UTC(),
	}
	s.plans = append(s.plans, entry)
	s.nextPlanID++

	if err := s.persistLocked(); err != nil {
		s.plans = s.plans[:len(s.plans)-1]
		s.nextPlanID--
		s.mu.Unlock()
		return nil, fmt.Errorf("persist plan: %w", err)
	}
	out := *entry
	s.mu.Unlock()

	s.notify()
	return &out, nil
}

// CompletePlan transitions a planned entry to Completed exactly once,
// recording the actual hours and achievement atomically.
func (s *Store) CompletePlan(id int64, actualHours float64, achievement Achievement) (*PlanEntry, error) {
	if actualHours < 0 || actualHours > 24 {
		return nil, &ValidationError{Field: "actual hours", Reason: "must be between 0 and 24"}
	}
	if achievement == AchievementUnset {
		return nil, &ValidationError{Field: "achievement", Reason: "must be set on completion"}
	}
	if _, ok := achievementLabels[achievement]; !ok {
		return nil, &ValidationError{Field: "achievement", Reason: "unknown value"}
	}

	s.mu.Lock()
	entry := s.findPlanLocked(id)
	if entry == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("complete plan %d: %w", id, ErrNotFound)
	}
	if entry.Status == StatusCompleted {
		s.mu.Unlock()
		return nil, fmt.Errorf("complete plan %d: already completed: %w", id, ErrInvalidState)
	}

	prev := *entry
	entry.ActualHours = actualHours
	entry.Achievement = achievement
	entry.Status = StatusCompleted

	if err := s.persistLocked(); err != nil {
		*entry = prev
		s.mu.Unlock()
		return nil, fmt.Errorf("persist plan: %w", err)
	}
	out := *entry
	s.mu.Unlock()

	s.notify()
	return &out, nil
}

// DeletePlan removes an entry by id. Deleting an absent id is a no-op;
// addressing is always by identity, never by list position.
func (s *Store) DeletePlan(id int64) error {
	s.mu.Lock()
	idx := -1
	for i, p := range s.plans {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	removed := s.plans[idx]
	s.plans = append(s.plans[:idx], s.plans[idx+1:]...)

	if err := s.persistLocked(); err != nil {
		s.plans = append(s.plans[:idx], append([]*PlanEntry{removed}, s.plans[idx:]...)...)
		s.mu.Unlock()
		return fmt.Errorf("persist plan delete: %w", err)
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// ListPlans returns a snapshot of matching entries in creation order.
// The returned entries are copies; later store mutations do not affect them.
func (s *Store) ListPlans(f PlanFilter) []PlanEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []PlanEntry
	for _, p := range s.plans {
		if f.From != nil && p.Date.Before(DateOf(*f.From)) {
			continue
		}
		if f.To != nil && p.Date.After(DateOf(*f.To)) {
			continue
		}
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func (s *Store) findPlanLocked(id int64) *PlanEntry {
	for _, p := range s.plans {
		if p.ID == id {
			return p
		}
	}
	return nil
}
