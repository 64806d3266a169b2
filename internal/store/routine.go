package store

import (
	"fmt"
	"strings"
)

// AddRoutine appends a new unchecked task to the daily checklist.
func (s *Store) AddRoutine(text string) (*RoutineTask, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "task", Reason: "must not be empty"}
	}

	s.mu.Lock()
	task := &RoutineTask{ID: s.nextRoutineID, Task: text}
	s.routines = append(s.routines, task)
	s.nextRoutineID++

	if err := s.persistLocked(); err != nil {
		s.routines = s.routines[:len(s.routines)-1]
		s.nextRoutineID--
		s.mu.Unlock()
		return nil, fmt.Errorf("persist routine: %w", err)
	}
	out := *task
	s.mu.Unlock()

	s.notify()
	return &out, nil
}

// ToggleRoutine flips the done flag of the task with the given id.
func (s *Store) ToggleRoutine(id int64) error {
	s.mu.Lock()
	var task *RoutineTask
	for _, r := range s.routines {
		if r.ID == id {
			task = r
			break
		}
	}
	if task == nil {
		s.mu.Unlock()
		return fmt.Errorf("toggle routine %d: %w", id, ErrNotFound)
	}

	task.Done = !task.Done
	if err := s.persistLocked(); err != nil {
		task.Done = !task.Done
		s.mu.Unlock()
		return fmt.Errorf("persist routine: %w", err)
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// RemoveRoutine deletes a task by id. Removing an absent id is a no-op.
func (s *Store) RemoveRoutine(id int64) error {
	s.mu.Lock()
	idx := -1
	for i, r := range s.routines {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	removed := s.routines[idx]
	s.routines = append(s.routines[:idx], s.routines[idx+1:]...)

	if err := s.persistLocked(); err != nil {
		s.routines = append(s.routines[:idx], append([]*RoutineTask{removed}, s.routines[idx:]...)...)
		s.mu.Unlock()
		return fmt.Errorf("persist routine delete: %w", err)
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// ListRoutine returns a snapshot of the checklist in insertion order.
func (s *Store) ListRoutine() []RoutineTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []RoutineTask
	for _, r := range s.routines {
		out = append(out, *r)
	}
	return out
}
