package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/yeonwoo-dev/studyr/internal/storage"
)

// Gateway is the persistence contract the store writes through. Every
// mutation saves the full snapshot before returning, so in-memory and
// durable state are never observably divergent.
type Gateway interface {
	Load() (storage.Snapshot, error)
	Save(storage.Snapshot) error
}

// Store owns the plan entries, routine checklist and sleep log. It is
// the single application-state object; construct one and pass it around,
// there is no ambient global.
type Store struct {
	mu    sync.Mutex
	clock clockwork.Clock
	gw    Gateway

	plans    []*PlanEntry
	routines []*RoutineTask
	sleep    map[string]SleepTimes

	nextPlanID    int64
	nextRoutineID int64

	listeners []func()
}

// New loads the persisted snapshot through the gateway and builds the
// store from it. A corrupt state file is surfaced to the caller
// unchanged (wrapped storage.CorruptError); the caller picks the policy.
func New(gw Gateway, clock clockwork.Clock) (*Store, error) {
	snap, err := gw.Load()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	s := &Store{
		clock:         clock,
		gw:            gw,
		sleep:         map[string]SleepTimes{},
		nextPlanID:    1,
		nextRoutineID: 1,
	}

	for _, r := range snap.Plans {
		// Records were validated by the gateway on load.
		date, _ := time.Parse(storage.DateLayout, r.Date)
		created, _ := time.Parse(time.RFC3339, r.CreatedAt)
		status, _ := ParseStatus(r.Status)
		ach, _ := ParseAchievement(r.Achievement)
		s.plans = append(s.plans, &PlanEntry{
			ID:          r.ID,
			Date:        date,
			Subject:     r.Subject,
			Content:     r.Content,
			GoalHours:   r.GoalHours,
			ActualHours: r.ActualHours,
			Achievement: ach,
			Status:      status,
			CreatedAt:   created,
		})
		if r.ID >= s.nextPlanID {
			s.nextPlanID = r.ID + 1
		}
	}
	for _, r := range snap.Routines {
		s.routines = append(s.routines, &RoutineTask{ID: r.ID, Task: r.Task, Done: r.Done})
		if r.ID >= s.nextRoutineID {
			s.nextRoutineID = r.ID + 1
		}
	}
	for date, rec := range snap.SleepLog {
		s.sleep[date] = SleepTimes{Wake: rec.Wake, Sleep: rec.Sleep}
	}

	return s, nil
}

// OnChange registers a listener fired after a mutation has been applied
// and its persistence write has committed.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// persistLocked snapshots the current state and saves it. Callers hold
// the mutex and roll their mutation back if this fails.
func (s *Store) persistLocked() error {
	snap := storage.Empty()
	for _, p := range s.plans {
		snap.Plans = append(snap.Plans, storage.PlanRecord{
			ID:          p.ID,
			Date:        p.Date.Format(storage.DateLayout),
			Subject:     p.Subject,
			Content:     p.Content,
			GoalHours:   p.GoalHours,
			ActualHours: p.ActualHours,
			Achievement: p.Achievement.String(),
			Status:      p.Status.String(),
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, r := range s.routines {
		snap.Routines = append(snap.Routines, storage.RoutineRecord{ID: r.ID, Task: r.Task, Done: r.Done})
	}
	for date, rec := range s.sleep {
		snap.SleepLog[date] = storage.SleepRecord{Wake: rec.Wake, Sleep: rec.Sleep}
	}
	return s.gw.Save(snap)
}
