package store

import (
	"fmt"

	"github.com/yeonwoo-dev/studyr/internal/storage"
)

const wallClockLayout = "15:04"

// RecordWake stamps today's wake time with the current wall clock.
// A second call on the same day overwrites the first.
func (s *Store) RecordWake() (string, error) {
	return s.recordSleepField(true)
}

// RecordSleep stamps today's sleep time with the current wall clock.
func (s *Store) RecordSleep() (string, error) {
	return s.recordSleepField(false)
}

func (s *Store) recordSleepField(wake bool) (string, error) {
	now := s.clock.Now()
	key := now.UTC().Format(storage.DateLayout)
	stamp := now.UTC().Format(wallClockLayout)

	s.mu.Lock()
	prev, existed := s.sleep[key]
	rec := prev
	if wake {
		rec.Wake = stamp
	} else {
		rec.Sleep = stamp
	}
	s.sleep[key] = rec

	if err := s.persistLocked(); err != nil {
		if existed {
			s.sleep[key] = prev
		} else {
			delete(s.sleep, key)
		}
		s.mu.Unlock()
		return "", fmt.Errorf("persist sleep log: %w", err)
	}
	s.mu.Unlock()

	s.notify()
	return stamp, nil
}

// SleepLog returns a copy of the sleep log keyed by ISO calendar date.
func (s *Store) SleepLog() map[string]SleepTimes {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]SleepTimes, len(s.sleep))
	for k, v := range s.sleep {
		out[k] = v
	}
	return out
}
