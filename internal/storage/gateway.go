package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DateLayout is the calendar-day encoding used throughout the state file.
const DateLayout = "2006-01-02"

// Snapshot is the complete persisted state: plans, routines and sleep log.
// It is a plain serialization form; the store converts it to and from its
// in-memory entities.
type Snapshot struct {
	Plans    []PlanRecord           `json:"plans"`
	Routines []RoutineRecord        `json:"routines"`
	SleepLog map[string]SleepRecord `json:"sleep_log"`
}

type PlanRecord struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Subject     string  `json:"subject"`
	Content     string  `json:"content"`
	GoalHours   float64 `json:"goal_hours"`
	ActualHours float64 `json:"actual_hours"`
	Achievement string  `json:"achievement"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

type RoutineRecord struct {
	ID   int64  `json:"id"`
	Task string `json:"task"`
	Done bool   `json:"done"`
}

type SleepRecord struct {
	Wake  string `json:"wake,omitempty"`
	Sleep string `json:"sleep,omitempty"`
}

// Empty returns a valid snapshot with no data.
func Empty() Snapshot {
	return Snapshot{SleepLog: map[string]SleepRecord{}}
}

// CorruptError indicates the state file exists but cannot be decoded.
// Callers decide whether to halt or start fresh; it is never swallowed here.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt state file %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// FileGateway persists snapshots as a single JSON document on disk.
type FileGateway struct {
	path string
}

func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

func (g *FileGateway) Path() string { return g.path }

// Load reads the snapshot from disk. A missing file yields an empty
// snapshot; a file that cannot be parsed or validated yields CorruptError.
func (g *FileGateway) Load() (Snapshot, error) {
	data, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Empty(), nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read state file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, &CorruptError{Path: g.path, Err: err}
	}
	if err := snap.validate(); err != nil {
		return Snapshot{}, &CorruptError{Path: g.path, Err: err}
	}
	if snap.SleepLog == nil {
		snap.SleepLog = map[string]SleepRecord{}
	}
	return snap, nil
}

// Save writes the snapshot atomically: the document is written to a
// temp file in the same directory and renamed over the previous one, so
// an interrupted write never leaves a half-written state file behind.
func (g *FileGateway) Save(snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := os.Rename(tmp, g.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (s Snapshot) validate() error {
	for _, p := range s.Plans {
		if _, err := time.Parse(DateLayout, p.Date); err != nil {
			return fmt.Errorf("plan %d: bad date %q", p.ID, p.Date)
		}
		if _, err := time.Parse(time.RFC3339, p.CreatedAt); err != nil {
			return fmt.Errorf("plan %d: bad created_at %q", p.ID, p.CreatedAt)
		}
		switch p.Status {
		case "planned", "completed":
		default:
			return fmt.Errorf("plan %d: unknown status %q", p.ID, p.Status)
		}
		switch p.Achievement {
		case "unset", "perfect", "partial", "poor":
		default:
			return fmt.Errorf("plan %d: unknown achievement %q", p.ID, p.Achievement)
		}
	}
	for date := range s.SleepLog {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return fmt.Errorf("sleep log: bad date key %q", date)
		}
	}
	return nil
}

// DefaultPath returns ~/.config/studyr/studyr.json
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studyr", "studyr.json"), nil
}
