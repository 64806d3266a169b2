package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestGateway(t *testing.T) *FileGateway {
	t.Helper()
	return NewFileGateway(filepath.Join(t.TempDir(), "studyr.json"))
}

func sampleSnapshot() Snapshot {
	return Snapshot{
		Plans: []PlanRecord{
			{
				ID:          1,
				Date:        "2025-03-10",
				Subject:     "Math",
				Content:     "Integrals",
				GoalHours:   2,
				ActualHours: 1.5,
				Achievement: "partial",
				Status:      "completed",
				CreatedAt:   "2025-03-10T09:00:00Z",
			},
			{
				ID:          2,
				Date:        "2025-03-11",
				Subject:     "English",
				Content:     "Vocabulary",
				GoalHours:   1,
				ActualHours: 0,
				Achievement: "unset",
				Status:      "planned",
				CreatedAt:   "2025-03-11T08:30:00Z",
			},
		},
		Routines: []RoutineRecord{
			{ID: 1, Task: "Morning stretch", Done: true},
			{ID: 2, Task: "Review notes", Done: false},
		},
		SleepLog: map[string]SleepRecord{
			"2025-03-10": {Wake: "07:10", Sleep: "23:45"},
			"2025-03-11": {Wake: "07:05"},
		},
	}
}

// ============================================================
// Load
// ============================================================

func TestLoadMissingFile(t *testing.T) {
	g := newTestGateway(t)

	snap, err := g.Load()
	if err != nil {
		t.Fatalf("missing file should yield empty snapshot, got error: %v", err)
	}
	if len(snap.Plans) != 0 || len(snap.Routines) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if snap.SleepLog == nil {
		t.Fatal("sleep log map should be initialized")
	}
}

func TestLoadCorruptJSON(t *testing.T) {
	g := newTestGateway(t)
	os.MkdirAll(filepath.Dir(g.Path()), 0o755)
	os.WriteFile(g.Path(), []byte("{not json"), 0o644)

	_, err := g.Load()
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected CorruptError, got %v", err)
	}
	if corrupt.Path != g.Path() {
		t.Fatalf("CorruptError path = %q, want %q", corrupt.Path, g.Path())
	}
}

func TestLoadBadDate(t *testing.T) {
	g := newTestGateway(t)
	snap := sampleSnapshot()
	snap.Plans[0].Date = "10/03/2025"
	if err := g.Save(snap); err != nil {
		t.Fatal(err)
	}

	_, err := g.Load()
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected CorruptError for bad date, got %v", err)
	}
}

func TestLoadBadStatus(t *testing.T) {
	g := newTestGateway(t)
	snap := sampleSnapshot()
	snap.Plans[0].Status = "done"
	g.Save(snap)

	_, err := g.Load()
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected CorruptError for unknown status, got %v", err)
	}
}

func TestLoadBadAchievement(t *testing.T) {
	g := newTestGateway(t)
	snap := sampleSnapshot()
	snap.Plans[0].Achievement = "great"
	g.Save(snap)

	_, err := g.Load()
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected CorruptError for unknown achievement, got %v", err)
	}
}

func TestLoadBadSleepKey(t *testing.T) {
	g := newTestGateway(t)
	snap := sampleSnapshot()
	snap.SleepLog["yesterday"] = SleepRecord{Wake: "07:00"}
	g.Save(snap)

	_, err := g.Load()
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected CorruptError for bad sleep key, got %v", err)
	}
}

// ============================================================
// Save
// ============================================================

func TestSaveLoadRoundTrip(t *testing.T) {
	g := newTestGateway(t)
	snap := sampleSnapshot()

	if err := g.Save(snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := g.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(snap, loaded) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", snap, loaded)
	}
}

func TestSaveEmptyRoundTrip(t *testing.T) {
	g := newTestGateway(t)
	if err := g.Save(Empty()); err != nil {
		t.Fatal(err)
	}
	loaded, err := g.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Plans) != 0 || len(loaded.Routines) != 0 || len(loaded.SleepLog) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", loaded)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "studyr.json")
	g := NewFileGateway(path)

	if err := g.Save(sampleSnapshot()); err != nil {
		t.Fatalf("save into missing directory: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("state file not created: %v", err)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	g := newTestGateway(t)
	if err := g.Save(sampleSnapshot()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(g.Path() + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("temp file should not survive a successful save")
	}
}

func TestSaveOverwrites(t *testing.T) {
	g := newTestGateway(t)
	g.Save(sampleSnapshot())

	second := Empty()
	second.Routines = []RoutineRecord{{ID: 9, Task: "Only task", Done: false}}
	if err := g.Save(second); err != nil {
		t.Fatal(err)
	}

	loaded, err := g.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Plans) != 0 {
		t.Fatal("previous plans should be gone after overwrite")
	}
	if len(loaded.Routines) != 1 || loaded.Routines[0].Task != "Only task" {
		t.Fatalf("unexpected routines: %+v", loaded.Routines)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}
