package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yeonwoo-dev/studyr/internal/store"
)

func samplePlans() []store.PlanEntry {
	return []store.PlanEntry{
		{
			ID:          1,
			Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Subject:     "Math",
			Content:     "Integrals",
			GoalHours:   2,
			ActualHours: 1.5,
			Achievement: store.AchievementPartial,
			Status:      store.StatusCompleted,
		},
		{
			ID:        2,
			Date:      time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			Subject:   "English",
			GoalHours: 1,
			Status:    store.StatusPlanned,
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.csv")

	if err := ToCSV(samplePlans(), path); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][6] != "Achievement" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	first := rows[1]
	want := []string{"1", "2025-03-10", "Math", "Integrals", "2.0", "1.5", "partial", "completed"}
	for i := range want {
		if first[i] != want[i] {
			t.Errorf("row[%d] = %q, want %q", i, first[i], want[i])
		}
	}

	if rows[2][6] != "unset" || rows[2][7] != "planned" {
		t.Fatalf("planned row should carry unset achievement: %v", rows[2])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.csv")

	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.json")

	if err := ToJSON(samplePlans(), path); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		ExportedAt string `json:"exported_at"`
		Count      int    `json:"count"`
		Plans      []struct {
			ID          int64   `json:"id"`
			Date        string  `json:"date"`
			Subject     string  `json:"subject"`
			Content     string  `json:"content"`
			ActualHours float64 `json:"actual_hours"`
			Achievement string  `json:"achievement"`
			Status      string  `json:"status"`
		} `json:"plans"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("parse export: %v", err)
	}

	if out.Count != 2 || len(out.Plans) != 2 {
		t.Fatalf("count = %d, plans = %d", out.Count, len(out.Plans))
	}
	if _, err := time.Parse(time.RFC3339, out.ExportedAt); err != nil {
		t.Fatalf("exported_at not RFC3339: %q", out.ExportedAt)
	}

	p := out.Plans[0]
	if p.ID != 1 || p.Date != "2025-03-10" || p.Subject != "Math" {
		t.Fatalf("unexpected first plan: %+v", p)
	}
	if p.ActualHours != 1.5 || p.Achievement != "partial" || p.Status != "completed" {
		t.Fatalf("unexpected first plan: %+v", p)
	}
}
