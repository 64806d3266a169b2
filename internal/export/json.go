package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/yeonwoo-dev/studyr/internal/storage"
	"github.com/yeonwoo-dev/studyr/internal/store"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Plans      []jsonPlan `json:"plans"`
}

type jsonPlan struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Subject     string  `json:"subject"`
	Content     string  `json:"content,omitempty"`
	GoalHours   float64 `json:"goal_hours"`
	ActualHours float64 `json:"actual_hours"`
	Achievement string  `json:"achievement"`
	Status      string  `json:"status"`
}

func ToJSON(plans []store.PlanEntry, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(plans),
	}

	for _, p := range plans {
		export.Plans = append(export.Plans, jsonPlan{
			ID:          p.ID,
			Date:        p.Date.Format(storage.DateLayout),
			Subject:     p.Subject,
			Content:     p.Content,
			GoalHours:   p.GoalHours,
			ActualHours: p.ActualHours,
			Achievement: p.Achievement.String(),
			Status:      p.Status.String(),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
