package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/yeonwoo-dev/studyr/internal/storage"
	"github.com/yeonwoo-dev/studyr/internal/store"
)

func ToCSV(plans []store.PlanEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Subject", "Content", "Goal (h)", "Actual (h)", "Achievement", "Status"}); err != nil {
		return err
	}

	for _, p := range plans {
		row := []string{
			fmt.Sprintf("%d", p.ID),
			p.Date.Format(storage.DateLayout),
			p.Subject,
			p.Content,
			formatHours(p.GoalHours),
			formatHours(p.ActualHours),
			p.Achievement.String(),
			p.Status.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.1f", h)
}
