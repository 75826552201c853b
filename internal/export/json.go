package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/streakr/internal/store"
)

type jsonExport[T any] struct {
	ExportedAt string `json:"exported_at"`
	Count      int    `json:"count"`
	Records    []T    `json:"records"`
}

type jsonStats struct {
	Date           string  `json:"date"`
	CompletionRate int     `json:"completion_rate"`
	TasksCompleted int     `json:"tasks_completed"`
	TotalTasks     int     `json:"total_tasks"`
	DistanceMiles  float64 `json:"distance_miles"`
	DurationMin    int     `json:"duration_minutes"`
	Duration       string  `json:"duration"`
	Calories       int     `json:"calories"`
}

type jsonJournal struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"`
	Mood       string   `json:"mood"`
	Content    string   `json:"content"`
	Highlights []string `json:"highlights,omitempty"`
}

func StatsToJSON(records []store.DailyStats, path string) error {
	out := newExport[jsonStats](len(records))
	for _, r := range records {
		out.Records = append(out.Records, jsonStats{
			Date:           r.Date,
			CompletionRate: r.CompletionRate,
			TasksCompleted: r.TasksCompleted,
			TotalTasks:     r.TotalTasks,
			DistanceMiles:  r.TotalDistance,
			DurationMin:    r.TotalDuration,
			Duration:       formatDuration(r.TotalDuration),
			Calories:       r.TotalCalories,
		})
	}
	return writeJSON(path, out)
}

func JournalToJSON(entries []store.JournalEntry, path string) error {
	out := newExport[jsonJournal](len(entries))
	for _, e := range entries {
		out.Records = append(out.Records, jsonJournal{
			ID:         e.ID,
			Date:       e.Date.Local().Format(time.RFC3339),
			Mood:       string(e.Mood),
			Content:    e.Content,
			Highlights: e.Highlights,
		})
	}
	return writeJSON(path, out)
}

func newExport[T any](count int) jsonExport[T] {
	return jsonExport[T]{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      count,
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
