package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/streakr/internal/store"
)

func StatsToCSV(records []store.DailyStats, path string) error {
	header := []string{"Date", "Completion Rate (%)", "Tasks Completed", "Total Tasks", "Distance (mi)", "Duration (min)", "Duration", "Calories"}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Date,
			strconv.Itoa(r.CompletionRate),
			strconv.Itoa(r.TasksCompleted),
			strconv.Itoa(r.TotalTasks),
			strconv.FormatFloat(r.TotalDistance, 'f', -1, 64),
			strconv.Itoa(r.TotalDuration),
			formatDuration(r.TotalDuration),
			strconv.Itoa(r.TotalCalories),
		})
	}
	return writeCSV(path, header, rows)
}

func JournalToCSV(entries []store.JournalEntry, path string) error {
	header := []string{"ID", "Date", "Mood", "Content", "Highlights"}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.Date.Local().Format(time.RFC3339),
			string(e.Mood),
			e.Content,
			strings.Join(e.Highlights, "; "),
		})
	}
	return writeCSV(path, header, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// formatDuration renders minutes as HH:MM.
func formatDuration(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
