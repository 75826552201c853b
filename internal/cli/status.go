package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sadopc/streakr/internal/store"
	"github.com/spf13/cobra"
)

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's checklist, streaks and averages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(func(tr *store.Tracker) error {
				printStatus(cmd.OutOrStdout(), tr, a.now())
				return nil
			})
		},
	}
}

func printStatus(w io.Writer, tr *store.Tracker, now time.Time) {
	sum := tr.Tasks.Summary()
	fmt.Fprintf(w, "%s  %d/%d tasks (%d%%)\n\n", now.Format("Mon Jan 2, 2006"), sum.CompletedCount, sum.TotalTasks, sum.CompletionPercentage)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "TASK", "DATA")
	for _, task := range tr.Tasks.Tasks() {
		check := "[ ]"
		if task.Completed {
			check = "[x]"
		}
		t.Row(check, task.ID, task.Title, taskData(task))
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Streak: %d current, %d longest\n", tr.Stats.CurrentStreak(), tr.Stats.LongestStreak())
	fmt.Fprintf(w, "Average: %d%% this week, %d%% this month\n",
		store.AverageCompletion(tr.Stats.Weekly()), store.AverageCompletion(tr.Stats.Monthly()))

	if e, ok := tr.Journal.Today(); ok {
		fmt.Fprintf(w, "Journal: %s mood\n", e.Mood)
	} else {
		fmt.Fprintln(w, "Journal: no entry today")
	}
}

func taskData(t store.Task) string {
	switch t.Type {
	case store.TaskExercise:
		return fmt.Sprintf("%.1f mi, %d min", t.Data.DistanceOr0(), t.Data.DurationOr0())
	case store.TaskCalories:
		return fmt.Sprintf("%d kcal", t.Data.CaloriesOr0())
	}
	return ""
}
