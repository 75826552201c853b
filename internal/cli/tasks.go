package cli

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sadopc/streakr/internal/store"
	"github.com/spf13/cobra"
)

var validate = validator.New()

func taskIDs() []string {
	var ids []string
	for _, t := range store.Catalog() {
		ids = append(ids, t.ID)
	}
	return ids
}

func newToggleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "toggle <task-id>",
		Short:     "Mark a task done, or undone if it already is",
		Args:      cobra.ExactArgs(1),
		ValidArgs: taskIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return a.withTracker(func(tr *store.Tracker) error {
				sum, found, err := tr.Toggle(id)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("unknown task %q", id)
				}
				task, _ := tr.Tasks.Get(id)
				state := "not done"
				if task.Completed {
					state = "done"
				}
				a.log.Infow("task toggled", "task", id, "completed", task.Completed)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d/%d, %d%%)\n", id, state, sum.CompletedCount, sum.TotalTasks, sum.CompletionPercentage)
				return nil
			})
		},
	}
}

// logInput is the set of data flags given on the command line.
type logInput struct {
	Distance *float64 `validate:"omitempty,gte=0"`
	Duration *int     `validate:"omitempty,gte=0"`
	Calories *int     `validate:"omitempty,gte=0"`
}

func newLogCommand(a *app) *cobra.Command {
	var (
		distance float64
		duration int
		calories int
	)

	cmd := &cobra.Command{
		Use:       "log <task-id>",
		Short:     "Record distance, duration or calories for a task",
		Example:   "  streakr log cycle-10 --distance 10.2 --duration 52\n  streakr log calories --calories 1850",
		Args:      cobra.ExactArgs(1),
		ValidArgs: taskIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in logInput
			if cmd.Flags().Changed("distance") {
				in.Distance = &distance
			}
			if cmd.Flags().Changed("duration") {
				in.Duration = &duration
			}
			if cmd.Flags().Changed("calories") {
				in.Calories = &calories
			}
			if in.Distance == nil && in.Duration == nil && in.Calories == nil {
				return errors.New("nothing to log: pass --distance, --duration or --calories")
			}
			if err := validate.Struct(&in); err != nil {
				return fmt.Errorf("invalid task data: %w", err)
			}

			id := args[0]
			return a.withTracker(func(tr *store.Tracker) error {
				sum, found, err := tr.UpdateTaskData(id, store.TaskData{
					Distance: in.Distance,
					Duration: in.Duration,
					Calories: in.Calories,
				})
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("unknown task %q", id)
				}
				task, _ := tr.Tasks.Get(id)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, taskData(task))
				fmt.Fprintf(cmd.OutOrStdout(), "today: %.1f mi, %d min, %d kcal\n", sum.TotalDistance, sum.TotalDuration, sum.TotalCalories)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&distance, "distance", 0, "distance in miles")
	cmd.Flags().IntVar(&duration, "duration", 0, "duration in minutes")
	cmd.Flags().IntVar(&calories, "calories", 0, "calories eaten today")
	return cmd
}
