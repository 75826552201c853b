package store

import "math"

// Summarize derives the completion figures and exercise/calorie totals from
// a task list. Distance and duration count completed exercise tasks only;
// calories come from the first calories task whether or not it is checked.
func Summarize(tasks []Task) Summary {
	var sum Summary
	sum.TotalTasks = len(tasks)

	caloriesSeen := false
	for _, t := range tasks {
		if t.Completed {
			sum.CompletedCount++
		}
		switch t.Type {
		case TaskExercise:
			if t.Completed {
				sum.TotalDistance += t.Data.DistanceOr0()
				sum.TotalDuration += t.Data.DurationOr0()
			}
		case TaskCalories:
			if !caloriesSeen {
				sum.TotalCalories = t.Data.CaloriesOr0()
				caloriesSeen = true
			}
		}
	}

	if sum.TotalTasks > 0 {
		sum.CompletionPercentage = roundHalfUp(100 * float64(sum.CompletedCount) / float64(sum.TotalTasks))
	}
	return sum
}

// Stats turns the summary into the record written under date.
func (s Summary) Stats(date string) DailyStats {
	return DailyStats{
		Date:           date,
		CompletionRate: s.CompletionPercentage,
		TotalDistance:  s.TotalDistance,
		TotalDuration:  s.TotalDuration,
		TotalCalories:  s.TotalCalories,
		TasksCompleted: s.CompletedCount,
		TotalTasks:     s.TotalTasks,
	}
}

// SumTotals adds up distance, duration and calories over records.
func SumTotals(records []DailyStats) Totals {
	var t Totals
	for _, r := range records {
		t.Distance += r.TotalDistance
		t.Duration += r.TotalDuration
		t.Calories += r.TotalCalories
	}
	return t
}

// AverageCompletion is the mean completion rate, rounded, or 0 with no records.
func AverageCompletion(records []DailyStats) int {
	if len(records) == 0 {
		return 0
	}
	total := 0
	for _, r := range records {
		total += r.CompletionRate
	}
	return roundHalfUp(float64(total) / float64(len(records)))
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
