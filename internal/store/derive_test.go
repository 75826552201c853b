package store

import "testing"

func TestSummarizeCompletion(t *testing.T) {
	tasks := Catalog()
	tasks[0].Completed = true
	tasks[3].Completed = true
	tasks[10].Completed = true

	sum := Summarize(tasks)
	if sum.CompletedCount != 3 || sum.TotalTasks != 11 {
		t.Fatalf("unexpected counts: %+v", sum)
	}
	if sum.CompletionPercentage != 27 {
		t.Fatalf("round(100*3/11) = 27, got %d", sum.CompletionPercentage)
	}
}

func TestSummarizeRoundsHalfUp(t *testing.T) {
	tasks := []Task{{ID: "a", Completed: true}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}, {ID: "f"}, {ID: "g"}, {ID: "h"}}
	// 1/8 = 12.5%
	if got := Summarize(tasks).CompletionPercentage; got != 13 {
		t.Fatalf("expected 13, got %d", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	if sum.CompletionPercentage != 0 || sum.TotalTasks != 0 {
		t.Fatalf("empty list should summarise to zero: %+v", sum)
	}
}

func TestSummarizeExerciseTotals(t *testing.T) {
	tasks := []Task{
		{ID: "a", Type: TaskExercise, Completed: true, Data: &TaskData{Distance: Float(10.5), Duration: Int(50)}},
		{ID: "b", Type: TaskExercise, Completed: true, Data: &TaskData{Distance: Float(1)}},
		{ID: "c", Type: TaskExercise, Completed: false, Data: &TaskData{Distance: Float(5), Duration: Int(30)}},
		{ID: "d", Type: TaskExercise, Completed: true},
	}
	sum := Summarize(tasks)
	if sum.TotalDistance != 11.5 {
		t.Fatalf("expected 11.5 miles from completed tasks, got %v", sum.TotalDistance)
	}
	if sum.TotalDuration != 50 {
		t.Fatalf("expected 50 minutes, got %d", sum.TotalDuration)
	}
}

func TestSummarizeCaloriesIgnoresCompletion(t *testing.T) {
	tasks := []Task{
		{ID: "cal", Type: TaskCalories, Data: &TaskData{Calories: Int(1900)}},
		{ID: "cal2", Type: TaskCalories, Data: &TaskData{Calories: Int(50)}},
	}
	if got := Summarize(tasks).TotalCalories; got != 1900 {
		t.Fatalf("expected the first calories task's value, got %d", got)
	}

	tasks[0].Data = nil
	if got := Summarize(tasks).TotalCalories; got != 0 {
		t.Fatalf("missing calorie data counts as 0, got %d", got)
	}
}

func TestSummaryStats(t *testing.T) {
	sum := Summary{CompletedCount: 4, TotalTasks: 11, CompletionPercentage: 36, TotalDistance: 3.5, TotalDuration: 20, TotalCalories: 1500}
	d := sum.Stats("2026-10-16T12:00:00.000Z")
	want := DailyStats{Date: "2026-10-16T12:00:00.000Z", CompletionRate: 36, TotalDistance: 3.5, TotalDuration: 20, TotalCalories: 1500, TasksCompleted: 4, TotalTasks: 11}
	if d != want {
		t.Fatalf("got %+v, want %+v", d, want)
	}
}

func TestSumTotals(t *testing.T) {
	records := []DailyStats{
		{TotalDistance: 10, TotalDuration: 45, TotalCalories: 2000},
		{TotalDistance: 5.5, TotalDuration: 25, TotalCalories: 1800},
	}
	got := SumTotals(records)
	if got.Distance != 15.5 || got.Duration != 70 || got.Calories != 3800 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if SumTotals(nil) != (Totals{}) {
		t.Fatal("no records should sum to zero")
	}
}

func TestAverageCompletion(t *testing.T) {
	if AverageCompletion(nil) != 0 {
		t.Fatal("empty window averages to 0")
	}
	records := []DailyStats{{CompletionRate: 90}, {CompletionRate: 85}, {CompletionRate: 60}}
	// 235 / 3 = 78.33
	if got := AverageCompletion(records); got != 78 {
		t.Fatalf("expected 78, got %d", got)
	}
	records = append(records, DailyStats{CompletionRate: 95})
	// 330 / 4 = 82.5
	if got := AverageCompletion(records); got != 83 {
		t.Fatalf("expected 83, got %d", got)
	}
}
