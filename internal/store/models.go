package store

import "time"

// Slot keys. Each store reads and writes only its own.
const (
	TasksKey     = "daily-tasks"
	LastResetKey = "last-reset-date"
	JournalKey   = "journal-entries"
	SettingsKey  = "app-settings"
	StatsKey     = "daily-stats"
)

type TaskType string

const (
	TaskSimple   TaskType = "simple"
	TaskExercise TaskType = "exercise"
	TaskCalories TaskType = "calories"
)

// TaskData holds the numeric sub-data of exercise and calories tasks.
// Nil fields are absent; in a patch they mean "leave unchanged".
type TaskData struct {
	Distance *float64 `json:"distance,omitempty"` // miles
	Duration *int     `json:"duration,omitempty"` // minutes
	Calories *int     `json:"calories,omitempty"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	TimeTarget  string    `json:"timeTarget,omitempty"`
	Type        TaskType  `json:"type"`
	Data        *TaskData `json:"data,omitempty"`
}

type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodBad   Mood = "bad"
)

var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodBad}

type JournalEntry struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Content    string    `json:"content"`
	Mood       Mood      `json:"mood"`
	Highlights []string  `json:"highlights"`
}

// EntryInput is a journal entry before it has been given an id.
type EntryInput struct {
	Date       time.Time
	Content    string `validate:"required"`
	Mood       Mood   `validate:"required,oneof=great good okay bad"`
	Highlights []string
}

// EntryPatch carries a partial journal update.
type EntryPatch struct {
	Date       *time.Time
	Content    *string
	Mood       *Mood
	Highlights []string // nil leaves highlights unchanged
}

// DailyStats is one derived snapshot, keyed by the exact Date string it was
// recorded under.
type DailyStats struct {
	Date           string  `json:"date"`
	CompletionRate int     `json:"completionRate"`
	TotalDistance  float64 `json:"totalDistance"`
	TotalDuration  int     `json:"totalDuration"`
	TotalCalories  int     `json:"totalCalories"`
	TasksCompleted int     `json:"tasksCompleted"`
	TotalTasks     int     `json:"totalTasks"`
}

type Settings struct {
	WakeUpTime    string `json:"wakeUpTime"`
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`        // light, dark
	WeekStartsOn  string `json:"weekStartsOn"` // sunday, monday
}

// SettingsPatch carries a partial settings update.
type SettingsPatch struct {
	WakeUpTime    *string
	Notifications *bool
	Theme         *string
	WeekStartsOn  *string
}

// Summary is the aggregate derived from the task list after every change.
type Summary struct {
	CompletedCount       int
	TotalTasks           int
	CompletionPercentage int
	TotalDistance        float64
	TotalDuration        int
	TotalCalories        int
}

// Totals sums the activity fields over a set of stats records.
type Totals struct {
	Distance float64
	Duration int
	Calories int
}

// Float returns a pointer to v, for building TaskData patches.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building TaskData patches.
func Int(v int) *int { return &v }

// String returns a pointer to v, for building patches.
func String(v string) *string { return &v }

// Bool returns a pointer to v, for building patches.
func Bool(v bool) *bool { return &v }
