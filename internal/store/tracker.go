package store

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// KeyGranularity selects how stats records are keyed.
type KeyGranularity string

const (
	// KeyTimestamp writes under the exact time of the write, so every session
	// (and every change) produces its own record.
	KeyTimestamp KeyGranularity = "timestamp"
	// KeyDay writes under the calendar day, one record per day.
	KeyDay KeyGranularity = "day"
)

type Options struct {
	Now            func() time.Time
	Logger         *zap.SugaredLogger
	KeyGranularity KeyGranularity
}

// Tracker owns the four stores of one session and forwards every task
// change to the stats store.
type Tracker struct {
	Settings *SettingsStore
	Tasks    *TaskStore
	Journal  *JournalStore
	Stats    *StatsStore

	now  func() time.Time
	log  *zap.SugaredLogger
	keys KeyGranularity
}

// Open loads every store, running the rollover before the task overlay, and
// records the starting summary.
func Open(slots Slots, opts Options) (*Tracker, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := orNop(opts.Logger)
	keys := opts.KeyGranularity
	if keys == "" {
		keys = KeyTimestamp
	}

	settings, err := LoadSettings(slots, log)
	if err != nil {
		return nil, err
	}
	tasks, err := LoadTasks(slots, log, now)
	if err != nil {
		return nil, err
	}
	journal, err := LoadJournal(slots, log, now)
	if err != nil {
		return nil, err
	}
	stats, err := LoadStats(slots, log, now)
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		Settings: settings,
		Tasks:    tasks,
		Journal:  journal,
		Stats:    stats,
		now:      now,
		log:      log,
		keys:     keys,
	}
	if err := t.record(tasks.Summary()); err != nil {
		return nil, err
	}
	return t, nil
}

// StatsKey is the date key the next stats write will use.
func (t *Tracker) StatsKey() string {
	if t.keys == KeyDay {
		return DayString(t.now())
	}
	return t.now().UTC().Format(TimestampLayout)
}

// Toggle flips a task and records the resulting summary. Unknown ids change
// nothing and record nothing.
func (t *Tracker) Toggle(id string) (Summary, bool, error) {
	sum, found, err := t.Tasks.Toggle(id)
	if err != nil || !found {
		return sum, found, err
	}
	return sum, true, t.record(sum)
}

// UpdateTaskData merges sub-data into a task and records the resulting summary.
func (t *Tracker) UpdateTaskData(id string, data TaskData) (Summary, bool, error) {
	sum, found, err := t.Tasks.UpdateData(id, data)
	if err != nil || !found {
		return sum, found, err
	}
	return sum, true, t.record(sum)
}

// CheckRollover resets the checklist if the day has changed since the last
// reset, recording a fresh summary when it does.
func (t *Tracker) CheckRollover() (bool, error) {
	reset, err := t.Tasks.Rollover()
	if err != nil || !reset {
		return reset, err
	}
	return true, t.record(t.Tasks.Summary())
}

func (t *Tracker) record(sum Summary) error {
	if err := t.Stats.Record(sum.Stats(t.StatsKey())); err != nil {
		return fmt.Errorf("record stats: %w", err)
	}
	return nil
}
