package store

import (
	"testing"
	"time"
)

func openTracker(t *testing.T, s *Store, opts Options) *Tracker {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = testLogger(t)
	}
	tr, err := Open(s, opts)
	if err != nil {
		t.Fatalf("open tracker: %v", err)
	}
	return tr
}

func TestOpenRecordsStartingSummary(t *testing.T) {
	s := newTestStore(t)
	tr := openTracker(t, s, Options{Now: fixedClock(2026, 10, 16)})

	all := tr.Stats.All()
	if len(all) != 1 {
		t.Fatalf("expected the starting summary recorded, got %d records", len(all))
	}
	if all[0].TotalTasks != 11 || all[0].TasksCompleted != 0 {
		t.Fatalf("unexpected starting record: %+v", all[0])
	}
}

func TestOpenRollsOverBeforeOverlay(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, TasksKey, allCompleted())
	seed(t, s, LastResetKey, "2026-10-15")

	tr := openTracker(t, s, Options{Now: fixedClock(2026, 10, 16)})
	if tr.Tasks.Summary().CompletedCount != 0 {
		t.Fatal("yesterday's completion survived the session start")
	}
	if tr.Stats.All()[0].CompletionRate != 0 {
		t.Fatal("starting record should reflect the reset list")
	}
}

func TestToggleRecordsPostMutationState(t *testing.T) {
	s := newTestStore(t)
	tr := openTracker(t, s, Options{Now: fixedClock(2026, 10, 16)})

	tr.UpdateTaskData("cycle-10", TaskData{Distance: Float(10), Duration: Int(55)})
	sum, found, err := tr.Toggle("cycle-10")
	if err != nil || !found {
		t.Fatalf("toggle failed: %v %v", found, err)
	}
	if sum.TotalDistance != 10 {
		t.Fatalf("summary should include the completed ride, got %+v", sum)
	}

	// Fixed clock: every write lands on the same timestamp key.
	all := tr.Stats.All()
	if len(all) != 1 {
		t.Fatalf("expected one upserted record, got %d", len(all))
	}
	if all[0].TasksCompleted != 1 || all[0].TotalDistance != 10 || all[0].TotalDuration != 55 {
		t.Fatalf("stats record is stale: %+v", all[0])
	}
}

func TestToggleUnknownRecordsNothing(t *testing.T) {
	s := newTestStore(t)
	clock := time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)
	tr := openTracker(t, s, Options{Now: func() time.Time { return clock }})

	clock = clock.Add(time.Second)
	if _, found, _ := tr.Toggle("ghost"); found {
		t.Fatal("ghost should not be found")
	}
	if len(tr.Stats.All()) != 1 {
		t.Fatal("a no-op toggle should not write stats")
	}
}

func TestTimestampKeysProduceRecordPerChange(t *testing.T) {
	s := newTestStore(t)
	clock := time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)
	tr := openTracker(t, s, Options{Now: func() time.Time { return clock }})

	clock = clock.Add(time.Minute)
	tr.Toggle("homework")
	clock = clock.Add(time.Minute)
	tr.Toggle("journal")

	if got := len(tr.Stats.All()); got != 3 {
		t.Fatalf("timestamp keys should not collapse writes, got %d records", got)
	}
	if tr.StatsKey() != clock.UTC().Format(TimestampLayout) {
		t.Fatalf("unexpected key %q", tr.StatsKey())
	}
}

func TestDayKeysProduceRecordPerDay(t *testing.T) {
	s := newTestStore(t)
	clock := time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local)
	tr := openTracker(t, s, Options{Now: func() time.Time { return clock }, KeyGranularity: KeyDay})

	clock = clock.Add(time.Hour)
	tr.Toggle("homework")
	clock = clock.Add(time.Hour)
	tr.Toggle("journal")

	all := tr.Stats.All()
	if len(all) != 1 {
		t.Fatalf("day keys should collapse to one record, got %d", len(all))
	}
	if all[0].Date != "2026-10-16" || all[0].TasksCompleted != 2 {
		t.Fatalf("unexpected record: %+v", all[0])
	}
}

func TestCheckRollover(t *testing.T) {
	s := newTestStore(t)
	clock := time.Date(2026, 10, 16, 22, 0, 0, 0, time.Local)
	tr := openTracker(t, s, Options{Now: func() time.Time { return clock }, KeyGranularity: KeyDay})
	tr.Toggle("homework")

	reset, err := tr.CheckRollover()
	if err != nil || reset {
		t.Fatalf("no rollover expected the same evening: %v %v", reset, err)
	}

	clock = clock.Add(4 * time.Hour)
	reset, err = tr.CheckRollover()
	if err != nil || !reset {
		t.Fatalf("expected rollover after midnight: %v %v", reset, err)
	}
	today, ok := tr.Stats.ForDay(clock)
	if !ok || today.TasksCompleted != 0 {
		t.Fatalf("expected a fresh record for the new day, got %+v %v", today, ok)
	}
	yesterday, _ := tr.Stats.ForDay(clock.AddDate(0, 0, -1))
	if yesterday.TasksCompleted != 1 {
		t.Fatalf("yesterday's record should be kept, got %+v", yesterday)
	}
}

func TestStoresKeepToTheirSlots(t *testing.T) {
	s := newTestStore(t)
	tr := openTracker(t, s, Options{Now: fixedClock(2026, 10, 16)})
	tr.Settings.Update(SettingsPatch{Theme: String("dark")})
	tr.Journal.Add(EntryInput{Content: "ok", Mood: MoodGood})

	keys, _ := s.Keys()
	want := map[string]bool{TasksKey: true, LastResetKey: true, StatsKey: true, SettingsKey: true, JournalKey: true}
	if len(keys) != len(want) {
		t.Fatalf("unexpected slots: %v", keys)
	}
	for _, k := range keys {
		if !want[k] {
			t.Fatalf("unexpected slot %q", k)
		}
	}
}
