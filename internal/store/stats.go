package store

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// StreakThreshold is the completion rate a record needs to extend a streak.
const StreakThreshold = 80

// TimestampLayout is the date key written by default: the moment of the
// write, in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type StatsStore struct {
	slots   Slots
	log     *zap.SugaredLogger
	now     func() time.Time
	records []DailyStats
}

func LoadStats(slots Slots, log *zap.SugaredLogger, now func() time.Time) (*StatsStore, error) {
	if now == nil {
		now = time.Now
	}
	s := &StatsStore{slots: slots, log: orNop(log), now: now}

	var saved []DailyStats
	ok, err := readSlot(slots, s.log, StatsKey, &saved)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	if ok {
		s.records = saved
	}
	return s, nil
}

// All returns a copy of every record in insertion order.
func (s *StatsStore) All() []DailyStats {
	return slices.Clone(s.records)
}

// Record upserts by the exact Date string: an existing record with the same
// key is replaced in place, otherwise the record is appended.
func (s *StatsStore) Record(d DailyStats) error {
	next := slices.Clone(s.records)
	replaced := false
	for i := range next {
		if next[i].Date == d.Date {
			next[i] = d
			replaced = true
		}
	}
	if !replaced {
		next = append(next, d)
	}

	if err := writeSlot(s.slots, StatsKey, next); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	s.records = next
	return nil
}

// Since returns the records dated at or after cutoff. Records whose date
// does not parse are never included.
func (s *StatsStore) Since(cutoff time.Time) []DailyStats {
	var out []DailyStats
	for _, r := range s.records {
		t, ok := ParseStatsDate(r.Date)
		if ok && !t.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// WindowSince returns the records of the trailing n days.
func (s *StatsStore) WindowSince(days int) []DailyStats {
	return s.Since(s.now().AddDate(0, 0, -days))
}

func (s *StatsStore) Weekly() []DailyStats {
	return s.WindowSince(7)
}

// Monthly steps back one calendar month. AddDate normalises overflow, so
// March 31 minus a month is March 3 (or 2 in a leap year).
func (s *StatsStore) Monthly() []DailyStats {
	return s.Since(s.now().AddDate(0, -1, 0))
}

// ForDay returns the first record that falls on the calendar day of day.
func (s *StatsStore) ForDay(day time.Time) (DailyStats, bool) {
	want := DayString(day)
	for _, r := range s.records {
		if t, ok := ParseStatsDate(r.Date); ok && DayString(t) == want {
			return r, true
		}
	}
	return DailyStats{}, false
}

// CurrentStreak counts records at or above the threshold starting from the
// most recent one. Gaps between days do not break a streak.
func (s *StatsStore) CurrentStreak() int {
	sorted := s.sorted()
	slices.Reverse(sorted)

	streak := 0
	for _, r := range sorted {
		if r.CompletionRate < StreakThreshold {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the longest run of qualifying records in date order.
func (s *StatsStore) LongestStreak() int {
	longest, run := 0, 0
	for _, r := range s.sorted() {
		if r.CompletionRate >= StreakThreshold {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// sorted returns the records in ascending date order. Unparsable dates sort
// first; ties keep insertion order.
func (s *StatsStore) sorted() []DailyStats {
	out := slices.Clone(s.records)
	slices.SortStableFunc(out, func(a, b DailyStats) int {
		ta, _ := ParseStatsDate(a.Date)
		tb, _ := ParseStatsDate(b.Date)
		return ta.Compare(tb)
	})
	return out
}

// ParseStatsDate accepts full timestamps and bare calendar days.
func ParseStatsDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(dayLayout, s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
