package tui

import (
	"fmt"
	"slices"
	"time"

	"github.com/sadopc/streakr/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewJournal
	viewStats
	viewSettings
)

var viewNames = []string{"Today", "Journal", "Stats", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// rolloverMsg is sent when the day changed under a running session.
type rolloverMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func errStatus(prefix string, err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
}

func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}

func formatMiles(mi float64) string {
	return fmt.Sprintf("%.1f mi", mi)
}

// latestPerDay keeps the newest record of each calendar day, keyed by
// DayString. Records with unparsable dates are skipped.
func latestPerDay(records []store.DailyStats) map[string]store.DailyStats {
	type dated struct {
		at time.Time
		r  store.DailyStats
	}
	var ds []dated
	for _, r := range records {
		if t, ok := store.ParseStatsDate(r.Date); ok {
			ds = append(ds, dated{t, r})
		}
	}
	slices.SortStableFunc(ds, func(a, b dated) int { return a.at.Compare(b.at) })

	out := make(map[string]store.DailyStats, len(ds))
	for _, d := range ds {
		out[store.DayString(d.at)] = d.r
	}
	return out
}

func rateStyleFor(rate int) func(...string) string {
	switch {
	case rate >= store.StreakThreshold:
		return successStyle.Render
	case rate >= 50:
		return warningStyle.Render
	case rate > 0:
		return errorStyle.Render
	}
	return mutedStyle.Render
}
