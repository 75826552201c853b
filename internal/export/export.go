package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/streakr/internal/store"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Kind is the collection being exported.
type Kind string

const (
	KindStats   Kind = "stats"
	KindJournal Kind = "journal"
)

var Formats = []Format{FormatCSV, FormatJSON}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindStats, KindJournal:
		return k, nil
	}
	return "", fmt.Errorf("unknown export kind %q (want stats or journal)", s)
}

// FileName is the default output name, e.g. streakr-stats-2026-10-16.csv.
func FileName(kind Kind, format Format, now time.Time) string {
	return fmt.Sprintf("streakr-%s-%s.%s", kind, now.Format("2006-01-02"), format)
}

func Stats(records []store.DailyStats, format Format, path string) error {
	if format == FormatJSON {
		return StatsToJSON(records, path)
	}
	return StatsToCSV(records, path)
}

func Journal(entries []store.JournalEntry, format Format, path string) error {
	if format == FormatJSON {
		return JournalToJSON(entries, path)
	}
	return JournalToCSV(entries, path)
}
