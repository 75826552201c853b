package store

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// DayString is the calendar day of t in local time.
func DayString(t time.Time) string {
	return t.Local().Format(dayLayout)
}

// Rollover resets completion state once per calendar day. If the persisted
// marker is absent or differs from today every task is uncompleted, exercise
// and calories data go back to zero, the reset list is flushed and the marker
// moves to today. Running it again on the same day does nothing.
func (s *TaskStore) Rollover() (bool, error) {
	today := DayString(s.now())

	var last string
	if _, err := readSlot(s.slots, s.log, LastResetKey, &last); err != nil {
		return false, fmt.Errorf("read reset marker: %w", err)
	}
	if last == today {
		return false, nil
	}

	for i := range s.tasks {
		s.tasks[i].Completed = false
		if d := zeroData(s.tasks[i].Type); d != nil {
			s.tasks[i].Data = d
		}
	}
	if err := s.save(); err != nil {
		return false, err
	}
	if err := writeSlot(s.slots, LastResetKey, today); err != nil {
		return false, fmt.Errorf("write reset marker: %w", err)
	}

	s.log.Infow("daily rollover", "from", last, "to", today)
	return true, nil
}
