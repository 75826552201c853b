package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyContent = errors.New("journal entry content is empty")

var validate = validator.New()

type JournalStore struct {
	slots   Slots
	log     *zap.SugaredLogger
	now     func() time.Time
	entries []JournalEntry
}

func LoadJournal(slots Slots, log *zap.SugaredLogger, now func() time.Time) (*JournalStore, error) {
	if now == nil {
		now = time.Now
	}
	s := &JournalStore{slots: slots, log: orNop(log), now: now}

	var saved []JournalEntry
	ok, err := readSlot(slots, s.log, JournalKey, &saved)
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	if ok {
		s.entries = saved
	}
	return s, nil
}

// Entries returns a copy, newest first.
func (s *JournalStore) Entries() []JournalEntry {
	out := make([]JournalEntry, len(s.entries))
	for i, e := range s.entries {
		e.Highlights = append([]string(nil), e.Highlights...)
		out[i] = e
	}
	return out
}

// Add assigns a fresh id and prepends the entry. A zero Date means now.
func (s *JournalStore) Add(in EntryInput) (JournalEntry, error) {
	if strings.TrimSpace(in.Content) == "" {
		return JournalEntry{}, ErrEmptyContent
	}
	if err := validate.Struct(in); err != nil {
		return JournalEntry{}, fmt.Errorf("invalid journal entry: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return JournalEntry{}, fmt.Errorf("generate entry id: %w", err)
	}
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	e := JournalEntry{
		ID:         id.String(),
		Date:       date,
		Content:    in.Content,
		Mood:       in.Mood,
		Highlights: cleanHighlights(in.Highlights),
	}

	next := append([]JournalEntry{e}, s.entries...)
	if err := s.save(next); err != nil {
		return JournalEntry{}, err
	}
	s.entries = next
	return e, nil
}

// Update merges the set fields of p into the entry with that id.
func (s *JournalStore) Update(id string, p EntryPatch) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}

	e := s.entries[i]
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Mood != nil {
		e.Mood = *p.Mood
	}
	if p.Highlights != nil {
		e.Highlights = cleanHighlights(p.Highlights)
	}

	next := append([]JournalEntry(nil), s.entries...)
	next[i] = e
	if err := s.save(next); err != nil {
		return true, err
	}
	s.entries = next
	return true, nil
}

func (s *JournalStore) Delete(id string) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}

	next := make([]JournalEntry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	if err := s.save(next); err != nil {
		return true, err
	}
	s.entries = next
	return true, nil
}

// Today returns the first entry in stored order written on the current
// calendar day. Several entries may share a day; the newest wins.
func (s *JournalStore) Today() (JournalEntry, bool) {
	today := DayString(s.now())
	for _, e := range s.entries {
		if DayString(e.Date) == today {
			return e, true
		}
	}
	return JournalEntry{}, false
}

func (s *JournalStore) index(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *JournalStore) save(entries []JournalEntry) error {
	if entries == nil {
		entries = []JournalEntry{}
	}
	if err := writeSlot(s.slots, JournalKey, entries); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	return nil
}

func cleanHighlights(in []string) []string {
	out := []string{}
	for _, h := range in {
		if strings.TrimSpace(h) != "" {
			out = append(out, h)
		}
	}
	return out
}
