package store

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultSettings fills every field missing from the persisted record.
func DefaultSettings() Settings {
	return Settings{
		WakeUpTime:    "07:00",
		Notifications: true,
		Theme:         "light",
		WeekStartsOn:  "monday",
	}
}

type SettingsStore struct {
	slots Slots
	log   *zap.SugaredLogger
	cur   Settings
}

// LoadSettings reads the settings slot over the defaults.
func LoadSettings(slots Slots, log *zap.SugaredLogger) (*SettingsStore, error) {
	s := &SettingsStore{slots: slots, log: orNop(log), cur: DefaultSettings()}

	loaded := DefaultSettings()
	ok, err := readSlot(slots, s.log, SettingsKey, &loaded)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if ok {
		s.cur = loaded
	}
	return s, nil
}

func (s *SettingsStore) Get() Settings {
	return s.cur
}

// Update merges the set fields of p and persists the result.
func (s *SettingsStore) Update(p SettingsPatch) (Settings, error) {
	next := s.cur
	if p.WakeUpTime != nil {
		next.WakeUpTime = *p.WakeUpTime
	}
	if p.Notifications != nil {
		next.Notifications = *p.Notifications
	}
	if p.Theme != nil {
		next.Theme = *p.Theme
	}
	if p.WeekStartsOn != nil {
		next.WeekStartsOn = *p.WeekStartsOn
	}

	if err := writeSlot(s.slots, SettingsKey, next); err != nil {
		return s.cur, fmt.Errorf("save settings: %w", err)
	}
	s.cur = next
	return next, nil
}
