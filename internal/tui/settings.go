package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/store"
)

type settingsModel struct {
	tracker *store.Tracker
	width   int
	height  int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	wakeUpTime    *string
	notifications *bool
	theme         *string
	weekStart     *string
}

func newSettingsModel(tr *store.Tracker) settingsModel {
	wake, theme, ws := "", "", ""
	notify := false
	return settingsModel{
		tracker:       tr,
		wakeUpTime:    &wake,
		notifications: &notify,
		theme:         &theme,
		weekStart:     &ws,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cur := s.tracker.Settings.Get()
	*s.wakeUpTime = cur.WakeUpTime
	*s.notifications = cur.Notifications
	*s.theme = cur.Theme
	*s.weekStart = cur.WeekStartsOn

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Wake-up time (HH:MM)").Value(s.wakeUpTime).Validate(validateClock),
			huh.NewConfirm().Title("Notifications").Affirmative("On").Negative("Off").Value(s.notifications),
		).Title("Routine"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Light", "light"),
					huh.NewOption("Dark", "dark"),
				).Value(s.theme),
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(s.weekStart),
		).Title("Display"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, func() tea.Msg { return errStatus("Settings error", err) }
		}
		return s, func() tea.Msg { return statusMsg{text: "Settings saved"} }
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	wake := strings.TrimSpace(*s.wakeUpTime)
	_, err := s.tracker.Settings.Update(store.SettingsPatch{
		WakeUpTime:    &wake,
		Notifications: s.notifications,
		Theme:         s.theme,
		WeekStartsOn:  s.weekStart,
	})
	return err
}

func validateClock(v string) error {
	if _, err := time.Parse("15:04", strings.TrimSpace(v)); err != nil {
		return errors.New("use 24-hour HH:MM, e.g. 07:00")
	}
	return nil
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cur := s.tracker.Settings.Get()
	notify := "off"
	if cur.Notifications {
		notify = "on"
	}

	var rows []string
	rows = append(rows, title, "")
	for _, kv := range [][2]string{
		{"Wake-up time", cur.WakeUpTime},
		{"Notifications", notify},
		{"Theme", cur.Theme},
		{"Week starts on", cur.WeekStartsOn},
	} {
		label := lipgloss.NewStyle().Width(24).Render(kv[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(kv[1])))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
