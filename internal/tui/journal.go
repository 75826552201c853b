package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/store"
)

var moodLabels = map[store.Mood]string{
	store.MoodGreat: "Great",
	store.MoodGood:  "Good",
	store.MoodOkay:  "Okay",
	store.MoodBad:   "Bad",
}

type journalModel struct {
	tracker *store.Tracker
	width   int
	height  int

	cursor        int
	confirmDelete bool

	formActive bool
	form       *huh.Form
	editingID  string // empty for a new entry

	// Form field pointers (survive value copies)
	formContent    *string
	formMood       *string
	formHighlights *string
}

func newJournalModel(tr *store.Tracker) journalModel {
	content, mood, highlights := "", string(store.MoodGood), ""
	return journalModel{
		tracker:        tr,
		formContent:    &content,
		formMood:       &mood,
		formHighlights: &highlights,
	}
}

func (j *journalModel) setSize(w, h int) {
	j.width = w
	j.height = h
}

func (j journalModel) update(msg tea.Msg) (journalModel, tea.Cmd) {
	if j.formActive && j.form != nil {
		return j.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return j, nil
	}
	entries := j.tracker.Journal.Entries()

	if j.confirmDelete {
		j.confirmDelete = false
		if km.String() != "y" || j.cursor >= len(entries) {
			return j, nil
		}
		if _, err := j.tracker.Journal.Delete(entries[j.cursor].ID); err != nil {
			return j, func() tea.Msg { return errStatus("Delete error", err) }
		}
		if j.cursor >= len(entries)-1 {
			j.cursor = max(0, len(entries)-2)
		}
		return j, func() tea.Msg { return statusMsg{text: "Entry deleted"} }
	}

	switch {
	case key.Matches(km, keys.Up):
		if j.cursor > 0 {
			j.cursor--
		}
	case key.Matches(km, keys.Down):
		if j.cursor < len(entries)-1 {
			j.cursor++
		}
	case key.Matches(km, keys.New):
		return j.showForm(nil)
	case key.Matches(km, keys.Enter):
		if len(entries) > 0 {
			e := entries[j.cursor]
			return j.showForm(&e)
		}
	case key.Matches(km, keys.Delete):
		if len(entries) > 0 {
			j.confirmDelete = true
		}
	}
	return j, nil
}

func (j journalModel) showForm(e *store.JournalEntry) (journalModel, tea.Cmd) {
	if e == nil {
		*j.formContent = ""
		*j.formMood = string(store.MoodGood)
		*j.formHighlights = ""
		j.editingID = ""
	} else {
		*j.formContent = e.Content
		*j.formMood = string(e.Mood)
		*j.formHighlights = strings.Join(e.Highlights, "\n")
		j.editingID = e.ID
	}

	moodOptions := make([]huh.Option[string], len(store.Moods))
	for i, m := range store.Moods {
		moodOptions[i] = huh.NewOption(moodLabels[m], string(m))
	}

	j.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("How was today?").Options(moodOptions...).Value(j.formMood),
			huh.NewText().Title("Entry").
				Placeholder("What happened, what went well, what to change tomorrow").
				Value(j.formContent).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("write something first")
					}
					return nil
				}),
			huh.NewText().Title("Highlights (one per line)").Lines(3).Value(j.formHighlights),
		),
	).WithShowHelp(true).WithShowErrors(true)

	j.formActive = true
	return j, j.form.Init()
}

func (j journalModel) updateForm(msg tea.Msg) (journalModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			j.formActive = false
			j.form = nil
			return j, nil
		}
	}

	form, cmd := j.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		j.form = f
	}

	if j.form.State == huh.StateCompleted {
		j.formActive = false
		if err := j.save(); err != nil {
			return j, func() tea.Msg { return errStatus("Journal error", err) }
		}
		if j.editingID == "" {
			j.cursor = 0
			return j, func() tea.Msg { return statusMsg{text: "Entry saved"} }
		}
		return j, func() tea.Msg { return statusMsg{text: "Entry updated"} }
	}

	return j, cmd
}

func (j journalModel) save() error {
	mood := store.Mood(*j.formMood)
	highlights := strings.Split(*j.formHighlights, "\n")

	if j.editingID == "" {
		_, err := j.tracker.Journal.Add(store.EntryInput{
			Content:    *j.formContent,
			Mood:       mood,
			Highlights: highlights,
		})
		return err
	}
	_, err := j.tracker.Journal.Update(j.editingID, store.EntryPatch{
		Content:    j.formContent,
		Mood:       &mood,
		Highlights: highlights,
	})
	return err
}

func (j journalModel) view() string {
	w := j.width - 4

	if j.formActive && j.form != nil {
		title := titleStyle.Render("New Entry")
		if j.editingID != "" {
			title = titleStyle.Render("Edit Entry")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", j.form.View())
		return activePanelStyle.Width(w).Render(content)
	}

	entries := j.tracker.Journal.Entries()
	title := titleStyle.Render("Journal")

	if len(entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No entries yet. Press n to write one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	for i, e := range entries {
		cursor := "  "
		style := normalItemStyle
		if i == j.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		mood := moodStyle(string(e.Mood)).Render(fmt.Sprintf("%-6s", e.Mood))
		preview := firstLine(e.Content, max(10, w-40))
		rows = append(rows, fmt.Sprintf("%s%s  %s  %s",
			cursor, style.Render(e.Date.Local().Format("Mon Jan 02 15:04")), mood, preview))
	}

	rows = append(rows, "")
	if j.cursor < len(entries) {
		rows = append(rows, j.renderDetail(entries[j.cursor]))
		rows = append(rows, "")
	}

	if j.confirmDelete {
		rows = append(rows, errorStyle.Render("  Delete this entry? y: yes  any other key: cancel"))
	} else {
		rows = append(rows, mutedStyle.Render("  n: new  enter: edit  d: delete"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (j journalModel) renderDetail(e store.JournalEntry) string {
	var lines []string
	lines = append(lines, highlightStyle.Render(e.Date.Local().Format("Monday, January 2, 2006")))
	lines = append(lines, e.Content)
	for _, h := range e.Highlights {
		lines = append(lines, accentStyle.Render("  ★ ")+h)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(colorSubtle).
		PaddingLeft(1).
		Width(max(20, j.width-10)).
		Render(strings.Join(lines, "\n"))
}

func firstLine(s string, limit int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	r := []rune(s)
	if len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return s
}
