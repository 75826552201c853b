package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/store"
)

type todayModel struct {
	tracker *store.Tracker
	width   int
	height  int

	cursor   int
	progress progress.Model

	formActive bool
	form       *huh.Form
	formTask   string

	// Form values as pointers (survive value copies)
	formDistance *string
	formDuration *string
	formCalories *string
}

func newTodayModel(tr *store.Tracker) todayModel {
	dist, dur, cal := "", "", ""
	return todayModel{
		tracker:      tr,
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		formDistance: &dist,
		formDuration: &dur,
		formCalories: &cal,
	}
}

func (d *todayModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.progress.Width = max(10, min(w-30, 60))
}

func (d todayModel) selected() (store.Task, bool) {
	tasks := d.tracker.Tasks.Tasks()
	if d.cursor < 0 || d.cursor >= len(tasks) {
		return store.Task{}, false
	}
	return tasks[d.cursor], true
}

func (d todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case rolloverMsg:
		d.cursor = 0
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.tracker.Tasks.Tasks())-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			return d.toggle()
		case key.Matches(msg, keys.Log):
			return d.showDataForm()
		}
	}
	return d, nil
}

func (d todayModel) toggle() (todayModel, tea.Cmd) {
	task, ok := d.selected()
	if !ok {
		return d, nil
	}
	sum, _, err := d.tracker.Toggle(task.ID)
	if err != nil {
		return d, func() tea.Msg { return errStatus("Save error", err) }
	}
	if sum.CompletedCount == sum.TotalTasks {
		return d, func() tea.Msg { return statusMsg{text: "Every task done today!"} }
	}
	return d, nil
}

func (d todayModel) showDataForm() (todayModel, tea.Cmd) {
	task, ok := d.selected()
	if !ok {
		return d, nil
	}

	var fields []huh.Field
	switch task.Type {
	case store.TaskExercise:
		*d.formDistance = strconv.FormatFloat(task.Data.DistanceOr0(), 'f', -1, 64)
		*d.formDuration = strconv.Itoa(task.Data.DurationOr0())
		fields = append(fields,
			huh.NewInput().Title("Distance (miles)").Value(d.formDistance).Validate(validateFloat),
			huh.NewInput().Title("Duration (minutes)").Value(d.formDuration).Validate(validateInt),
		)
	case store.TaskCalories:
		*d.formCalories = strconv.Itoa(task.Data.CaloriesOr0())
		fields = append(fields,
			huh.NewInput().Title("Calories").Value(d.formCalories).Validate(validateInt),
		)
	default:
		return d, func() tea.Msg { return statusMsg{text: task.Title + " has no data to log"} }
	}

	d.formTask = task.ID
	d.form = huh.NewForm(huh.NewGroup(fields...).Title(task.Title)).
		WithShowHelp(true).WithShowErrors(true)
	d.formActive = true
	return d, d.form.Init()
}

func (d todayModel) updateForm(msg tea.Msg) (todayModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		if err := d.saveData(); err != nil {
			return d, func() tea.Msg { return errStatus("Save error", err) }
		}
		return d, func() tea.Msg { return statusMsg{text: "Logged " + d.formTask} }
	}

	return d, cmd
}

func (d todayModel) saveData() error {
	task, ok := d.tracker.Tasks.Get(d.formTask)
	if !ok {
		return nil
	}

	var patch store.TaskData
	switch task.Type {
	case store.TaskExercise:
		if v, err := strconv.ParseFloat(strings.TrimSpace(*d.formDistance), 64); err == nil {
			patch.Distance = &v
		}
		if v, err := strconv.Atoi(strings.TrimSpace(*d.formDuration)); err == nil {
			patch.Duration = &v
		}
	case store.TaskCalories:
		if v, err := strconv.Atoi(strings.TrimSpace(*d.formCalories)); err == nil {
			patch.Calories = &v
		}
	}
	_, _, err := d.tracker.UpdateTaskData(task.ID, patch)
	return err
}

func validateFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validateInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func (d todayModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	if d.formActive && d.form != nil {
		title := titleStyle.Render("Log Activity")
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.View()),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderProgressPanel(w),
		d.renderChecklist(w),
	)
}

func (d todayModel) renderProgressPanel(w int) string {
	sum := d.tracker.Tasks.Summary()

	header := fmt.Sprintf("%s  %s",
		titleStyle.Render("Today"),
		highlightStyle.Render(fmt.Sprintf("%d/%d done", sum.CompletedCount, sum.TotalTasks)),
	)
	bar := fmt.Sprintf("%s %s",
		d.progress.ViewAs(float64(sum.CompletionPercentage)/100),
		rateStyleFor(sum.CompletionPercentage)(fmt.Sprintf("%3d%%", sum.CompletionPercentage)),
	)
	totals := mutedStyle.Render(fmt.Sprintf("%s  ·  %s  ·  %d kcal",
		formatMiles(sum.TotalDistance), formatMinutes(sum.TotalDuration), sum.TotalCalories))

	journal := mutedStyle.Render("No journal entry yet today")
	if e, ok := d.tracker.Journal.Today(); ok {
		journal = "Journal: " + moodStyle(string(e.Mood)).Render(string(e.Mood))
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, bar, totals, journal),
	)
}

func (d todayModel) renderChecklist(w int) string {
	var rows []string
	for i, t := range d.tracker.Tasks.Tasks() {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		box := "[ ]"
		title := style.Render(t.Title)
		if t.Completed {
			box = checkStyle.Render("[x]")
			title = doneStyle.Render(t.Title)
		}

		row := fmt.Sprintf("%s%s %s", cursor, box, title)
		if t.TimeTarget != "" {
			row += mutedStyle.Render("  " + t.TimeTarget)
		}
		if data := taskDataLine(t); data != "" {
			row += "  " + highlightStyle.Render(data)
		}
		rows = append(rows, row)

		if i == d.cursor && t.Description != "" {
			rows = append(rows, mutedStyle.Render("       "+t.Description))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  l: log data  e: export"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func taskDataLine(t store.Task) string {
	switch t.Type {
	case store.TaskExercise:
		if t.Data.DistanceOr0() == 0 && t.Data.DurationOr0() == 0 {
			return ""
		}
		return fmt.Sprintf("%s, %s", formatMiles(t.Data.DistanceOr0()), formatMinutes(t.Data.DurationOr0()))
	case store.TaskCalories:
		if t.Data.CaloriesOr0() == 0 {
			return ""
		}
		return fmt.Sprintf("%d kcal", t.Data.CaloriesOr0())
	}
	return ""
}
