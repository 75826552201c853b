package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/export"
	"github.com/sadopc/streakr/internal/store"
	"go.uber.org/zap"
)

// rolloverInterval is how often a running session checks for a new day.
const rolloverInterval = time.Minute

type exportChoice struct {
	label  string
	kind   export.Kind
	format export.Format
}

var exportChoices = []exportChoice{
	{"Stats (CSV)", export.KindStats, export.FormatCSV},
	{"Stats (JSON)", export.KindStats, export.FormatJSON},
	{"Journal (CSV)", export.KindJournal, export.FormatCSV},
	{"Journal (JSON)", export.KindJournal, export.FormatJSON},
}

// App is the root Bubble Tea model.
type App struct {
	tracker *store.Tracker
	log     *zap.SugaredLogger
	now     func() time.Time
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string
	lastRollover  time.Time

	today    todayModel
	journal  journalModel
	stats    statsModel
	settings settingsModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(tr *store.Tracker, log *zap.SugaredLogger) App {
	return newApp(tr, log, time.Now)
}

func newApp(tr *store.Tracker, log *zap.SugaredLogger, now func() time.Time) App {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	h := help.New()
	h.ShowAll = false

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return App{
		tracker:      tr,
		log:          log,
		now:          now,
		activeView:   viewToday,
		exportDir:    home,
		lastRollover: now(),
		today:        newTodayModel(tr),
		journal:      newJournalModel(tr),
		stats:        newStatsModel(tr, now),
		settings:     newSettingsModel(tr),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.stats.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.journal.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewToday
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewJournal
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmd := a.checkRollover(time.Time(msg))
		return a, tea.Batch(tickCmd(), cmd)

	case rolloverMsg:
		a.status = "New day: checklist reset"
		a.statusError = false
		a.today, _ = a.today.update(msg)
		return a, a.stats.refresh()

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		if msg.isError {
			a.log.Errorw("tui error", "status", msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		a.exportPicking = false
		a.log.Infow("exported", "path", msg.path)
		return a, nil

	case statsDataMsg:
		var cmd tea.Cmd
		a.stats, cmd = a.stats.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

// checkRollover runs the day-change check at most once per interval.
func (a *App) checkRollover(t time.Time) tea.Cmd {
	if t.Sub(a.lastRollover) < rolloverInterval {
		return nil
	}
	a.lastRollover = t

	reset, err := a.tracker.CheckRollover()
	if err != nil {
		return func() tea.Msg { return errStatus("Rollover error", err) }
	}
	if !reset {
		return nil
	}
	return func() tea.Msg { return rolloverMsg{} }
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewJournal:
		a.journal, cmd = a.journal.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewToday:
		return a.today.formActive
	case viewJournal:
		return a.journal.formActive || a.journal.confirmDelete
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	if a.activeView == viewStats {
		return a.stats.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
	case viewJournal:
		content = a.journal.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("streakr")
	if streak := a.tracker.Stats.CurrentStreak(); streak > 0 {
		title += accentStyle.Render(fmt.Sprintf("  %d-day streak", streak))
	}
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	clock := mutedStyle.Render(" " + a.now().Format("Mon Jan 2 15:04"))

	left := footerStyle.Render(helpView)
	right := status + clock

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, c := range exportChoices {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+c.label))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export to "+a.exportDir+"  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportChoices)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(exportChoices[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport snapshots the data on the update loop; only the file write runs
// in the command.
func (a App) doExport(c exportChoice) tea.Cmd {
	path := filepath.Join(a.exportDir, export.FileName(c.kind, c.format, a.now()))

	if c.kind == export.KindJournal {
		entries := a.tracker.Journal.Entries()
		return func() tea.Msg {
			if err := export.Journal(entries, c.format, path); err != nil {
				return errStatus("Export error", err)
			}
			return exportDoneMsg{path: path}
		}
	}

	records := a.tracker.Stats.All()
	return func() tea.Msg {
		if err := export.Stats(records, c.format, path); err != nil {
			return errStatus("Export error", err)
		}
		return exportDoneMsg{path: path}
	}
}
