package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/store"
)

type statsMode int

const (
	statsWeek statsMode = iota
	statsMonth
)

type statsModel struct {
	tracker *store.Tracker
	now     func() time.Time
	width   int
	height  int

	mode    statsMode
	records []store.DailyStats
	month   time.Time // first day of the calendar month shown

	chart barchart.Model
}

func newStatsModel(tr *store.Tracker, now func() time.Time) statsModel {
	return statsModel{
		tracker: tr,
		now:     now,
		month:   firstOfMonth(now()),
		chart:   barchart.New(60, 10),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.buildChart()
}

type statsDataMsg struct {
	records []store.DailyStats
}

// refresh snapshots the records on the update loop and delivers them as a
// message.
func (s statsModel) refresh() tea.Cmd {
	records := s.tracker.Stats.All()
	return func() tea.Msg {
		return statsDataMsg{records: records}
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		s.records = msg.records
		s.buildChart()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Mode):
			if s.mode == statsWeek {
				s.mode = statsMonth
			} else {
				s.mode = statsWeek
			}
			s.buildChart()
		case key.Matches(msg, keys.Left):
			s.month = s.month.AddDate(0, -1, 0)
		case key.Matches(msg, keys.Right):
			if next := s.month.AddDate(0, 1, 0); !next.After(s.now()) {
				s.month = next
			}
		}
	}
	return s, nil
}

func (s statsModel) window() []store.DailyStats {
	if s.mode == statsMonth {
		return s.tracker.Stats.Monthly()
	}
	return s.tracker.Stats.Weekly()
}

func (s statsModel) windowDays() int {
	if s.mode == statsMonth {
		return 30
	}
	return 7
}

func (s *statsModel) buildChart() {
	chartWidth := max(20, s.width-8)
	chartHeight := 10
	if s.height > 40 {
		chartHeight = 14
	}
	s.chart = barchart.New(chartWidth, chartHeight)

	days := latestPerDay(s.records)
	today := s.now()
	n := s.windowDays()

	var bars []barchart.BarData
	for i := n - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		label := d.Format("Mon")
		if n > 7 {
			label = d.Format("2")
		}

		rate := 0
		if r, ok := days[store.DayString(d)]; ok {
			rate = r.CompletionRate
		}
		color := colorSubtle
		switch {
		case rate >= store.StreakThreshold:
			color = colorSuccess
		case rate >= 50:
			color = colorWarning
		case rate > 0:
			color = colorError
		}

		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  store.DayString(d),
				Value: float64(rate),
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	weekTab := inactiveTabStyle.Render("Week")
	monthTab := inactiveTabStyle.Render("Month")
	if s.mode == statsWeek {
		weekTab = activeTabStyle.Render("Week")
	} else {
		monthTab = activeTabStyle.Render("Month")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", weekTab, monthTab,
	)

	nav := mutedStyle.Render("  m: week/month  ←/→: calendar month")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			s.renderCards(),
			"",
			subtitleStyle.Render("Completion rate by day"),
			s.chart.View(),
			"",
			s.renderCalendar(),
			"",
			nav,
		),
	)
}

func (s statsModel) renderCards() string {
	window := s.window()
	totals := store.SumTotals(window)
	avg := store.AverageCompletion(window)

	card := func(label, value string) string {
		return lipgloss.NewStyle().Width(18).Render(
			lipgloss.JoinVertical(lipgloss.Left, statValueStyle.Render(value), mutedStyle.Render(label)),
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("current streak", fmt.Sprintf("%d", s.tracker.Stats.CurrentStreak())),
		card("longest streak", fmt.Sprintf("%d", s.tracker.Stats.LongestStreak())),
		card("avg completion", rateStyleFor(avg)(fmt.Sprintf("%d%%", avg))),
		card("distance", formatMiles(totals.Distance)),
		card("exercise", formatMinutes(totals.Duration)),
		card("calories", fmt.Sprintf("%d", totals.Calories)),
	)
}

func (s statsModel) renderCalendar() string {
	weekStart := time.Monday
	if s.tracker.Settings.Get().WeekStartsOn == "sunday" {
		weekStart = time.Sunday
	}
	return renderMonth(s.month, weekStart, latestPerDay(s.records), store.DayString(s.now()))
}

// renderMonth draws a month grid, each day coloured by its completion rate.
func renderMonth(month time.Time, weekStart time.Weekday, days map[string]store.DailyStats, today string) string {
	var b strings.Builder
	b.WriteString(highlightStyle.Render(month.Format("January 2006")))
	b.WriteString("\n")

	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(weekStart) + i) % 7)
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%3s", wd.String()[:2])))
	}
	b.WriteString("\n")

	first := firstOfMonth(month)
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	b.WriteString(strings.Repeat("   ", offset))

	col := offset
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%3d", d.Day())
		day := store.DayString(d)
		if r, ok := days[day]; ok {
			cell = rateStyleFor(r.CompletionRate)(cell)
		} else {
			cell = mutedStyle.Render(cell)
		}
		if day == today {
			cell = todayCellStyle.Render(cell)
		}
		b.WriteString(cell)

		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
