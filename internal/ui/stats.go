package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"planner/internal/config"
	"planner/internal/dates"
	"planner/internal/planner"
	"planner/internal/reports"
	"planner/internal/storage"
)

const recentTaskCount = 5

// StatsPane shows the monthly summary, the year table, the trailing window,
// the all-time totals and the latest tasks.
type StatsPane struct {
	planner  *planner.Planner
	trailing int
	report   *reports.MonthReport
	overall  reports.OverallSummary
	recent   []storage.Task
	year     table.Model
	keys     NavigationKeyMap
	focused  bool
	width    int
	height   int
	styles   *Styles
}

// NewStatsPane creates the stats pane. trailing is the length of the
// trailing window; zero selects the default.
func NewStatsPane(p *planner.Planner, styles *Styles, keyCfg *config.KeysConfig, trailing int) *StatsPane {
	if trailing <= 0 {
		trailing = reports.DefaultTrailingMonths
	}

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.ColorMuted).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.ColorText).
		Background(styles.ColorBgLight).
		Bold(false)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Month", Width: 5},
			{Title: "Days", Width: 5},
			{Title: "Avg", Width: 5},
			{Title: "Done", Width: 9},
		}),
		table.WithHeight(6),
		table.WithStyles(ts),
	)
	keys := NewNavigationKeyMap(keyCfg)
	t.KeyMap.LineUp = keys.Up
	t.KeyMap.LineDown = keys.Down
	t.KeyMap.GotoTop = keys.Top
	t.KeyMap.GotoBottom = keys.Bottom

	pane := &StatsPane{
		planner:  p,
		trailing: trailing,
		year:     t,
		keys:     keys,
		styles:   styles,
	}
	pane.refresh()
	return pane
}

// refresh recomputes every report from the planner's statistics.
func (p *StatsPane) refresh() {
	gen := p.planner.Reports()
	y, m := dates.YearMonth(p.planner.Now())

	report, err := gen.GenerateMonth(y, m, p.trailing)
	if err == nil {
		p.report = report
	}
	p.overall = gen.OverallStats()
	p.recent = p.planner.RecentTasks(recentTaskCount)

	months := gen.YearComparison(y)
	rows := make([]table.Row, 0, len(months))
	for _, ms := range months {
		rows = append(rows, table.Row{
			ms.ShortName,
			strconv.Itoa(ms.DaysWithTasks),
			percentCell(ms),
			fmt.Sprintf("%d/%d", ms.TasksCompleted, ms.TasksTotal),
		})
	}
	p.year.SetRows(rows)
	p.year.SetCursor(m)
}

func percentCell(m reports.MonthSummary) string {
	if !m.HasData() {
		return "—"
	}
	return fmt.Sprintf("%d%%", m.AverageCompletion)
}

// SetSize sets the pane dimensions.
func (p *StatsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.year.SetHeight(min(12, max(3, height-22)))
	p.year.SetWidth(max(24, width-4))
}

// SetFocused sets whether this pane is focused. The year table scrolls
// only while the pane has focus.
func (p *StatsPane) SetFocused(focused bool) {
	p.focused = focused
	if focused {
		p.year.Focus()
	} else {
		p.year.Blur()
	}
}

// Update handles messages for the stats pane.
func (p *StatsPane) Update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case tasksChangedMsg, taskAddedMsg, taskToggledMsg, taskDeletedMsg:
		p.refresh()
		return nil
	}

	if !p.focused {
		return nil
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		var cmd tea.Cmd
		p.year, cmd = p.year.Update(msg)
		return cmd
	}
	return nil
}

// View renders the stats pane.
func (p *StatsPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("📊 STATS"))
	b.WriteString("\n")
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", max(10, p.width-4))))
	b.WriteString("\n")

	if r := p.report; r != nil {
		b.WriteString(p.styles.StatValueStyle.Render(r.Title))
		b.WriteString("\n")
		b.WriteString(p.statLine("Days with tasks", fmt.Sprintf("%d/%d", r.Summary.DaysWithTasks, r.Summary.TotalDaysInMonth)))
		avg := fmt.Sprintf("%d%%", r.Summary.AverageCompletion)
		change := p.styles.ChangeStyle(r.Change.Kind).Render(r.Change.Label)
		b.WriteString(p.statLine("Average", avg+"  "+change))
		b.WriteString(p.statLine("Tasks done", fmt.Sprintf("%d/%d", r.Summary.TasksCompleted, r.Summary.TasksTotal)))
		b.WriteString("\n")

		b.WriteString(p.styles.StatLabelStyle.Render(fmt.Sprintf("Last %d months", len(r.Trailing))))
		b.WriteString("\n")
		for _, ms := range r.Trailing {
			b.WriteString(p.trailingLine(ms))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(p.year.View())
	b.WriteString("\n\n")

	b.WriteString(p.statLine("All time", fmt.Sprintf("%d days · %d/%d tasks · %d%%",
		p.overall.DaysWithTasks, p.overall.CompletedTasks, p.overall.TotalTasks, p.overall.AverageCompletion)))

	if len(p.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("Recent"))
		b.WriteString("\n")
		locale := p.planner.Locale()
		now := p.planner.Now()
		textWidth := max(5, p.width-20)
		for _, t := range p.recent {
			check := "○"
			if t.Completed {
				check = p.styles.GoodStyle.Render("✓")
			}
			when := p.styles.StatLabelStyle.Render(locale.FormatRelative(t.Date, now))
			b.WriteString(fmt.Sprintf("  %s %s %s  %s\n", check, t.Emoji, runewidth.Truncate(t.Text, textWidth, ".."), when))
		}
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

func (p *StatsPane) statLine(label, value string) string {
	return p.styles.StatLabelStyle.Render(fmt.Sprintf("%-16s", label)) + p.styles.StatValueStyle.Render(value) + "\n"
}

// trailingLine draws one month of the trailing window as a bar.
func (p *StatsPane) trailingLine(ms reports.MonthSummary) string {
	const barWidth = 10
	filled := ms.AverageCompletion * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	bucket := reports.BucketNone
	if ms.HasData() {
		bucket = reports.BucketFor(storage.DayStats{HasTasks: true, CompletionRate: ms.AverageCompletion})
	}
	label := fmt.Sprintf("%s %d", ms.ShortName, ms.Year)
	return fmt.Sprintf("  %-9s %s %s", label, p.styles.BucketStyle(bucket).Render(bar), percentCell(ms))
}
