package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"planner/internal/calendar"
	"planner/internal/config"
	"planner/internal/dates"
	"planner/internal/planner"
	"planner/internal/storage"
)

const (
	calendarCellWidth  = 4
	calendarHeaderRows = 4 // border, title, separator, weekday labels
	calendarDetailRows = 5
)

// CalendarPane shows the month grid and the tasks of the selected day.
type CalendarPane struct {
	planner  *planner.Planner
	view     storage.CalendarView
	cells    []calendar.Cell
	selected int
	detail   planner.DayDetail
	focused  bool
	width    int
	height   int
	styles   *Styles

	keys CalendarKeyMap
}

// NewCalendarPane creates the calendar pane with key bindings from keyCfg.
func NewCalendarPane(p *planner.Planner, styles *Styles, keyCfg *config.KeysConfig) *CalendarPane {
	pane := &CalendarPane{
		planner: p,
		styles:  styles,
		keys:    NewCalendarKeyMap(keyCfg),
	}
	pane.view = p.CalendarView()
	pane.cells, _ = p.Grid()
	pane.selectDefault()
	pane.loadDetail()
	return pane
}

// refresh re-reads the grid. A new month moves the selection to today, or to
// the 1st when today is not shown.
func (p *CalendarPane) refresh() {
	view := p.planner.CalendarView()
	if cells, err := p.planner.Grid(); err == nil {
		p.cells = cells
	}
	if view != p.view {
		p.view = view
		p.selectDefault()
	}
	p.selected = min(max(p.selected, 0), len(p.cells)-1)
	p.loadDetail()
}

func (p *CalendarPane) selectDefault() {
	p.selected = 0
	for i, c := range p.cells {
		if c.IsToday && c.InMonth {
			p.selected = i
			return
		}
	}
	for i, c := range p.cells {
		if c.InMonth && c.Day == 1 {
			p.selected = i
			return
		}
	}
}

func (p *CalendarPane) loadDetail() {
	if len(p.cells) == 0 {
		p.detail = planner.DayDetail{}
		return
	}
	p.detail = p.planner.DayDetail(p.cells[p.selected].Date)
}

// SelectedDate returns the date key of the selected cell.
func (p *CalendarPane) SelectedDate() string {
	return p.detail.Date
}

// SetSize sets the pane dimensions.
func (p *CalendarPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *CalendarPane) SetFocused(focused bool) {
	p.focused = focused
}

// Update handles messages for the calendar pane.
func (p *CalendarPane) Update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case calendarMovedMsg, calendarChangedMsg, tasksChangedMsg, taskAddedMsg, taskToggledMsg, taskDeletedMsg:
		p.refresh()
		return nil
	}

	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.PrevMonth):
			return previousMonthCmd(p.planner)

		case key.Matches(msg, p.keys.NextMonth):
			return nextMonthCmd(p.planner)

		case key.Matches(msg, p.keys.Today):
			// Jumping to the month already shown changes nothing, so
			// reselect today here as well.
			p.selectDefault()
			p.loadDetail()
			return jumpToTodayCmd(p.planner)

		case key.Matches(msg, p.keys.Left):
			p.move(-1)

		case key.Matches(msg, p.keys.Right):
			p.move(1)

		case key.Matches(msg, p.keys.Up):
			p.move(-7)

		case key.Matches(msg, p.keys.Down):
			p.move(7)
		}
	}

	return nil
}

// move shifts the selection within the grid.
func (p *CalendarPane) move(delta int) {
	next := p.selected + delta
	if next < 0 || next >= len(p.cells) {
		return
	}
	p.selected = next
	p.loadDetail()
}

// handleMouse selects the clicked day.
func (p *CalendarPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return previousMonthCmd(p.planner)

	case tea.MouseButtonWheelDown:
		return nextMonthCmd(p.planner)

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		row := msg.Y - calendarHeaderRows
		col := (msg.X - 2) / calendarCellWidth
		if row < 0 || row >= calendar.GridSize/7 || col < 0 || col >= 7 || msg.X < 2 {
			return nil
		}
		p.selected = row*7 + col
		p.loadDetail()
	}
	return nil
}

// View renders the calendar pane.
func (p *CalendarPane) View() string {
	var b strings.Builder
	locale := p.planner.Locale()

	title, err := locale.MonthTitle(p.view.Year, p.view.Month)
	if err != nil {
		title = fmt.Sprintf("%d-%02d", p.view.Year, p.view.Month+1)
	}
	b.WriteString(p.styles.PaneTitleStyle.Render("📅 " + strings.ToUpper(title)))
	b.WriteString("\n")
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", calendarCellWidth*7)))
	b.WriteString("\n")

	for _, label := range locale.WeekdayLabels() {
		b.WriteString(p.styles.WeekdayStyle.Render(label))
	}
	b.WriteString("\n")

	for _, week := range calendar.Weeks(p.cells) {
		for _, cell := range week {
			b.WriteString(p.renderCell(cell))
		}
		b.WriteString("\n")
	}

	b.WriteString(p.renderDetail())

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

// renderCell draws one day. A trailing mark repeats the completion class so
// it survives terminals without color.
func (p *CalendarPane) renderCell(cell calendar.Cell) string {
	mark := " "
	style := p.styles.DayStyle
	switch {
	case cell.FullyCompleted():
		mark, style = "✓", p.styles.DayCompletedStyle
	case cell.PartiallyCompleted():
		mark, style = "•", p.styles.DayPartialStyle
	case cell.HasTasks():
		mark, style = "○", p.styles.DayPendingStyle
	}
	if !cell.InMonth {
		style = p.styles.DayOtherStyle
	}
	if cell.IsToday {
		if cell.HasTasks() {
			style = style.Bold(true).Underline(true)
		} else {
			style = p.styles.DayTodayStyle
		}
	}
	if p.focused && cell.Date == p.detail.Date {
		style = style.Background(p.styles.ColorBgLight)
	}
	return style.Render(strconv.Itoa(cell.Day) + mark)
}

// renderDetail draws the drill-down of the selected day.
func (p *CalendarPane) renderDetail() string {
	var b strings.Builder
	d := p.detail
	if d.Date == "" {
		return ""
	}

	b.WriteString("\n")
	label := d.Date
	if t, err := dates.ParseKey(d.Date); err == nil {
		label = p.planner.Locale().FormatLong(t)
	}
	b.WriteString(p.styles.StatValueStyle.Render(label))
	if d.Stats.HasTasks {
		summary := fmt.Sprintf("  %d/%d · %d%%", d.Stats.Completed, d.Stats.Total, d.Stats.CompletionRate)
		b.WriteString(p.styles.StatLabelStyle.Render(summary))
	}
	b.WriteString("\n")

	if len(d.Tasks) == 0 {
		b.WriteString(p.styles.StatLabelStyle.Render("  No tasks"))
		b.WriteString("\n")
		return b.String()
	}

	rows := max(1, p.height-calendarHeaderRows-7-4)
	rows = min(rows, calendarDetailRows)
	textWidth := max(5, p.width-10)
	for i, t := range d.Tasks {
		if i == rows {
			b.WriteString(p.styles.StatLabelStyle.Render(fmt.Sprintf("  … %d more", len(d.Tasks)-rows)))
			b.WriteString("\n")
			break
		}
		check := "○"
		text := p.styles.TaskPendingStyle.Render(runewidth.Truncate(t.Text, textWidth, ".."))
		if t.Completed {
			check = p.styles.GoodStyle.Render("✓")
			text = p.styles.TaskDoneStyle.Render(runewidth.Truncate(t.Text, textWidth, ".."))
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", check, t.Emoji, text))
	}
	return b.String()
}
