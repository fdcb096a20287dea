// Package ui provides the terminal user interface of the planner.
// This file contains the main App model which coordinates all panes and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"planner/internal/config"
	"planner/internal/planner"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneToday PaneID = iota
	PaneTemplates
	PaneCalendar
	PaneStats
)

var paneOrder = []PaneID{PaneToday, PaneTemplates, PaneCalendar, PaneStats}

func (id PaneID) String() string {
	switch id {
	case PaneToday:
		return "Today"
	case PaneTemplates:
		return "Templates"
	case PaneCalendar:
		return "Calendar"
	case PaneStats:
		return "Stats"
	}
	return fmt.Sprintf("PaneID(%d)", int(id))
}

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows all panes: today above templates, then the calendar
	// and the stats side by side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// calendarPaneWidth fits seven four-column cells plus border and padding.
const calendarPaneWidth = 34

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmDeletions      bool
	ShowOnboarding        bool
	NarrowLayoutThreshold int
	TrailingMonths        int

	// OnboardingDone is called once the welcome screen is dismissed, so it
	// is not shown again.
	OnboardingDone func() error
}

// App is the main application model that coordinates all panes.
type App struct {
	planner       *planner.Planner
	styles        *Styles
	config        *AppConfig
	todayPane     *TodayPane
	templatesPane *TemplatesPane
	calendarPane  *CalendarPane
	statsPane     *StatsPane
	helpOverlay   *HelpOverlay
	helpBar       help.Model
	confirmDel    *confirmDeleteState
	activePane    PaneID
	layoutMode    LayoutMode
	showHelp      bool
	showWelcome   bool
	width         int
	height        int
	status        string
	statusErr     bool
	statusUntil   time.Time
	quitting      bool

	// Key bindings
	keys      GlobalKeyMap
	inputKeys InputKeyMap
	helpKeys  HelpKeyMap

	// Pane positions for mouse click detection
	leftPaneEnd       int
	calendarPaneStart int
	calendarPaneEnd   int
	statsPaneStart    int
	templatesTop      int // Y coordinate where the templates pane starts
	contentTop        int // Y coordinate where content starts
}

type confirmDeleteState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// onboardingSavedMsg reports the result of AppConfig.OnboardingDone.
type onboardingSavedMsg struct {
	err error
}

// NewApp creates a new application over an opened planner.
func NewApp(p *planner.Planner, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			ConfirmDeletions:      true,
			ShowOnboarding:        true,
			NarrowLayoutThreshold: 80,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	app := &App{
		planner:       p,
		styles:        styles,
		config:        cfg,
		todayPane:     NewTodayPane(p, styles, cfg.Keys),
		templatesPane: NewTemplatesPane(p, styles, cfg.Keys),
		calendarPane:  NewCalendarPane(p, styles, cfg.Keys),
		statsPane:     NewStatsPane(p, styles, cfg.Keys, cfg.TrailingMonths),
		helpBar:       newHelpBar(styles),
		showWelcome:   cfg.ShowOnboarding && len(p.Tasks()) == 0,
		keys:          NewGlobalKeyMap(cfg.Keys),
		inputKeys:     NewInputKeyMap(cfg.Keys),
		helpKeys:      DefaultHelpKeyMap(),
	}
	app.helpOverlay = NewHelpOverlay(styles,
		helpSection{"Global", app.keys},
		helpSection{"Today", app.todayPane.keys},
		helpSection{"Templates", app.templatesPane.keys},
		helpSection{"Calendar", app.calendarPane.keys},
		helpSection{"Stats", app.statsPane.keys},
		helpSection{"Input Mode", app.inputKeys},
	)
	app.setActivePane(PaneToday)

	return app
}

// Subscribe forwards planner change events to send, normally the Send
// method of the running program, so every pane sees changes made anywhere.
func (a *App) Subscribe(send func(tea.Msg)) {
	a.planner.OnTaskListChanged(func(ev planner.TaskListChanged) {
		send(tasksChangedMsg(ev))
	})
	a.planner.OnCalendarChanged(func(ev planner.CalendarChanged) {
		send(calendarChangedMsg(ev))
	})
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the clock.
func (a *App) Init() tea.Cmd {
	return tickCmd()
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Results of planner commands and planner events reach every pane,
	// whichever is active.
	switch msg := msg.(type) {
	case taskAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add task: "+msg.err.Error(), true)
		} else {
			a.notePersisted("Added: " + msg.task.Text)
		}
		return a, a.broadcast(msg)

	case taskToggledMsg:
		if msg.err != nil {
			a.SetStatus("Toggle task: "+msg.err.Error(), true)
		} else if msg.task.Completed {
			a.notePersisted("Done: " + msg.task.Text)
		} else {
			a.notePersisted("Reopened: " + msg.task.Text)
		}
		return a, a.broadcast(msg)

	case taskDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete task: "+msg.err.Error(), true)
		} else {
			a.notePersisted("Deleted: " + msg.task.Text)
		}
		return a, a.broadcast(msg)

	case templateAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add template: "+msg.err.Error(), true)
		} else {
			a.notePersisted("Template added: " + msg.template.Text)
		}
		return a, a.templatesPane.Update(msg)

	case templateDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete template: "+msg.err.Error(), true)
		} else {
			a.notePersisted("Template deleted")
		}
		return a, a.templatesPane.Update(msg)

	case calendarMovedMsg:
		if err := a.planner.LastPersistenceError(); err != nil {
			a.SetStatus("Not saved: "+err.Error(), true)
		}
		return a, a.calendarPane.Update(msg)

	case tasksChangedMsg, calendarChangedMsg:
		return a, a.broadcast(msg)

	case onboardingSavedMsg:
		if msg.err != nil {
			a.SetStatus("Save config: "+msg.err.Error(), true)
		}
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.showWelcome {
			a.showWelcome = false
			return a, a.onboardingDoneCmd()
		}

		if a.confirmDel != nil {
			switch msg.String() {
			case "y", "Y", "enter":
				cmd := a.confirmDel.cmd
				a.confirmDel = nil
				return a, cmd
			case "n", "N", "esc":
				a.confirmDel = nil
				a.SetStatus("Canceled", false)
				return a, nil
			default:
				return a, nil
			}
		}

		// Help overlay takes priority
		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
			}
			return a, nil
		}

		if !a.inInputMode() {
			if a.config.ConfirmDeletions {
				if confirm := a.deleteConfirmation(msg); confirm != nil {
					a.confirmDel = confirm
					return a, nil
				}
			}

			switch {
			case key.Matches(msg, a.keys.Quit):
				a.quitting = true
				return a, tea.Quit

			case key.Matches(msg, a.keys.Help):
				a.showHelp = true
				return a, nil

			case key.Matches(msg, a.keys.NextPane):
				a.cyclePane(1)
				return a, nil

			case key.Matches(msg, a.keys.PrevPane):
				a.cyclePane(-1)
				return a, nil

			case key.Matches(msg, a.keys.Pane1):
				a.setActivePane(PaneToday)
				return a, nil

			case key.Matches(msg, a.keys.Pane2):
				a.setActivePane(PaneTemplates)
				return a, nil

			case key.Matches(msg, a.keys.Pane3):
				a.setActivePane(PaneCalendar)
				return a, nil

			case key.Matches(msg, a.keys.Pane4):
				a.setActivePane(PaneStats)
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		// Past midnight the today pane moves on to the new date.
		if a.todayPane.date != a.planner.Today() {
			a.refreshAll()
		}
		return a, tickCmd()
	}

	if a.showHelp {
		return a, nil
	}
	return a, a.activeUpdate(msg)
}

// broadcast hands msg to every pane.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	return tea.Batch(
		a.todayPane.Update(msg),
		a.templatesPane.Update(msg),
		a.calendarPane.Update(msg),
		a.statsPane.Update(msg),
	)
}

func (a *App) refreshAll() {
	a.todayPane.refresh()
	a.templatesPane.refresh()
	a.calendarPane.refresh()
	a.statsPane.refresh()
}

// activeUpdate hands msg to the focused pane.
func (a *App) activeUpdate(msg tea.Msg) tea.Cmd {
	switch a.activePane {
	case PaneToday:
		return a.todayPane.Update(msg)
	case PaneTemplates:
		return a.templatesPane.Update(msg)
	case PaneCalendar:
		return a.calendarPane.Update(msg)
	case PaneStats:
		return a.statsPane.Update(msg)
	}
	return nil
}

// notePersisted shows ok, or the save failure when the change did not reach
// the disk. The change itself is kept either way.
func (a *App) notePersisted(ok string) {
	if err := a.planner.LastPersistenceError(); err != nil {
		a.SetStatus("Not saved: "+err.Error(), true)
		return
	}
	a.SetStatus(ok, false)
}

func (a *App) inInputMode() bool {
	return a.todayPane.IsAdding() || a.templatesPane.IsAdding()
}

// deleteConfirmation returns the dialog for a delete key press on a list
// pane, or nil when msg is not a delete.
func (a *App) deleteConfirmation(msg tea.KeyMsg) *confirmDeleteState {
	switch a.activePane {
	case PaneToday:
		if !key.Matches(msg, a.todayPane.keys.Delete) {
			return nil
		}
		task, ok := a.todayPane.Selected()
		if !ok {
			return nil
		}
		return &confirmDeleteState{
			title: "Delete task?",
			body:  truncateText(strings.TrimSpace(task.Emoji+" "+task.Text), 60),
			cmd:   deleteTaskCmd(a.planner, task.ID),
		}

	case PaneTemplates:
		if !key.Matches(msg, a.templatesPane.keys.Delete) {
			return nil
		}
		tpl, ok := a.templatesPane.Selected()
		if !ok {
			return nil
		}
		return &confirmDeleteState{
			title: "Delete template?",
			body:  truncateText(tpl.Emoji+" "+tpl.Text, 60),
			cmd:   deleteTemplateCmd(a.planner, tpl.ID),
		}
	}
	return nil
}

func (a *App) onboardingDoneCmd() tea.Cmd {
	done := a.config.OnboardingDone
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		return onboardingSavedMsg{err: done()}
	}
}

// handleMouse routes clicks and wheel events to the pane under the pointer.
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.showWelcome || a.confirmDel != nil || a.showHelp {
		if msg.Action == tea.MouseActionPress {
			if a.confirmDel != nil {
				a.SetStatus("Canceled", false)
			}
			a.confirmDel = nil
			a.showHelp = false
			if a.showWelcome {
				a.showWelcome = false
				return a.onboardingDoneCmd()
			}
		}
		return nil
	}

	if msg.Action != tea.MouseActionPress {
		return nil
	}

	// Tab bar click in narrow mode
	if a.layoutMode == LayoutNarrow && msg.Y == a.contentTop-1 && msg.Button == tea.MouseButtonLeft {
		tabWidth := max(1, a.width/len(paneOrder))
		a.setActivePane(paneOrder[min(msg.X/tabWidth, len(paneOrder)-1)])
		return nil
	}

	if msg.Y < a.contentTop {
		return nil
	}

	pane, x, y := a.paneAt(msg.X, msg.Y)
	if pane < 0 {
		return nil
	}
	if pane != a.activePane && msg.Button == tea.MouseButtonLeft {
		a.setActivePane(pane)
	}

	local := msg
	local.X, local.Y = x, y
	switch pane {
	case PaneToday:
		return a.todayPane.Update(local)
	case PaneTemplates:
		return a.templatesPane.Update(local)
	case PaneCalendar:
		return a.calendarPane.Update(local)
	}
	return nil
}

// paneAt returns the pane under the screen position and the position
// relative to that pane, or -1 when no pane is there.
func (a *App) paneAt(x, y int) (PaneID, int, int) {
	if a.layoutMode == LayoutNarrow {
		return a.activePane, x, y - a.contentTop
	}
	switch {
	case x < a.leftPaneEnd:
		if y >= a.templatesTop {
			return PaneTemplates, x, y - a.templatesTop
		}
		return PaneToday, x, y - a.contentTop
	case x >= a.calendarPaneStart && x < a.calendarPaneEnd:
		return PaneCalendar, x - a.calendarPaneStart, y - a.contentTop
	case x >= a.statsPaneStart:
		return PaneStats, x - a.statsPaneStart, y - a.contentTop
	}
	return -1, 0, 0
}

// cyclePane moves focus forward or backward through the panes.
func (a *App) cyclePane(delta int) {
	n := len(paneOrder)
	a.setActivePane(paneOrder[((int(a.activePane)+delta)%n+n)%n])
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane

	a.todayPane.SetFocused(pane == PaneToday)
	a.templatesPane.SetFocused(pane == PaneTemplates)
	a.calendarPane.SetFocused(pane == PaneCalendar)
	a.statsPane.SetFocused(pane == PaneStats)
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar (1), help bar (1) and pane borders (2)
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	a.contentTop = 1
	a.helpOverlay.SetSize(a.width, a.height)
	a.helpBar.Width = a.width

	totalWidth := a.width - 4

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80
	}

	if a.width < threshold {
		a.layoutMode = LayoutNarrow

		// Leave room for the tab bar
		narrowHeight := max(8, contentHeight-1)
		paneWidth := max(20, totalWidth)

		a.todayPane.SetSize(paneWidth, narrowHeight)
		a.templatesPane.SetSize(paneWidth, narrowHeight)
		a.calendarPane.SetSize(paneWidth, narrowHeight)
		a.statsPane.SetSize(paneWidth, narrowHeight)

		a.contentTop = 2
		return
	}

	a.layoutMode = LayoutWide

	// Three bordered columns and two single-space gaps.
	rest := a.width - 8 - calendarPaneWidth
	leftWidth := rest * 45 / 100
	if totalWidth >= 140 {
		leftWidth = min(leftWidth, 60)
	}
	statsWidth := rest - leftWidth

	// The left column stacks two bordered panes in the height of one.
	todayHeight := (contentHeight - 2) * 55 / 100
	templatesHeight := contentHeight - 2 - todayHeight

	a.todayPane.SetSize(leftWidth, todayHeight)
	a.templatesPane.SetSize(leftWidth, templatesHeight)
	a.calendarPane.SetSize(calendarPaneWidth, contentHeight)
	a.statsPane.SetSize(statsWidth, contentHeight)

	a.leftPaneEnd = leftWidth + 2
	a.calendarPaneStart = a.leftPaneEnd + 1
	a.calendarPaneEnd = a.calendarPaneStart + calendarPaneWidth + 2
	a.statsPaneStart = a.calendarPaneEnd + 1
	a.templatesTop = a.contentTop + todayHeight + 2
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.showWelcome {
		return a.renderWelcome()
	}

	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) overlayStyle(border lipgloss.Color) lipgloss.Style {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(overlayWidth)
}

func (a *App) renderWelcome() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to planner"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("Plan today, tick tasks off, and watch the calendar fill in.\n"))
	b.WriteString("\n")
	b.WriteString(a.styles.RenderHelp("a", "add a task", "2", "templates", "3", "calendar", "?", "help"))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Press any key to continue"))

	content := a.overlayStyle(a.styles.ColorPrimary).Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderConfirmDelete() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(a.styles.RenderHelp("y/enter", "delete", "n/esc", "cancel"))

	content := a.overlayStyle(a.styles.ColorDanger).Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderWideContent renders today over templates, then calendar and stats.
func (a *App) renderWideContent() string {
	left := lipgloss.JoinVertical(lipgloss.Left, a.todayPane.View(), a.templatesPane.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", a.calendarPane.View(), " ", a.statsPane.View())
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	switch a.activePane {
	case PaneToday:
		b.WriteString(a.todayPane.View())
	case PaneTemplates:
		b.WriteString(a.templatesPane.View())
	case PaneCalendar:
		b.WriteString(a.calendarPane.View())
	case PaneStats:
		b.WriteString(a.statsPane.View())
	}

	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	parts := make([]string, 0, len(paneOrder))
	for _, id := range paneOrder {
		if id == a.activePane {
			parts = append(parts, activeTabStyle.Render("["+id.String()+"]"))
		} else {
			parts = append(parts, inactiveTabStyle.Render(" "+id.String()+" "))
		}
	}

	tabBar := strings.Join(parts, "  ")
	if padding := (a.width - lipgloss.Width(tabBar)) / 2; padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}
	return tabBar
}

// renderGoodbye shows an exit message with today's progress.
func (a *App) renderGoodbye() string {
	done, total := a.todayPane.Stats()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")

	if total > 0 {
		b.WriteString("  Today's progress:\n")
		b.WriteString(fmt.Sprintf("     Tasks: %d/%d (%d%%)\n", done, total, a.todayPane.stats.CompletionRate))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar creates the top title bar with today's progress and the date.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" planner ")

	var stats string
	if done, total := a.todayPane.Stats(); total > 0 {
		stats = a.styles.StatLabelStyle.Render(fmt.Sprintf("Today: %d/%d · %d%%", done, total, a.todayPane.stats.CompletionRate))
	}

	now := a.planner.Now()
	date := a.styles.DateStyle.Render(a.planner.Locale().FormatLong(now) + " · " + now.Format("15:04"))

	spacerWidth := a.width - lipgloss.Width(title) - lipgloss.Width(stats) - lipgloss.Width(date) - 4
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	parts := []string{title}
	if stats != "" {
		parts = append(parts, "  "+stats)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth), date)
	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.inInputMode() {
		return a.helpBar.View(a.inputKeys)
	}

	var pane help.KeyMap
	switch a.activePane {
	case PaneToday:
		pane = a.todayPane.keys
	case PaneTemplates:
		pane = a.templatesPane.keys
	case PaneCalendar:
		pane = a.calendarPane.keys
	case PaneStats:
		pane = a.statsPane.keys
	}
	return a.helpBar.View(footerKeys{pane: pane, global: a.keys})
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// truncateText shortens s to width terminal cells.
func truncateText(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// Run starts the Bubble Tea program over an opened planner.
func Run(p *planner.Planner, styles *Styles, cfg *AppConfig) error {
	app := NewApp(p, styles, cfg)
	prog := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	app.Subscribe(prog.Send)
	_, err := prog.Run()
	return err
}
