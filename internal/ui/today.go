package ui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"planner/internal/config"
	"planner/internal/planner"
	"planner/internal/storage"
)

// TodayPane lists today's tasks with a completion bar.
type TodayPane struct {
	planner *planner.Planner
	date    string
	tasks   []storage.Task
	stats   storage.DayStats
	cursor  int
	focused bool
	width   int
	height  int
	adding  bool
	input   textinput.Model
	bar     progress.Model
	styles  *Styles

	keys      ListKeyMap
	inputKeys InputKeyMap
}

// NewTodayPane creates the today pane with key bindings from keyCfg.
func NewTodayPane(p *planner.Planner, styles *Styles, keyCfg *config.KeysConfig) *TodayPane {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done? (start with an emoji to tag it)"
	ti.CharLimit = storage.MaxTextLen
	ti.Width = 40

	bar := progress.New(
		progress.WithSolidFill(string(styles.ColorGood)),
		progress.WithWidth(30),
	)

	pane := &TodayPane{
		planner:   p,
		focused:   true,
		input:     ti,
		bar:       bar,
		styles:    styles,
		keys:      NewTaskKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
	pane.refresh()
	return pane
}

// refresh re-reads today's tasks from the planner and keeps the cursor in range.
func (p *TodayPane) refresh() {
	p.date = p.planner.Today()
	detail := p.planner.DayDetail(p.date)
	p.tasks = detail.Tasks
	p.stats = detail.Stats
	if p.cursor >= len(p.tasks) {
		p.cursor = max(0, len(p.tasks)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *TodayPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-6)
	p.bar.Width = max(10, width-6)
}

// SetFocused sets whether this pane is focused.
func (p *TodayPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsAdding returns whether we're in add mode.
func (p *TodayPane) IsAdding() bool {
	return p.adding
}

// Selected returns the task under the cursor.
func (p *TodayPane) Selected() (storage.Task, bool) {
	if p.cursor < 0 || p.cursor >= len(p.tasks) {
		return storage.Task{}, false
	}
	return p.tasks[p.cursor], true
}

// Update handles messages for the today pane.
func (p *TodayPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg.(type) {
	case taskAddedMsg, taskToggledMsg, taskDeletedMsg, tasksChangedMsg:
		p.refresh()
		return nil
	}

	if p.adding {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				emoji, text := splitEmoji(p.input.Value())
				p.adding = false
				p.input.Reset()
				if text == "" {
					return nil
				}
				return addTaskCmd(p.planner, text, emoji)

			case key.Matches(msg, p.inputKeys.Cancel):
				p.adding = false
				p.input.Reset()
				return nil
			}
		}

		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(p.tasks) > 0 {
				p.cursor = min(p.cursor+1, len(p.tasks)-1)
			}

		case key.Matches(msg, p.keys.Up):
			p.cursor = max(p.cursor-1, 0)

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			p.cursor = max(0, len(p.tasks)-1)

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Toggle):
			if task, ok := p.Selected(); ok {
				return toggleTaskCmd(p.planner, task.ID)
			}

		case key.Matches(msg, p.keys.Delete):
			if task, ok := p.Selected(); ok {
				return deleteTaskCmd(p.planner, task.ID)
			}
		}
	}

	return nil
}

// todayHeaderRows is the number of pane rows above the first task: the border,
// the title, the separator and the progress bar.
const todayHeaderRows = 4

// visibleRows returns how many tasks fit in the pane.
func (p *TodayPane) visibleRows() int {
	rows := p.height - 8
	if rows < 3 {
		rows = 5
	}
	return rows
}

func (p *TodayPane) windowStart() int {
	if rows := p.visibleRows(); p.cursor >= rows {
		return p.cursor - rows + 1
	}
	return 0
}

// handleMouse processes mouse events for the today pane.
func (p *TodayPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.tasks) == 0 {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.tasks)-1)

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		row := msg.Y - todayHeaderRows
		if row < 0 || row >= p.visibleRows() {
			return nil
		}
		idx := p.windowStart() + row
		if idx >= len(p.tasks) {
			return nil
		}
		p.cursor = idx

		// Clicking the checkbox toggles the task.
		if msg.X < 6 {
			return toggleTaskCmd(p.planner, p.tasks[idx].ID)
		}
	}

	return nil
}

// View renders the today pane.
func (p *TodayPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("✅ TODAY")
	date := p.styles.DateStyle.Render(p.planner.Locale().FormatLong(p.planner.Now()))
	b.WriteString(title + "  " + date)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	b.WriteString(p.bar.ViewAs(float64(p.stats.CompletionRate) / 100))
	b.WriteString("\n")

	if len(p.tasks) == 0 && !p.adding {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  Nothing planned yet. Press 'a' to add a task."))
		b.WriteString("\n")
	} else {
		start := p.windowStart()
		end := min(start+p.visibleRows(), len(p.tasks))

		textWidth := p.width - 4 - 8 // checkbox, emoji and padding
		if textWidth < 5 {
			textWidth = 5
		}

		for i := start; i < end; i++ {
			task := p.tasks[i]

			checkbox := p.styles.TaskCheckboxPending
			if task.Completed {
				checkbox = p.styles.TaskCheckboxDone
			}
			emoji := task.Emoji
			if emoji == "" {
				emoji = "  "
			}
			text := runewidth.Truncate(task.Text, textWidth, "..")

			var line string
			if i == p.cursor && p.focused && !p.adding {
				line = p.styles.TaskSelectedStyle.Render(fmt.Sprintf(" %s %s %s ", checkbox, emoji, text))
			} else {
				styled := p.styles.TaskPendingStyle.Render(text)
				if task.Completed {
					styled = p.styles.TaskDoneStyle.Render(text)
				}
				line = fmt.Sprintf(" %s %s %s", checkbox, emoji, styled)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}

		b.WriteString("\n")
		b.WriteString("  " + p.styles.StatLabelStyle.Render(fmt.Sprintf("%d/%d complete", p.stats.Completed, p.stats.Total)))
		b.WriteString("\n")
	}

	if p.adding {
		b.WriteString("\n")
		b.WriteString(p.styles.InputPromptStyle.Render("+ ") + p.input.View())
		b.WriteString("\n")
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

// Stats returns today's completed and total task counts.
func (p *TodayPane) Stats() (done, total int) {
	return p.stats.Completed, p.stats.Total
}

// splitEmoji separates a leading emoji from the task text, so "💪 Push-ups"
// becomes ("💪", "Push-ups"). Input without a leading symbol is all text.
func splitEmoji(input string) (emoji, text string) {
	input = strings.TrimSpace(input)
	head, rest, found := strings.Cut(input, " ")
	if !found || !isEmoji(head) {
		return "", input
	}
	return head, strings.TrimSpace(rest)
}

func isEmoji(s string) bool {
	if s == "" || utf8.RuneCountInString(s) > storage.MaxEmojiLen {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if first < 0x2000 {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
