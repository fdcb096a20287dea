package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"planner/internal/config"
	"planner/internal/planner"
	"planner/internal/storage"
)

const (
	templateTextPlaceholder  = "Template text (e.g., Morning exercise)"
	templateEmojiPlaceholder = "Emoji (e.g., 💪)"
)

// TemplatesPane lists the template catalog for quick adds.
type TemplatesPane struct {
	planner   *planner.Planner
	templates []storage.Template
	usedToday map[string]bool
	cursor    int
	focused   bool
	width     int
	height    int
	adding    bool
	addStep   int // 0 = text, 1 = emoji
	input     textinput.Model
	newText   string
	styles    *Styles

	keys      ListKeyMap
	inputKeys InputKeyMap
}

// NewTemplatesPane creates the templates pane with key bindings from keyCfg.
func NewTemplatesPane(p *planner.Planner, styles *Styles, keyCfg *config.KeysConfig) *TemplatesPane {
	ti := textinput.New()
	ti.Placeholder = templateTextPlaceholder
	ti.CharLimit = storage.MaxTextLen
	ti.Width = 30

	pane := &TemplatesPane{
		planner:   p,
		input:     ti,
		styles:    styles,
		keys:      NewTemplateKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
	pane.refresh()
	return pane
}

// refresh re-reads the catalog and which templates were used today.
func (p *TemplatesPane) refresh() {
	p.templates = p.planner.Templates()
	p.usedToday = map[string]bool{}
	for _, t := range p.planner.TasksOn(p.planner.Today()) {
		if t.FromTemplate != "" {
			p.usedToday[t.FromTemplate] = true
		}
	}
	if p.cursor >= len(p.templates) {
		p.cursor = max(0, len(p.templates)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *TemplatesPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-10)
}

// SetFocused sets whether this pane is focused.
func (p *TemplatesPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsAdding returns whether we're in add mode.
func (p *TemplatesPane) IsAdding() bool {
	return p.adding
}

// Selected returns the template under the cursor.
func (p *TemplatesPane) Selected() (storage.Template, bool) {
	if p.cursor < 0 || p.cursor >= len(p.templates) {
		return storage.Template{}, false
	}
	return p.templates[p.cursor], true
}

// Update handles messages for the templates pane.
func (p *TemplatesPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg.(type) {
	case templateAddedMsg, templateDeletedMsg, taskAddedMsg, taskDeletedMsg, tasksChangedMsg:
		p.refresh()
		return nil
	}

	if p.adding {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				if p.addStep == 0 {
					p.newText = strings.TrimSpace(p.input.Value())
					if p.newText != "" {
						p.addStep = 1
						p.input.Reset()
						p.input.Placeholder = templateEmojiPlaceholder
						p.input.CharLimit = storage.MaxEmojiLen
					}
					return nil
				}
				emoji := strings.TrimSpace(p.input.Value())
				if emoji == "" {
					emoji = planner.DefaultTemplateEmoji
				}
				text := p.newText
				p.resetAddMode()
				return addTemplateCmd(p.planner, text, emoji)

			case key.Matches(msg, p.inputKeys.Cancel):
				p.resetAddMode()
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
			if len(p.templates) > 0 {
				p.cursor = min(p.cursor+1, len(p.templates)-1)
			}

		case key.Matches(msg, p.keys.Up):
			p.cursor = max(p.cursor-1, 0)

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			p.cursor = max(0, len(p.templates)-1)

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.addStep = 0
			p.input.Placeholder = templateTextPlaceholder
			p.input.CharLimit = storage.MaxTextLen
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Toggle):
			if tpl, ok := p.Selected(); ok {
				return addFromTemplateCmd(p.planner, tpl.ID)
			}

		case key.Matches(msg, p.keys.Delete):
			if tpl, ok := p.Selected(); ok {
				return deleteTemplateCmd(p.planner, tpl.ID)
			}
		}
	}

	return nil
}

// resetAddMode resets the add template state.
func (p *TemplatesPane) resetAddMode() {
	p.adding = false
	p.addStep = 0
	p.newText = ""
	p.input.Reset()
	p.input.Placeholder = templateTextPlaceholder
	p.input.CharLimit = storage.MaxTextLen
}

// templatesHeaderRows counts the border, title and separator rows.
const templatesHeaderRows = 3

// handleMouse processes mouse events for the templates pane.
func (p *TemplatesPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.templates) == 0 {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.templates)-1)

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		row := msg.Y - templatesHeaderRows
		if row < 0 || row >= len(p.templates) {
			return nil
		}
		p.cursor = row

		// Clicking the emoji adds the template to today.
		if msg.X < 6 {
			return addFromTemplateCmd(p.planner, p.templates[row].ID)
		}
	}

	return nil
}

// View renders the templates pane.
func (p *TemplatesPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("⚡ TEMPLATES"))
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if len(p.templates) == 0 && !p.adding {
		b.WriteString(p.styles.StatLabelStyle.Render("  No templates yet."))
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("  Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		textWidth := max(5, p.width-4-8)
		for i, tpl := range p.templates {
			prefix := "  "
			if i == p.cursor && p.focused && !p.adding {
				prefix = "▶ "
			}

			mark := " "
			if p.usedToday[tpl.ID] {
				mark = p.styles.GoodStyle.Render("✓")
			}

			line := fmt.Sprintf("%s%s %s %s", prefix, tpl.Emoji, runewidth.Truncate(tpl.Text, textWidth, ".."), mark)
			if i == p.cursor && p.focused && !p.adding {
				line = p.styles.TaskSelectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if p.adding {
		b.WriteString("\n")
		prompt := p.styles.InputPromptStyle.Render("Text: ")
		if p.addStep == 1 {
			prompt = p.styles.InputPromptStyle.Render("Emoji: ")
		}
		b.WriteString("  " + prompt + p.input.View())
		b.WriteString("\n")
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}
