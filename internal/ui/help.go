package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpSection is one titled group of the help overlay.
type helpSection struct {
	title string
	keys  help.KeyMap
}

// HelpOverlay renders a help screen from the active key bindings, so
// customized keys are listed as configured.
type HelpOverlay struct {
	width    int
	height   int
	styles   *Styles
	sections []helpSection
}

// NewHelpOverlay creates a new help overlay.
func NewHelpOverlay(styles *Styles, sections ...helpSection) *HelpOverlay {
	return &HelpOverlay{
		styles:   styles,
		sections: sections,
	}
}

// SetSize sets the overlay dimensions.
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay.
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("📖 planner - Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, section := range h.sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, group := range section.keys.FullHelp() {
			for _, binding := range group {
				if !binding.Enabled() {
					continue
				}
				hk := binding.Help()
				b.WriteString(keyStyle.Render(hk.Key) + descStyle.Render(hk.Desc) + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, content)
}

// footerKeys joins a pane's bindings with the global ones for the one-line
// help bar.
type footerKeys struct {
	pane   help.KeyMap
	global GlobalKeyMap
}

// ShortHelp implements help.KeyMap.
func (f footerKeys) ShortHelp() []key.Binding {
	var bindings []key.Binding
	if f.pane != nil {
		bindings = append(bindings, f.pane.ShortHelp()...)
	}
	return append(bindings, f.global.ShortHelp()...)
}

// FullHelp implements help.KeyMap.
func (f footerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{f.ShortHelp()}
}

// newHelpBar returns a bubbles help model styled from the theme.
func newHelpBar(styles *Styles) help.Model {
	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpStyle
	return h
}
