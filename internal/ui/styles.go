package ui

import (
	"github.com/charmbracelet/lipgloss"

	"planner/internal/config"
	"planner/internal/reports"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorGood      lipgloss.Color
	ColorMedium    lipgloss.Color
	ColorPoor      lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Component styles
	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	TaskDoneStyle       lipgloss.Style
	TaskPendingStyle    lipgloss.Style
	TaskSelectedStyle   lipgloss.Style
	TaskCheckboxDone    string
	TaskCheckboxPending string

	// Calendar cells
	DayStyle          lipgloss.Style
	DayOtherStyle     lipgloss.Style
	DayTodayStyle     lipgloss.Style
	DayCompletedStyle lipgloss.Style
	DayPartialStyle   lipgloss.Style
	DayPendingStyle   lipgloss.Style
	WeekdayStyle      lipgloss.Style

	// Completion buckets and change indicator
	GoodStyle   lipgloss.Style
	MediumStyle lipgloss.Style
	PoorStyle   lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style

	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from the given config.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#7C3AED")
	s.ColorAccent = colorOrDefault(theme.Accent, "#10B981")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")

	s.ColorGood = colorOrDefault(theme.Good, "#22C55E")
	s.ColorMedium = colorOrDefault(theme.Medium, "#EAB308")
	s.ColorPoor = colorOrDefault(theme.Poor, "#EF4444")

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")

	s.ColorBgLight = lipgloss.Color("#374151")
	s.ColorText = colorOrDefault(theme.Text, "#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	// Tasks
	s.TaskDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Strikethrough(true)

	s.TaskPendingStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.TaskSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.TaskCheckboxDone = lipgloss.NewStyle().Foreground(s.ColorGood).Render("[✓]")
	s.TaskCheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	// Calendar
	s.DayStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Width(4).
		Align(lipgloss.Right)

	s.DayOtherStyle = s.DayStyle.
		Foreground(s.ColorMuted).
		Faint(true)

	s.DayTodayStyle = s.DayStyle.
		Foreground(s.ColorPrimary).
		Bold(true).
		Underline(true)

	s.DayCompletedStyle = s.DayStyle.Foreground(s.ColorGood)
	s.DayPartialStyle = s.DayStyle.Foreground(s.ColorMedium)
	s.DayPendingStyle = s.DayStyle.Foreground(s.ColorPoor)

	s.WeekdayStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Width(4).
		Align(lipgloss.Right)

	s.GoodStyle = lipgloss.NewStyle().Foreground(s.ColorGood).Bold(true)
	s.MediumStyle = lipgloss.NewStyle().Foreground(s.ColorMedium)
	s.PoorStyle = lipgloss.NewStyle().Foreground(s.ColorPoor)

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorGood).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	// Input
	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	// Summary stats
	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.StatValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)
}

// BucketStyle returns the style of a completion bucket.
func (s *Styles) BucketStyle(b reports.Bucket) lipgloss.Style {
	switch b {
	case reports.BucketGood:
		return s.GoodStyle
	case reports.BucketMedium:
		return s.MediumStyle
	case reports.BucketPoor:
		return s.PoorStyle
	default:
		return s.StatLabelStyle
	}
}

// ChangeStyle returns the style of a month-over-month change.
func (s *Styles) ChangeStyle(kind reports.ChangeKind) lipgloss.Style {
	switch kind {
	case reports.ChangePositive:
		return s.GoodStyle
	case reports.ChangeNegative:
		return s.PoorStyle
	default:
		return s.StatLabelStyle
	}
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i+1 < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += s.HelpKeyStyle.Render("["+keys[i]+"]") + " " + s.HelpStyle.Render(keys[i+1])
	}
	return result
}
