// Package ui provides the terminal user interface of the planner.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation and user overrides.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"planner/internal/config"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys. "space" is accepted as
// an alias for the space bar.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed == "space" {
			trimmed = " "
		}
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultKeys
	}
	return result
}

// binding builds a key binding. Configured keys replace the defaults and
// the help label, so help always lists the keys that work.
func binding(customKeys, label, desc string, defaultKeys ...string) key.Binding {
	if strings.TrimSpace(customKeys) != "" {
		if keys := parseKeys(customKeys); len(keys) > 0 {
			return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpLabel(keys), desc))
		}
	}
	return key.NewBinding(key.WithKeys(defaultKeys...), key.WithHelp(label, desc))
}

func helpLabel(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, "/")
}

// =============================================================================
// Global Keys (available in all contexts)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextPane key.Binding
	PrevPane key.Binding
	Pane1    key.Binding
	Pane2    key.Binding
	Pane3    key.Binding
	Pane4    key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit:     binding(cfg.Quit, "q", "quit", "q", "ctrl+c"),
		Help:     binding(cfg.Help, "?", "help", "?"),
		NextPane: binding(cfg.NextPane, "tab", "next pane", "tab"),
		PrevPane: binding(cfg.PrevPane, "shift+tab", "prev pane", "shift+tab"),
		Pane1:    binding(cfg.Pane1, "1", "today", "1"),
		Pane2:    binding(cfg.Pane2, "2", "templates", "2"),
		Pane3:    binding(cfg.Pane3, "3", "calendar", "3"),
		Pane4:    binding(cfg.Pane4, "4", "stats", "4"),
	}
}

// ShortHelp implements help.KeyMap.
func (k GlobalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GlobalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPane, k.PrevPane, k.Help, k.Quit},
		{k.Pane1, k.Pane2, k.Pane3, k.Pane4},
	}
}

// =============================================================================
// Navigation Keys (shared by list-based panes)
// =============================================================================

// NavigationKeyMap defines keys for list navigation.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultNavigationKeyMap returns the default navigation key bindings.
func DefaultNavigationKeyMap() NavigationKeyMap {
	return NewNavigationKeyMap(&config.KeysConfig{})
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up:     binding(cfg.Up, "k/↑", "up", "k", "up"),
		Down:   binding(cfg.Down, "j/↓", "down", "j", "down"),
		Top:    binding(cfg.Top, "g", "top", "g"),
		Bottom: binding(cfg.Bottom, "G", "bottom", "G"),
	}
}

// ShortHelp implements help.KeyMap.
func (k NavigationKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down}
}

// FullHelp implements help.KeyMap.
func (k NavigationKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Top, k.Bottom}}
}

// =============================================================================
// Input Keys (shared by text input fields)
// =============================================================================

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: binding(cfg.Confirm, "enter", "save", "enter"),
		Cancel:  binding(cfg.Cancel, "esc", "cancel", "esc"),
	}
}

// ShortHelp implements help.KeyMap.
func (k InputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k InputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Cancel}}
}

// =============================================================================
// List Pane Keys (today's tasks and templates)
// =============================================================================

// ListKeyMap defines keys for the task and template lists.
type ListKeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	NavigationKeyMap
}

// NewTaskKeyMap creates the key bindings of the today pane.
func NewTaskKeyMap(cfg *config.KeysConfig) ListKeyMap {
	return newListKeyMap(cfg, "add task", "toggle done")
}

// NewTemplateKeyMap creates the key bindings of the templates pane.
func NewTemplateKeyMap(cfg *config.KeysConfig) ListKeyMap {
	return newListKeyMap(cfg, "new template", "add to today")
}

func newListKeyMap(cfg *config.KeysConfig, addHelp, toggleHelp string) ListKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return ListKeyMap{
		Add:              binding(cfg.Add, "a", addHelp, "a"),
		Toggle:           binding(cfg.Toggle, "d/space", toggleHelp, "d", "enter", " "),
		Delete:           binding(cfg.Delete, "x", "delete", "x"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp implements help.KeyMap.
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Down}
}

// FullHelp implements help.KeyMap.
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Toggle, k.Delete},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// =============================================================================
// Calendar Pane Keys
// =============================================================================

// CalendarKeyMap defines keys for the calendar pane.
type CalendarKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
}

// NewCalendarKeyMap creates calendar key bindings from config.
func NewCalendarKeyMap(cfg *config.KeysConfig) CalendarKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return CalendarKeyMap{
		Up:        binding(cfg.Up, "k/↑", "prev week", "k", "up"),
		Down:      binding(cfg.Down, "j/↓", "next week", "j", "down"),
		Left:      binding(cfg.Left, "h/←", "prev day", "h", "left"),
		Right:     binding(cfg.Right, "l/→", "next day", "l", "right"),
		PrevMonth: binding(cfg.PrevMonth, "[", "prev month", "[", "p"),
		NextMonth: binding(cfg.NextMonth, "]", "next month", "]", "n"),
		Today:     binding(cfg.Today, "t", "today", "t"),
	}
}

// ShortHelp implements help.KeyMap.
func (k CalendarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.Today, k.Right}
}

// FullHelp implements help.KeyMap.
func (k CalendarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevMonth, k.NextMonth, k.Today},
		{k.Left, k.Right, k.Up, k.Down},
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
