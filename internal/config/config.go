// Package config handles configuration loading and defaults for the planner.
// Configuration is loaded from XDG-compliant paths (typically
// ~/.config/planner/config.yaml, or config.toml when no YAML file exists).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"planner/internal/fsutil"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.planner)
	DataDir string `yaml:"data_dir,omitempty" toml:"data_dir"`

	// Locale selects month and weekday names ("en", "ru")
	Locale string `yaml:"locale,omitempty" toml:"locale"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty" toml:"theme"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty" toml:"keys"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty" toml:"ux"`

	// Log configures the log file
	Log LogConfig `yaml:"log,omitempty" toml:"log"`

	// Notifications configures desktop notifications
	Notifications NotificationConfig `yaml:"notifications,omitempty" toml:"notifications"`
}

// ThemeConfig defines color and style settings. Colors are hex strings.
type ThemeConfig struct {
	Primary string `yaml:"primary,omitempty" toml:"primary"`
	Accent  string `yaml:"accent,omitempty" toml:"accent"`
	Muted   string `yaml:"muted,omitempty" toml:"muted"`
	Text    string `yaml:"text,omitempty" toml:"text"`

	// Completion classes of the calendar and daily breakdown
	Good   string `yaml:"good,omitempty" toml:"good"`
	Medium string `yaml:"medium,omitempty" toml:"medium"`
	Poor   string `yaml:"poor,omitempty" toml:"poor"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit     string `yaml:"quit,omitempty" toml:"quit"`           // default: "q,ctrl+c"
	Help     string `yaml:"help,omitempty" toml:"help"`           // default: "?"
	NextPane string `yaml:"next_pane,omitempty" toml:"next_pane"` // default: "tab"
	PrevPane string `yaml:"prev_pane,omitempty" toml:"prev_pane"` // default: "shift+tab"
	Pane1    string `yaml:"pane_1,omitempty" toml:"pane_1"`       // default: "1"
	Pane2    string `yaml:"pane_2,omitempty" toml:"pane_2"`       // default: "2"
	Pane3    string `yaml:"pane_3,omitempty" toml:"pane_3"`       // default: "3"
	Pane4    string `yaml:"pane_4,omitempty" toml:"pane_4"`       // default: "4"

	// Navigation keys
	Up     string `yaml:"up,omitempty" toml:"up"`         // default: "k,up"
	Down   string `yaml:"down,omitempty" toml:"down"`     // default: "j,down"
	Left   string `yaml:"left,omitempty" toml:"left"`     // default: "h,left"
	Right  string `yaml:"right,omitempty" toml:"right"`   // default: "l,right"
	Top    string `yaml:"top,omitempty" toml:"top"`       // default: "g"
	Bottom string `yaml:"bottom,omitempty" toml:"bottom"` // default: "G"

	// Item keys, shared by the task and template lists
	Add    string `yaml:"add,omitempty" toml:"add"`       // default: "a"
	Toggle string `yaml:"toggle,omitempty" toml:"toggle"` // default: "d,enter,space"
	Delete string `yaml:"delete,omitempty" toml:"delete"` // default: "x"

	// Calendar keys
	PrevMonth string `yaml:"prev_month,omitempty" toml:"prev_month"` // default: "[,p"
	NextMonth string `yaml:"next_month,omitempty" toml:"next_month"` // default: "],n"
	Today     string `yaml:"today,omitempty" toml:"today"`           // default: "t"

	// Input keys
	Confirm string `yaml:"confirm,omitempty" toml:"confirm"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty" toml:"cancel"`   // default: "esc"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows confirmation dialogs before deleting items
	ConfirmDeletions bool `yaml:"confirm_deletions" toml:"confirm_deletions"` // default: true

	// ShowOnboarding shows welcome screen on first run
	ShowOnboarding bool `yaml:"show_onboarding" toml:"show_onboarding"` // default: true

	// NarrowLayoutThreshold is the terminal width below which to use stacked layout
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty" toml:"narrow_layout_threshold"` // default: 80

	// TrailingMonths is the length of the trailing window on the stats pane
	TrailingMonths int `yaml:"trailing_months,omitempty" toml:"trailing_months"` // default: 6
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" toml:"level"`   // default: "info"
	Format string `yaml:"format,omitempty" toml:"format"` // default: "text"
	// File is the log file, relative to the data directory unless absolute
	File string `yaml:"file,omitempty" toml:"file"` // default: "planner.log"
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled sends a notification when every task of the day is done
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Sound enables notification sounds
	Sound bool `yaml:"sound" toml:"sound"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Locale:  "en",
		Theme: ThemeConfig{
			Primary: "#7C3AED", // Violet
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
			Text:    "",        // Terminal default
			Good:    "#22C55E",
			Medium:  "#EAB308",
			Poor:    "#EF4444",
		},
		UX: UXConfig{
			ConfirmDeletions:      true,
			ShowOnboarding:        true,
			NarrowLayoutThreshold: 80,
			TrailingMonths:        6,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   "planner.log",
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".planner"
	}
	return filepath.Join(home, ".planner")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "planner")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "planner")
}

// Path returns the config file Load reads: config.yaml, or config.toml when
// only that exists. Empty when no config directory can be determined.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	yamlPath := filepath.Join(dir, "config.yaml")
	tomlPath := filepath.Join(dir, "config.toml")
	if !fsutil.Exists(yamlPath) && fsutil.Exists(tomlPath) {
		return tomlPath
	}
	return yamlPath
}

// presence reports whether a dotted key path was set in the config file.
type presence func(path ...string) bool

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := Path()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	var has presence
	if filepath.Ext(path) == ".toml" {
		md, err := toml.Decode(string(data), &userCfg)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		has = md.IsDefined
	} else {
		if err := yaml.Unmarshal(data, &userCfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Content) > 0 {
			has = func(path ...string) bool { return yamlHasPath(&doc, path...) }
		}
	}

	cfg.merge(&userCfg, has)
	return cfg, nil
}

func setString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeNonEmpty applies non-empty values from other to c.
// It does not touch booleans (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	setString(&c.DataDir, other.DataDir)
	setString(&c.Locale, other.Locale)

	setString(&c.Theme.Primary, other.Theme.Primary)
	setString(&c.Theme.Accent, other.Theme.Accent)
	setString(&c.Theme.Muted, other.Theme.Muted)
	setString(&c.Theme.Text, other.Theme.Text)
	setString(&c.Theme.Good, other.Theme.Good)
	setString(&c.Theme.Medium, other.Theme.Medium)
	setString(&c.Theme.Poor, other.Theme.Poor)

	k, o := &c.Keys, other.Keys
	for dst, src := range map[*string]string{
		&k.Quit: o.Quit, &k.Help: o.Help, &k.NextPane: o.NextPane, &k.PrevPane: o.PrevPane,
		&k.Pane1: o.Pane1, &k.Pane2: o.Pane2, &k.Pane3: o.Pane3, &k.Pane4: o.Pane4,
		&k.Up: o.Up, &k.Down: o.Down, &k.Left: o.Left, &k.Right: o.Right,
		&k.Top: o.Top, &k.Bottom: o.Bottom,
		&k.Add: o.Add, &k.Toggle: o.Toggle, &k.Delete: o.Delete,
		&k.PrevMonth: o.PrevMonth, &k.NextMonth: o.NextMonth, &k.Today: o.Today,
		&k.Confirm: o.Confirm, &k.Cancel: o.Cancel,
	} {
		setString(dst, src)
	}

	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
	if other.UX.TrailingMonths > 0 {
		c.UX.TrailingMonths = other.UX.TrailingMonths
	}

	setString(&c.Log.Level, other.Log.Level)
	setString(&c.Log.Format, other.Log.Format)
	setString(&c.Log.File, other.Log.File)
}

// merge applies other onto c. Booleans are applied only when has reports
// them present; with no presence information they keep their defaults.
func (c *Config) merge(other *Config, has presence) {
	c.mergeNonEmpty(other)
	if has == nil {
		return
	}

	if has("ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if has("ux", "show_onboarding") {
		c.UX.ShowOnboarding = other.UX.ShowOnboarding
	}
	if has("notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if has("notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk in the format of Path.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	var data []byte
	if filepath.Ext(path) == ".toml" {
		var buf strings.Builder
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return err
		}
		data = []byte(buf.String())
	} else {
		var err error
		if data, err = yaml.Marshal(c); err != nil {
			return err
		}
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, c.DataDir[2:])
		}
	}
	return c.DataDir
}
