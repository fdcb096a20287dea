// Package importer parses task exports of other tools into planner tasks.
// Importers only parse; planner.Planner.Import validates and stores the
// result and rebuilds the day statistics.
package importer

import (
	"io"
	"strings"

	"planner/internal/storage"
)

// Importer converts one export format into tasks. A task with an empty Date
// is planned for the day of the import.
type Importer interface {
	// Parse reads the export. It fails only when the input as a whole is
	// unreadable; individual records it cannot use are dropped.
	Parse(r io.Reader) ([]storage.Task, error)

	// Name returns the importer name (e.g., "todoist", "taskwarrior").
	Name() string
}

// GetImporter returns the importer for format, or nil when unsupported.
func GetImporter(format string) Importer {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "todoist":
		return &TodoistImporter{}
	case "taskwarrior":
		return &TaskwarriorImporter{}
	case "webapp":
		return &WebappImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"todoist", "taskwarrior", "webapp"}
}

// Priority markers shown as the task emoji, following Todoist's flag colors.
const (
	markerHigh   = "🔴"
	markerMedium = "🟠"
	markerLow    = "🔵"
)
