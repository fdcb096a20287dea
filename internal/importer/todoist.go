package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"planner/internal/dates"
	"planner/internal/storage"
)

// TodoistImporter reads Todoist CSV exports.
type TodoistImporter struct{}

// Name returns the importer name.
func (t *TodoistImporter) Name() string {
	return "todoist"
}

// Parse reads task rows; notes and sections are skipped.
func (t *TodoistImporter) Parse(reader io.Reader) ([]storage.Task, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff") // UTF-8 BOM
		}
		colIndex[strings.ToUpper(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{"TYPE", "CONTENT"} {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	field := func(record []string, col string) string {
		if idx, ok := colIndex[col]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	var tasks []storage.Task
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if !strings.EqualFold(field(record, "TYPE"), "task") {
			continue
		}
		text := field(record, "CONTENT")
		if text == "" {
			continue
		}
		tasks = append(tasks, storage.Task{
			Text:  text,
			Emoji: todoistMarker(field(record, "PRIORITY")),
			Date:  parseTodoistDate(field(record, "DATE")),
		})
	}
	return tasks, nil
}

// todoistMarker maps Todoist priority (1 = urgent .. 4 = none) to a marker.
func todoistMarker(priority string) string {
	switch priority {
	case "1":
		return markerHigh
	case "2":
		return markerMedium
	case "3":
		return markerLow
	default:
		return ""
	}
}

var todoistDateLayouts = []string{
	dates.KeyLayout,
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"01/02/2006",
}

// parseTodoistDate returns the date key of a Todoist due date, or "" when
// it is empty or not a calendar date (e.g. "every day").
func parseTodoistDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range todoistDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return dates.Key(t)
		}
	}
	return ""
}
