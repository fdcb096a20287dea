package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"planner/internal/storage"
)

// WebappImporter reads task lists saved by the browser version of the
// planner: either the bare tasks array or an object of localStorage entries.
type WebappImporter struct{}

// webappTasksKey is the localStorage entry holding the task list.
const webappTasksKey = "taskPlanner_tasks"

type webappTask struct {
	ID           json.RawMessage `json:"id"`
	Text         string          `json:"text"`
	Emoji        string          `json:"emoji"`
	Completed    bool            `json:"completed"`
	Date         string          `json:"date"`
	FromTemplate json.RawMessage `json:"fromTemplate"`
}

// Name returns the importer name.
func (w *WebappImporter) Name() string {
	return "webapp"
}

// Parse reads the export. Numeric ids become "web-N" and numeric template
// references become "tpl_N", matching the ids of the seed templates.
func (w *WebappImporter) Parse(reader io.Reader) ([]storage.Task, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	if data[0] == '{' {
		var dump map[string]json.RawMessage
		if err := json.Unmarshal(data, &dump); err != nil {
			return nil, fmt.Errorf("failed to parse export: %w", err)
		}
		entry, ok := dump[webappTasksKey]
		if !ok {
			return nil, fmt.Errorf("export has no %s entry", webappTasksKey)
		}
		// localStorage values are strings holding JSON.
		var inner string
		if json.Unmarshal(entry, &inner) == nil {
			entry = json.RawMessage(inner)
		}
		data = entry
	}

	var raw []webappTask
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse task list: %w", err)
	}

	tasks := make([]storage.Task, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		tasks = append(tasks, storage.Task{
			ID:           webappID("web-", r.ID),
			Text:         r.Text,
			Emoji:        r.Emoji,
			Completed:    r.Completed,
			Date:         r.Date,
			FromTemplate: webappID("tpl_", r.FromTemplate),
		})
	}
	return tasks, nil
}

// webappID renders a number or string id; numbers get prefix.
func webappID(prefix string, raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return prefix + n.String()
	}
	return ""
}
